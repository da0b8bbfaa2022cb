package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hearthbook/internal/testutil"
)

func TestMonthly(t *testing.T) {
	t.Run("groups_by_month_and_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(db)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestEntry(t, db, user.ID, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(10000))
		testutil.CreateTestEntry(t, db, user.ID, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(5000))
		testutil.CreateTestEntry(t, db, user.ID, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "Transport", decimal.NewFromInt(3000))

		year := 2024
		stats := svc.Monthly(&year, nil)

		if len(stats) != 2 {
			t.Fatalf("expected 2 months, got %d", len(stats))
		}
		if stats[0].Month != "2024-02" || stats[1].Month != "2024-01" {
			t.Errorf("expected months [2024-02 2024-01], got [%s %s]", stats[0].Month, stats[1].Month)
		}

		january := stats[1]
		food, ok := january.Categories["Food"]
		if !ok {
			t.Fatal("expected Food category in January")
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(15000), food.Total)
		if food.Count != 2 {
			t.Errorf("expected Food count 2, got %d", food.Count)
		}
		if len(food.Entries) != 2 {
			t.Errorf("expected 2 Food entries, got %d", len(food.Entries))
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(15000), january.TotalAmount)

		february := stats[0]
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(3000), february.TotalAmount)
		if february.Categories["Transport"].Count != 1 {
			t.Errorf("expected Transport count 1, got %d", february.Categories["Transport"].Count)
		}
	})

	t.Run("month_total_matches_sum_of_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(db)

		user := testutil.CreateTestUser(t, db)
		day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestEntry(t, db, user.ID, day, "Food", decimal.RequireFromString("12.50"))
		testutil.CreateTestEntry(t, db, user.ID, day, "Transport", decimal.RequireFromString("7.25"))
		testutil.CreateTestEntry(t, db, user.ID, day, "Rent", decimal.NewFromInt(900))

		stats := svc.Monthly(nil, nil)
		if len(stats) != 1 {
			t.Fatalf("expected 1 month, got %d", len(stats))
		}

		sum := decimal.Zero
		for _, categoryStats := range stats[0].Categories {
			sum = sum.Add(categoryStats.Total)
		}
		testutil.AssertDecimalEqual(t, stats[0].TotalAmount, sum)
	})

	t.Run("year_and_month_restricts_to_that_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(db)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestEntry(t, db, user.ID, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(100))
		testutil.CreateTestEntry(t, db, user.ID, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(200))

		year, month := 2024, 1
		stats := svc.Monthly(&year, &month)

		if len(stats) != 1 {
			t.Fatalf("expected 1 month, got %d", len(stats))
		}
		if stats[0].Month != "2024-01" {
			t.Errorf("expected month 2024-01, got %s", stats[0].Month)
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), stats[0].TotalAmount)
	})

	t.Run("december_range_does_not_leak_into_next_year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(db)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestEntry(t, db, user.ID, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(100))
		testutil.CreateTestEntry(t, db, user.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(200))

		year, month := 2024, 12
		stats := svc.Monthly(&year, &month)

		if len(stats) != 1 {
			t.Fatalf("expected 1 month, got %d", len(stats))
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), stats[0].TotalAmount)
	})

	t.Run("no_filters_spans_all_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(db)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestEntry(t, db, user.ID, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(50))
		testutil.CreateTestEntry(t, db, user.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(60))

		stats := svc.Monthly(nil, nil)
		if len(stats) != 2 {
			t.Fatalf("expected 2 months across years, got %d", len(stats))
		}
		if stats[0].Month != "2024-06" || stats[1].Month != "2023-06" {
			t.Errorf("expected descending months, got [%s %s]", stats[0].Month, stats[1].Month)
		}
	})

	t.Run("no_matching_entries_yields_empty_slice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(db)

		year := 1999
		stats := svc.Monthly(&year, nil)
		if stats == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(stats) != 0 {
			t.Errorf("expected 0 months, got %d", len(stats))
		}
	})

	t.Run("store_failure_degrades_to_empty_result", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(db)

		testutil.AssertNoError(t, db.Migrator().DropTable("ledger_entries"))

		stats := svc.Monthly(nil, nil)
		if stats == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(stats) != 0 {
			t.Errorf("expected 0 months after store failure, got %d", len(stats))
		}
	})
}
