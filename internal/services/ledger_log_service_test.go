package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hearthbook/internal/models"
	"hearthbook/internal/testutil"
)

func TestLedgerLog(t *testing.T) {
	t.Run("records_entry_fields_and_plain_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerLogService(db)

		user := testutil.CreateTestUser(t, db)
		entry := testutil.CreateTestEntry(t, db, user.ID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(2500))

		svc.Log(entry, user.ID, user.Username, models.LedgerActionCreate, nil)

		var records []models.LedgerLogRecord
		testutil.AssertNoError(t, db.Find(&records).Error)
		if len(records) != 1 {
			t.Fatalf("expected 1 log record, got %d", len(records))
		}

		record := records[0]
		if record.EntryID != entry.ID {
			t.Errorf("expected entry ID %d, got %d", entry.ID, record.EntryID)
		}
		if record.Username != user.Username {
			t.Errorf("expected username %q, got %q", user.Username, record.Username)
		}
		if record.Action != models.LedgerActionCreate {
			t.Errorf("expected action create, got %s", record.Action)
		}
		if record.Date != "2024-03-15" {
			t.Errorf("expected date 2024-03-15, got %s", record.Date)
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(2500), record.Amount)
		if record.PreviousData != nil {
			t.Errorf("expected nil previous data for create, got %q", *record.PreviousData)
		}
	})

	t.Run("update_carries_caller_captured_previous_state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerLogService(db)

		user := testutil.CreateTestUser(t, db)
		entry := testutil.CreateTestEntry(t, db, user.ID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(2500))

		previous := entry.State()
		entry.Amount = decimal.NewFromInt(3000)
		entry.Category = "Groceries"
		testutil.AssertNoError(t, db.Save(entry).Error)

		svc.Log(entry, user.ID, user.Username, models.LedgerActionUpdate, &previous)

		var records []models.LedgerLogRecord
		testutil.AssertNoError(t, db.Find(&records).Error)
		if len(records) != 1 {
			t.Fatalf("expected 1 log record, got %d", len(records))
		}
		if records[0].PreviousData == nil {
			t.Fatal("expected previous data for update")
		}

		var restored models.LedgerEntryState
		testutil.AssertNoError(t, json.Unmarshal([]byte(*records[0].PreviousData), &restored))
		if restored.Category != "Food" {
			t.Errorf("expected previous category Food, got %s", restored.Category)
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(2500), restored.Amount)
		if restored.Date != "2024-03-15" {
			t.Errorf("expected previous date 2024-03-15, got %s", restored.Date)
		}
	})

	t.Run("store_failure_does_not_panic_or_propagate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerLogService(db)

		user := testutil.CreateTestUser(t, db)
		entry := testutil.CreateTestEntry(t, db, user.ID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "Food", decimal.NewFromInt(100))

		testutil.AssertNoError(t, db.Migrator().DropTable("ledger_log_records"))

		svc.Log(entry, user.ID, user.Username, models.LedgerActionDelete, nil)
	})
}

func TestLedgerLogQuery(t *testing.T) {
	t.Run("newest_first_with_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerLogService(db)

		base := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			record := &models.LedgerLogRecord{
				EntryID:   uint(i + 1),
				UserID:    1,
				Action:    models.LedgerActionCreate,
				Amount:    decimal.NewFromInt(int64(i)),
				Date:      "2024-04-01",
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			}
			testutil.AssertNoError(t, db.Create(record).Error)
		}

		records := svc.Query(2)
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].EntryID != 3 || records[1].EntryID != 2 {
			t.Errorf("expected newest first (3, 2), got (%d, %d)", records[0].EntryID, records[1].EntryID)
		}
	})

	t.Run("store_failure_degrades_to_empty_result", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerLogService(db)

		testutil.AssertNoError(t, db.Migrator().DropTable("ledger_log_records"))

		records := svc.Query(10)
		if records == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(records) != 0 {
			t.Errorf("expected 0 records after store failure, got %d", len(records))
		}
	})
}
