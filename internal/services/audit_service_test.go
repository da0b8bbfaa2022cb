package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hearthbook/internal/models"
	"hearthbook/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("create_action", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		prev := decimal.Zero
		curr := decimal.NewFromInt(1000)
		record, err := svc.Log(models.AuditActionCreate, "asset", 1, "Savings",
			nil, map[string]any{"name": "Savings", "amount": curr}, &prev, &curr)
		testutil.AssertNoError(t, err)

		if record.ID == "" {
			t.Fatal("expected non-empty record ID")
		}
		if record.OldValue != nil {
			t.Errorf("expected nil old value for create, got %q", *record.OldValue)
		}
		if record.NewValue == nil {
			t.Fatal("expected non-nil new value for create")
		}

		var newState map[string]any
		if err := json.Unmarshal([]byte(*record.NewValue), &newState); err != nil {
			t.Fatalf("new value is not valid JSON: %v", err)
		}
		if newState["name"] != "Savings" {
			t.Errorf("expected serialized name Savings, got %v", newState["name"])
		}

		testutil.AssertDecimalEqual(t, prev, *record.PreviousTotal)
		testutil.AssertDecimalEqual(t, curr, *record.CurrentTotal)
	})

	t.Run("delete_action_has_nil_new_value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		record, err := svc.Log(models.AuditActionDelete, "asset", 2, "Old Car",
			map[string]any{"name": "Old Car"}, nil, nil, nil)
		testutil.AssertNoError(t, err)

		if record.OldValue == nil {
			t.Error("expected non-nil old value for delete")
		}
		if record.NewValue != nil {
			t.Errorf("expected nil new value for delete, got %q", *record.NewValue)
		}
	})

	t.Run("persisted_before_return", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		record, err := svc.Log(models.AuditActionUpdate, "asset", 3, "Deposit",
			map[string]any{"amount": "100"}, map[string]any{"amount": "200"}, nil, nil)
		testutil.AssertNoError(t, err)

		var stored models.AuditRecord
		if err := db.First(&stored, "id = ?", record.ID).Error; err != nil {
			t.Fatalf("record not found after Log returned: %v", err)
		}
	})

	t.Run("unserializable_value_stored_as_null", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		record, err := svc.Log(models.AuditActionUpdate, "asset", 4, "Broken",
			map[string]any{"ch": make(chan int)}, map[string]any{"ok": true}, nil, nil)
		testutil.AssertNoError(t, err)

		if record.OldValue != nil {
			t.Errorf("expected nil old value after marshal failure, got %q", *record.OldValue)
		}
		if record.NewValue == nil {
			t.Error("expected new value to survive the old value's marshal failure")
		}
	})

	t.Run("records_are_immutable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		first, err := svc.Log(models.AuditActionCreate, "asset", 5, "First",
			nil, map[string]any{"amount": "1"}, nil, nil)
		testutil.AssertNoError(t, err)

		_, err = svc.Log(models.AuditActionUpdate, "asset", 5, "First",
			map[string]any{"amount": "1"}, map[string]any{"amount": "2"}, nil, nil)
		testutil.AssertNoError(t, err)

		var stored models.AuditRecord
		testutil.AssertNoError(t, db.First(&stored, "id = ?", first.ID).Error)
		if stored.Action != models.AuditActionCreate || stored.EntityName != "First" {
			t.Errorf("earlier record changed: %+v", stored)
		}
		if stored.OldValue != nil {
			t.Error("earlier record's old value changed")
		}
	})
}

func TestAuditQuery(t *testing.T) {
	t.Run("newest_first_with_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			record := &models.AuditRecord{
				Action:     models.AuditActionCreate,
				EntityType: "asset",
				EntityID:   uint(i + 1),
				EntityName: "Asset",
				CreatedAt:  base.Add(time.Duration(i) * time.Hour),
			}
			testutil.AssertNoError(t, db.Create(record).Error)
		}

		records, err := svc.Query(2)
		testutil.AssertNoError(t, err)

		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].EntityID != 3 || records[1].EntityID != 2 {
			t.Errorf("expected newest first (3, 2), got (%d, %d)", records[0].EntityID, records[1].EntityID)
		}
	})

	t.Run("default_limit_when_non_positive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 60; i++ {
			record := &models.AuditRecord{
				Action:     models.AuditActionCreate,
				EntityType: "asset",
				EntityID:   uint(i + 1),
				CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			}
			testutil.AssertNoError(t, db.Create(record).Error)
		}

		records, err := svc.Query(0)
		testutil.AssertNoError(t, err)

		if len(records) != 50 {
			t.Errorf("expected default limit of 50, got %d", len(records))
		}
	})
}
