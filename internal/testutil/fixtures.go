package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hearthbook/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: fmt.Sprintf("user%d", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAsset creates an asset with the given amount.
func CreateTestAsset(t *testing.T, db *gorm.DB, amount decimal.Decimal) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		Name:     fmt.Sprintf("Test Asset %d", nextID()),
		Category: "savings",
		Amount:   amount,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestEntry creates a ledger entry on the given date.
func CreateTestEntry(t *testing.T, db *gorm.DB, userID uint, date time.Time, category string, amount decimal.Decimal) *models.LedgerEntry {
	t.Helper()

	entry := &models.LedgerEntry{
		UserID:      userID,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Category:    category,
		Description: fmt.Sprintf("Test Entry %d", nextID()),
		Amount:      amount,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

// CreateTestSnapshot creates a snapshot recorded at the given time.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, recordedAt time.Time, total decimal.Decimal) *models.Snapshot {
	t.Helper()

	snapshot := &models.Snapshot{
		TotalValue: total,
		CreatedAt:  recordedAt,
	}
	if err := db.Create(snapshot).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	return snapshot
}
