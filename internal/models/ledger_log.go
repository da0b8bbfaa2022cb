package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hearthbook/internal/uuid"
)

// LedgerAction is the kind of mutation a LedgerLogRecord describes.
type LedgerAction string

const (
	LedgerActionCreate LedgerAction = "create"
	LedgerActionUpdate LedgerAction = "update"
	LedgerActionDelete LedgerAction = "delete"
)

// LedgerLogRecord is the immutable action log entry written for every ledger
// entry mutation. Date is stored as a plain YYYY-MM-DD string; PreviousData
// is populated only for updates and holds the pre-update LedgerEntryState.
type LedgerLogRecord struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	EntryID      uint            `gorm:"not null;index" json:"entry_id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	Username     string          `json:"username"`
	Action       LedgerAction    `gorm:"not null" json:"action"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Category     string          `json:"category"`
	Date         string          `gorm:"size:10" json:"date"`
	Note         string          `json:"note,omitempty"`
	PreviousData *string         `json:"previous_data,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook generates a time-ordered UUIDv7 for new records.
func (r *LedgerLogRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}
