package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents a single income/expense line in the household
// ledger. Date carries no time-of-day component: it is always normalized to
// midnight UTC, and every derived string form uses YYYY-MM-DD.
type LedgerEntry struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Category    string          `gorm:"not null" json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Note        string          `json:"note,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// MonthKey returns the YYYY-MM bucket key for the entry.
func (e *LedgerEntry) MonthKey() string {
	return e.Date.Format("2006-01")
}

// State captures the entry's five mutable fields as they are persisted in
// ledger log records. Date is the plain-date string form.
func (e *LedgerEntry) State() LedgerEntryState {
	return LedgerEntryState{
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date.Format(time.DateOnly),
		Note:        e.Note,
	}
}

// LedgerEntryState is the serialized snapshot of a ledger entry's mutable
// fields, stored in LedgerLogRecord.PreviousData for updates.
type LedgerEntryState struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Note        string          `json:"note"`
}
