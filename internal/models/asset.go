package models

import "github.com/shopspring/decimal"

// Asset represents a tracked household asset (bank account, deposit,
// property, ...). Every mutation to an asset must go through the asset
// service so that an AuditRecord and a Snapshot are produced alongside it.
type Asset struct {
	Base
	Name     string          `gorm:"not null" json:"name"`
	Category string          `json:"category,omitempty"`
	Amount   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Note     string          `json:"note,omitempty"`
}

// State captures the asset's mutable fields for audit serialization.
func (a *Asset) State() map[string]any {
	return map[string]any{
		"name":     a.Name,
		"category": a.Category,
		"amount":   a.Amount,
		"note":     a.Note,
	}
}
