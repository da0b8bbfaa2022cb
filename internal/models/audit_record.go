package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hearthbook/internal/uuid"
)

// AuditAction is the kind of mutation an AuditRecord describes.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// AuditRecord is the immutable before/after log entry written for every
// asset mutation. Append-only time-series data — no Base embed, no soft
// deletes, never updated after creation. OldValue is null only for CREATE,
// NewValue is null only for DELETE.
type AuditRecord struct {
	ID            string           `gorm:"type:uuid;primaryKey" json:"id"`
	Action        AuditAction      `gorm:"not null" json:"action"`
	EntityType    string           `gorm:"not null;index" json:"entity_type"`
	EntityID      uint             `gorm:"not null;index" json:"entity_id"`
	EntityName    string           `json:"entity_name"`
	OldValue      *string          `json:"old_value,omitempty"`
	NewValue      *string          `json:"new_value,omitempty"`
	PreviousTotal *decimal.Decimal `gorm:"type:decimal(20,4)" json:"previous_total,omitempty"`
	CurrentTotal  *decimal.Decimal `gorm:"type:decimal(20,4)" json:"current_total,omitempty"`
	CreatedAt     time.Time        `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook generates a time-ordered UUIDv7 for new records.
func (r *AuditRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}
