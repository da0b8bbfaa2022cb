package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hearthbook/internal/uuid"
)

// Snapshot is a point-in-time reading of the total value across all assets,
// recorded once per asset mutation. Append-only: creation order is time
// order, and two snapshots with identical totals are expected when nothing
// changed in between.
type Snapshot struct {
	ID         string          `gorm:"type:uuid;primaryKey" json:"id"`
	TotalValue decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_value"`
	CreatedAt  time.Time       `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook generates a time-ordered UUIDv7 for new records.
func (s *Snapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}
