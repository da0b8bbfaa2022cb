package models

// User represents a household member who writes ledger entries. The service
// does not authenticate requests itself (that sits in front of it); users
// exist so ledger rows and log records can carry a stable id and username.
type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Entries []LedgerEntry `gorm:"foreignKey:UserID" json:"entries,omitempty"`
}
