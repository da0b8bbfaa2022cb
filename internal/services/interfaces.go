package services

import (
	"time"

	"github.com/shopspring/decimal"

	"hearthbook/internal/models"
	"hearthbook/internal/pagination"
)

// AuditServicer defines the contract for recording asset mutations. Log
// persists the record before returning; callers must check the error before
// snapshotting so "what changed" is always durable before "what is the new
// total".
type AuditServicer interface {
	Log(action models.AuditAction, entityType string, entityID uint, entityName string,
		oldValue, newValue any, previousTotal, currentTotal *decimal.Decimal) (*models.AuditRecord, error)
	Query(limit int) ([]models.AuditRecord, error)
}

// GrowthPoint is one day of the reconstructed value-over-time series.
type GrowthPoint struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// SnapshotServicer defines the contract for total-value snapshots and the
// growth series derived from them.
//
// Create performs a read-all-then-sum-then-write sequence with no locking:
// two mutations racing each other may record a snapshot computed from a
// partially stale read. Calls with no intervening mutation intentionally
// produce duplicate totals at distinct timestamps.
type SnapshotServicer interface {
	Create() (*models.Snapshot, error)
	CurrentTotal() (decimal.Decimal, error)
	Growth(from, to *time.Time) ([]GrowthPoint, error)
}

// CategoryStats aggregates the ledger entries of one category within a month.
type CategoryStats struct {
	Total   decimal.Decimal      `json:"total"`
	Count   int                  `json:"count"`
	Entries []models.LedgerEntry `json:"entries"`
}

// MonthlyStats is the read-time projection of one month of ledger activity.
// Never persisted; recomputed from the current entry set on every call.
type MonthlyStats struct {
	Month       string                    `json:"month"`
	Categories  map[string]*CategoryStats `json:"categories"`
	TotalAmount decimal.Decimal           `json:"total_amount"`
}

// StatsServicer defines the contract for monthly category roll-ups.
// Monthly is fail-open: store errors yield an empty slice, never an error,
// so a broken history view cannot break the rest of the page.
type StatsServicer interface {
	Monthly(year, month *int) []MonthlyStats
}

// LedgerLogServicer defines the contract for the ledger action log. Log is
// synchronous fire-and-persist: failures are logged and swallowed so the
// ledger mutation itself is never disrupted. For updates, previous must be
// captured by the caller before the mutation is applied. Query shares the
// fail-open policy of StatsServicer.
type LedgerLogServicer interface {
	Log(entry *models.LedgerEntry, userID uint, username string, action models.LedgerAction, previous *models.LedgerEntryState)
	Query(limit int) []models.LedgerLogRecord
}

// AssetServicer defines the contract for asset CRUD. Every mutation produces
// exactly one AuditRecord followed by one Snapshot.
//
// The entity-write, audit-write, and snapshot-write are three independent
// statements, not a transaction. If the snapshot write fails after the first
// two succeeded, the mutation stands audited while the aggregate total stays
// stale until the next successful mutation recomputes it.
type AssetServicer interface {
	CreateAsset(name, category string, amount decimal.Decimal, note string) (*models.Asset, error)
	GetAssetByID(id uint) (*models.Asset, error)
	GetAssets(page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
	UpdateAsset(id uint, name, category *string, amount *decimal.Decimal, note *string) (*models.Asset, error)
	DeleteAsset(id uint) error
}

// LedgerServicer defines the contract for ledger entry CRUD. Every mutation
// produces exactly one LedgerLogRecord attributed to the acting user.
type LedgerServicer interface {
	CreateEntry(userID uint, date time.Time, category, description string, amount decimal.Decimal, note string) (*models.LedgerEntry, error)
	GetEntryByID(id uint) (*models.LedgerEntry, error)
	GetEntries(page pagination.PageRequest) (*pagination.PageResponse[models.LedgerEntry], error)
	UpdateEntry(id, userID uint, date *time.Time, category, description *string, amount *decimal.Decimal, note *string) (*models.LedgerEntry, error)
	DeleteEntry(id, userID uint) error
	Categories(userID uint) ([]string, error)
}

// UserServicer defines the contract for user records. Lookups by ID go
// through the injected TTL cache.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}
