package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "hearthbook/internal/errors"
	"hearthbook/internal/models"
)

// snapshotService records total-value snapshots and reconstructs the daily
// growth series from them.
type snapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB) SnapshotServicer {
	return &snapshotService{db: db}
}

// CurrentTotal reads all live assets and sums their amounts. Summation
// happens on decimal values, never on the raw column representation, so a
// string-typed amount from the store coerces to a numeric before it is
// added.
func (s *snapshotService) CurrentTotal() (decimal.Decimal, error) {
	var assets []models.Asset
	if err := s.db.Find(&assets).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := decimal.Zero
	for i := range assets {
		total = total.Add(assets[i].Amount)
	}
	return total, nil
}

// Create persists a snapshot of the current total at the current timestamp.
// Deliberately not idempotent: calling it twice without an intervening
// mutation yields two rows with equal totals and distinct timestamps, which
// is what lets the growth series resolve "last known value per day".
func (s *snapshotService) Create() (*models.Snapshot, error) {
	total, err := s.CurrentTotal()
	if err != nil {
		return nil, err
	}

	snapshot := &models.Snapshot{TotalValue: total}
	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot, nil
}

// Growth reconstructs the value-over-time series: one point per calendar
// day, taking the latest snapshot of each day, sorted ascending by date.
// Bounds are inclusive on both ends; from is widened to the start of its day
// and to is widened to 23:59:59.999. Pure read, no side effects.
func (s *snapshotService) Growth(from, to *time.Time) ([]GrowthPoint, error) {
	query := s.db.Model(&models.Snapshot{})
	if from != nil {
		start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
		query = query.Where("created_at >= ?", start)
	}
	if to != nil {
		end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(999*time.Millisecond), to.Location())
		query = query.Where("created_at <= ?", end)
	}

	var snapshots []models.Snapshot
	if err := query.Order("created_at ASC, id ASC").Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Iterating in ascending order means the latest snapshot of each day
	// overwrites the earlier ones.
	byDay := make(map[string]decimal.Decimal, len(snapshots))
	for i := range snapshots {
		byDay[snapshots[i].CreatedAt.Format(time.DateOnly)] = snapshots[i].TotalValue
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]GrowthPoint, 0, len(days))
	for _, day := range days {
		points = append(points, GrowthPoint{Date: day, Value: byDay[day]})
	}
	return points, nil
}
