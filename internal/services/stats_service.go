package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"hearthbook/internal/logger"
	"hearthbook/internal/models"
)

// statsService builds monthly category roll-ups from the ledger.
type statsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB) StatsServicer {
	return &statsService{db: db}
}

// Monthly recomputes the month → category → {total, count, entries}
// projection from the current ledger entry set. With year and month it
// restricts to that month, with year alone to that year, otherwise it spans
// all entries. Months are ordered descending (most recent first). Store
// errors degrade to an empty result.
func (s *statsService) Monthly(year, month *int) []MonthlyStats {
	query := s.db.Model(&models.LedgerEntry{})
	switch {
	case year != nil && month != nil:
		start := time.Date(*year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(0, 1, 0))
	case year != nil:
		start := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(1, 0, 0))
	}

	var entries []models.LedgerEntry
	if err := query.Order("id ASC").Find(&entries).Error; err != nil {
		logger.Get().Warnw("monthly stats query failed, returning empty result", "error", err)
		return []MonthlyStats{}
	}

	months := make(map[string]*MonthlyStats)
	for i := range entries {
		entry := entries[i]

		stats, ok := months[entry.MonthKey()]
		if !ok {
			stats = &MonthlyStats{
				Month:      entry.MonthKey(),
				Categories: make(map[string]*CategoryStats),
			}
			months[entry.MonthKey()] = stats
		}

		categoryStats, ok := stats.Categories[entry.Category]
		if !ok {
			categoryStats = &CategoryStats{}
			stats.Categories[entry.Category] = categoryStats
		}

		categoryStats.Total = categoryStats.Total.Add(entry.Amount)
		categoryStats.Count++
		categoryStats.Entries = append(categoryStats.Entries, entry)
		stats.TotalAmount = stats.TotalAmount.Add(entry.Amount)
	}

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	result := make([]MonthlyStats, 0, len(keys))
	for _, key := range keys {
		result = append(result, *months[key])
	}
	return result
}
