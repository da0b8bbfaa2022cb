package services

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"hearthbook/internal/logger"
	"hearthbook/internal/models"
)

// ledgerLogService records the immutable action log for ledger mutations.
type ledgerLogService struct {
	db *gorm.DB
}

// NewLedgerLogService creates a new LedgerLogServicer.
func NewLedgerLogService(db *gorm.DB) LedgerLogServicer {
	return &ledgerLogService{db: db}
}

// Log writes one LedgerLogRecord capturing the entry's fields as of call
// time. The entry's date is always persisted in its plain YYYY-MM-DD form.
// previous is the caller-captured pre-update state and is set only for
// updates; this recorder never computes the diff itself. Errors are logged
// but never propagate, so the ledger mutation is not disrupted.
func (s *ledgerLogService) Log(
	entry *models.LedgerEntry,
	userID uint,
	username string,
	action models.LedgerAction,
	previous *models.LedgerEntryState,
) {
	record := &models.LedgerLogRecord{
		EntryID:     entry.ID,
		UserID:      userID,
		Username:    username,
		Action:      action,
		Description: entry.Description,
		Amount:      entry.Amount,
		Category:    entry.Category,
		Date:        entry.Date.Format(time.DateOnly),
		Note:        entry.Note,
	}

	if previous != nil {
		data, err := json.Marshal(previous)
		if err != nil {
			logger.Get().Errorw("failed to marshal previous ledger state, storing null",
				"error", err,
				"entry_id", entry.ID,
			)
		} else {
			serialized := string(data)
			record.PreviousData = &serialized
		}
	}

	if err := s.db.Create(record).Error; err != nil {
		logger.Get().Errorw("failed to create ledger log record",
			"error", err,
			"entry_id", entry.ID,
			"user_id", userID,
			"action", action,
		)
	}
}

// Query returns the newest records first, at most limit of them (default
// 50). Fail-open: a store error yields an empty slice.
func (s *ledgerLogService) Query(limit int) []models.LedgerLogRecord {
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	var records []models.LedgerLogRecord
	if err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&records).Error; err != nil {
		logger.Get().Warnw("ledger log query failed, returning empty result", "error", err)
		return []models.LedgerLogRecord{}
	}
	return records
}
