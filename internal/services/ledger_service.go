package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "hearthbook/internal/errors"
	"hearthbook/internal/models"
	"hearthbook/internal/pagination"
)

// ledgerService handles ledger entry CRUD. Every mutation hands the entry to
// the log recorder attributed to the acting user; updates capture the
// pre-update state before anything is written.
type ledgerService struct {
	db    *gorm.DB
	log   LedgerLogServicer
	users UserServicer
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB, log LedgerLogServicer, users UserServicer) LedgerServicer {
	return &ledgerService{db: db, log: log, users: users}
}

// normalizeDate strips any time-of-day component, keeping the calendar date
// at midnight UTC. All persisted and derived date forms flow from this.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CreateEntry creates a ledger entry and logs the creation.
func (s *ledgerService) CreateEntry(userID uint, date time.Time, category, description string, amount decimal.Decimal, note string) (*models.LedgerEntry, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		UserID:      userID,
		Date:        normalizeDate(date),
		Category:    category,
		Description: description,
		Amount:      amount,
		Note:        note,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.log.Log(entry, userID, user.Username, models.LedgerActionCreate, nil)
	return entry, nil
}

// GetEntryByID retrieves a single ledger entry.
func (s *ledgerService) GetEntryByID(id uint) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// GetEntries retrieves a paginated list of ledger entries, newest dates first.
func (s *ledgerService) GetEntries(page pagination.PageRequest) (*pagination.PageResponse[models.LedgerEntry], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.LedgerEntry{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.LedgerEntry
	if err := base.Order("date DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateEntry applies the provided fields and logs the update together with
// the pre-update state. A missing entry fails closed with ErrEntryNotFound.
func (s *ledgerService) UpdateEntry(id, userID uint, date *time.Time, category, description *string, amount *decimal.Decimal, note *string) (*models.LedgerEntry, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	entry, err := s.GetEntryByID(id)
	if err != nil {
		return nil, err
	}

	// Captured before the mutation is applied; the recorder stores it as-is.
	previous := entry.State()

	updates := make(map[string]interface{})
	if date != nil {
		updates["date"] = normalizeDate(*date)
	}
	if category != nil && *category != "" {
		updates["category"] = *category
	}
	if description != nil {
		updates["description"] = *description
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if note != nil {
		updates["note"] = *note
	}

	if len(updates) > 0 {
		if err := s.db.Model(entry).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	s.log.Log(entry, userID, user.Username, models.LedgerActionUpdate, &previous)
	return entry, nil
}

// DeleteEntry soft-deletes the entry and logs the deletion.
func (s *ledgerService) DeleteEntry(id, userID uint) error {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return err
	}

	entry, err := s.GetEntryByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.log.Log(entry, userID, user.Username, models.LedgerActionDelete, nil)
	return nil
}

// Categories returns the distinct categories used by a user's entries.
func (s *ledgerService) Categories(userID uint) ([]string, error) {
	var categories []string
	if err := s.db.Model(&models.LedgerEntry{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
