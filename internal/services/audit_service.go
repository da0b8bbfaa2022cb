package services

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "hearthbook/internal/errors"
	"hearthbook/internal/logger"
	"hearthbook/internal/models"
)

// defaultQueryLimit caps history queries when the caller supplies no limit.
const defaultQueryLimit = 50

// auditService records immutable before/after history for asset mutations.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log persists one AuditRecord for a single mutation and returns it. The
// write completes before Log returns; a store failure propagates to the
// caller. Serialization failures of oldValue/newValue degrade to a stored
// null instead of aborting the mutation.
func (s *auditService) Log(
	action models.AuditAction,
	entityType string,
	entityID uint,
	entityName string,
	oldValue, newValue any,
	previousTotal, currentTotal *decimal.Decimal,
) (*models.AuditRecord, error) {
	record := &models.AuditRecord{
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		EntityName:    entityName,
		OldValue:      marshalValue(oldValue, action, entityID),
		NewValue:      marshalValue(newValue, action, entityID),
		PreviousTotal: previousTotal,
		CurrentTotal:  currentTotal,
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return record, nil
}

// Query returns the newest records first, at most limit of them. A
// non-positive limit falls back to the default of 50.
func (s *auditService) Query(limit int) ([]models.AuditRecord, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	var records []models.AuditRecord
	if err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return records, nil
}

// marshalValue serializes an entity state to its opaque stored form. A nil
// value stays nil (CREATE has no old state, DELETE no new state).
func marshalValue(v any, action models.AuditAction, entityID uint) *string {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		logger.Get().Errorw("failed to marshal audit value, storing null",
			"error", err,
			"action", action,
			"entity_id", entityID,
		)
		return nil
	}

	serialized := string(data)
	return &serialized
}
