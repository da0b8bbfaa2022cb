package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "hearthbook/internal/errors"
	"hearthbook/internal/models"
	"hearthbook/internal/pagination"
)

// assetEntityType is the entity type recorded on asset audit records.
const assetEntityType = "asset"

// assetService handles asset CRUD and drives the audit/snapshot sequence
// around every mutation: entity write, then audit write, then snapshot.
// The three writes are independent; see AssetServicer for the consistency
// gap this implies.
type assetService struct {
	db        *gorm.DB
	audit     AuditServicer
	snapshots SnapshotServicer
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB, audit AuditServicer, snapshots SnapshotServicer) AssetServicer {
	return &assetService{db: db, audit: audit, snapshots: snapshots}
}

// CreateAsset creates an asset, audits the creation with the totals observed
// before and after it, and records a snapshot.
func (s *assetService) CreateAsset(name, category string, amount decimal.Decimal, note string) (*models.Asset, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
	}

	previousTotal, err := s.snapshots.CurrentTotal()
	if err != nil {
		return nil, err
	}

	asset := &models.Asset{
		Name:     name,
		Category: category,
		Amount:   amount,
		Note:     note,
	}
	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.finishMutation(models.AuditActionCreate, asset, nil, asset.State(), previousTotal); err != nil {
		return nil, err
	}
	return asset, nil
}

// GetAssetByID retrieves a single asset.
func (s *assetService) GetAssetByID(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// GetAssets retrieves a paginated list of assets.
func (s *assetService) GetAssets(page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Asset{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Order("id ASC").Scopes(pagination.Paginate(page)).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateAsset applies the provided fields, audits old versus new state, and
// records a snapshot. A missing asset fails closed with ErrAssetNotFound.
func (s *assetService) UpdateAsset(id uint, name, category *string, amount *decimal.Decimal, note *string) (*models.Asset, error) {
	asset, err := s.GetAssetByID(id)
	if err != nil {
		return nil, err
	}

	oldState := asset.State()
	previousTotal, err := s.snapshots.CurrentTotal()
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil && *name != "" {
		updates["name"] = *name
	}
	if category != nil {
		updates["category"] = *category
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if note != nil {
		updates["note"] = *note
	}

	if len(updates) > 0 {
		if err := s.db.Model(asset).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if err := s.finishMutation(models.AuditActionUpdate, asset, oldState, asset.State(), previousTotal); err != nil {
		return nil, err
	}
	return asset, nil
}

// DeleteAsset soft-deletes the asset, audits the deletion, and records a
// snapshot of the reduced total.
func (s *assetService) DeleteAsset(id uint) error {
	asset, err := s.GetAssetByID(id)
	if err != nil {
		return err
	}

	oldState := asset.State()
	previousTotal, err := s.snapshots.CurrentTotal()
	if err != nil {
		return err
	}

	if err := s.db.Delete(asset).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.finishMutation(models.AuditActionDelete, asset, oldState, nil, previousTotal)
}

// finishMutation runs the post-write sequence shared by all mutations: audit
// the change with before/after totals, then snapshot. The audit write must
// succeed before the snapshot is attempted.
func (s *assetService) finishMutation(
	action models.AuditAction,
	asset *models.Asset,
	oldState, newState any,
	previousTotal decimal.Decimal,
) error {
	currentTotal, err := s.snapshots.CurrentTotal()
	if err != nil {
		return err
	}

	if _, err := s.audit.Log(action, assetEntityType, asset.ID, asset.Name, oldState, newState, &previousTotal, &currentTotal); err != nil {
		return err
	}

	if _, err := s.snapshots.Create(); err != nil {
		return err
	}
	return nil
}
