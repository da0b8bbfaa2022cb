package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "hearthbook/internal/errors"
	"hearthbook/internal/pagination"
	"hearthbook/internal/services"
)

// AssetHandler handles asset requests, including the audit history and
// growth series read endpoints.
type AssetHandler struct {
	assetService    services.AssetServicer
	auditService    services.AuditServicer
	snapshotService services.SnapshotServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer, snapshotService services.SnapshotServicer) *AssetHandler {
	return &AssetHandler{
		assetService:    assetService,
		auditService:    auditService,
		snapshotService: snapshotService,
	}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`
}

// UpdateAssetRequest represents the request payload for updating an asset.
// Omitted fields are left unchanged.
type UpdateAssetRequest struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Note     *string          `json:"note"`
}

// CreateAsset handles asset creation.
// @Summary     Create asset
// @Description Create a new asset; records an audit entry and a value snapshot
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body     CreateAssetRequest true "Asset fields"
// @Success     201     {object} models.Asset
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(req.Name, req.Category, req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// GetAssets handles listing assets.
// @Summary     List assets
// @Tags        assets
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Asset]
// @Router      /assets [get]
func (h *AssetHandler) GetAssets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.assetService.GetAssets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAssetByID handles retrieving a single asset.
// @Summary     Get asset
// @Tags        assets
// @Produce     json
// @Param       id  path     int true "Asset ID"
// @Success     200 {object} models.Asset
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAssetByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// UpdateAsset handles updating an asset.
// @Summary     Update asset
// @Description Update an asset; records an audit entry and a value snapshot
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       id      path     int                true "Asset ID"
// @Param       request body     UpdateAssetRequest true "Fields to change"
// @Success     200     {object} models.Asset
// @Failure     404     {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.UpdateAsset(id, req.Name, req.Category, req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// DeleteAsset handles deleting an asset.
// @Summary     Delete asset
// @Description Delete an asset; records an audit entry and a value snapshot
// @Tags        assets
// @Produce     json
// @Param       id  path int true "Asset ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetGrowth handles the daily value-over-time series.
// @Summary     Get growth series
// @Description Daily total-value series reconstructed from snapshots, latest value per day
// @Tags        assets
// @Produce     json
// @Param       start_date query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param       end_date   query string false "End date (YYYY-MM-DD, inclusive)"
// @Success     200 {array}  services.GrowthPoint
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /assets/growth [get]
func (h *AssetHandler) GetGrowth(c *gin.Context) {
	from, err := parseOptionalDate(c, "start_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseOptionalDate(c, "end_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.snapshotService.Growth(from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// GetHistory handles the asset audit history feed.
// @Summary     Get audit history
// @Description Most recent asset mutations, newest first
// @Tags        assets
// @Produce     json
// @Param       limit query int false "Maximum records to return (default 50)"
// @Success     200 {array} models.AuditRecord
// @Router      /assets/history [get]
func (h *AssetHandler) GetHistory(c *gin.Context) {
	records, err := h.auditService.Query(parseLimit(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
