package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "hearthbook/internal/errors"
	"hearthbook/internal/logger"
	"hearthbook/internal/pagination"
	"hearthbook/internal/services"
)

// LedgerHandler handles ledger entry requests, including the monthly stats,
// action log, and category read endpoints.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
	logService    services.LedgerLogServicer
	statsService  services.StatsServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer, logService services.LedgerLogServicer, statsService services.StatsServicer) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logService:    logService,
		statsService:  statsService,
	}
}

// CreateEntryRequest represents the request payload for creating a ledger entry.
type CreateEntryRequest struct {
	UserID      uint            `json:"user_id" binding:"required"`
	Date        string          `json:"date" binding:"required,date_only"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
}

// UpdateEntryRequest represents the request payload for updating a ledger
// entry. Omitted fields are left unchanged.
type UpdateEntryRequest struct {
	UserID      uint             `json:"user_id" binding:"required"`
	Date        *string          `json:"date" binding:"omitempty,date_only"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Note        *string          `json:"note"`
}

// CreateEntry handles ledger entry creation.
// @Summary     Create ledger entry
// @Description Create a ledger entry; records an action log entry
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Param       request body     CreateEntryRequest true "Entry fields"
// @Success     201     {object} models.LedgerEntry
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     404     {object} ErrorResponse "User not found"
// @Router      /ledger [post]
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// Binding already validated the date format.
	date, _ := time.Parse(time.DateOnly, req.Date)

	entry, err := h.ledgerService.CreateEntry(req.UserID, date, req.Category, req.Description, req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntries handles listing ledger entries.
// @Summary     List ledger entries
// @Tags        ledger
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.LedgerEntry]
// @Router      /ledger [get]
func (h *LedgerHandler) GetEntries(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.ledgerService.GetEntries(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEntryByID handles retrieving a single ledger entry.
// @Summary     Get ledger entry
// @Tags        ledger
// @Produce     json
// @Param       id  path     int true "Entry ID"
// @Success     200 {object} models.LedgerEntry
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /ledger/{id} [get]
func (h *LedgerHandler) GetEntryByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.ledgerService.GetEntryByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// UpdateEntry handles updating a ledger entry.
// @Summary     Update ledger entry
// @Description Update a ledger entry; the action log captures the pre-update state
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Param       id      path     int                true "Entry ID"
// @Param       request body     UpdateEntryRequest true "Fields to change"
// @Success     200     {object} models.LedgerEntry
// @Failure     404     {object} ErrorResponse "Entry not found"
// @Router      /ledger/{id} [put]
func (h *LedgerHandler) UpdateEntry(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, _ := time.Parse(time.DateOnly, *req.Date)
		date = &parsed
	}

	entry, err := h.ledgerService.UpdateEntry(id, req.UserID, date, req.Category, req.Description, req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteEntry handles deleting a ledger entry.
// @Summary     Delete ledger entry
// @Tags        ledger
// @Produce     json
// @Param       id      path  int true "Entry ID"
// @Param       user_id query int true "Acting user ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /ledger/{id} [delete]
func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "user_id must be a number"))
		return
	}

	if err := h.ledgerService.DeleteEntry(id, uint(userID)); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMonthlyStats handles the monthly category roll-up.
// @Summary     Get monthly stats
// @Description Month-by-month category totals; non-numeric filters are ignored
// @Tags        ledger
// @Produce     json
// @Param       year  query int false "Restrict to a year"
// @Param       month query int false "Restrict to a month of the given year"
// @Success     200 {array} services.MonthlyStats
// @Router      /ledger/stats/monthly [get]
func (h *LedgerHandler) GetMonthlyStats(c *gin.Context) {
	year := parseOptionalInt(c, "year")
	month := parseOptionalInt(c, "month")

	// A month without a year cannot define a range.
	if year == nil {
		month = nil
	}

	c.JSON(http.StatusOK, h.statsService.Monthly(year, month))
}

// GetLogs handles the ledger action log feed.
// @Summary     Get ledger logs
// @Description Most recent ledger mutations, newest first
// @Tags        ledger
// @Produce     json
// @Param       limit query int false "Maximum records to return (default 50)"
// @Success     200 {array} models.LedgerLogRecord
// @Router      /ledger/logs [get]
func (h *LedgerHandler) GetLogs(c *gin.Context) {
	c.JSON(http.StatusOK, h.logService.Query(parseLimit(c)))
}

// GetCategories handles the distinct category listing for a user. An invalid
// user_id fails open: the handler logs a warning and returns an empty list
// so a broken filter cannot break the page it feeds.
// @Summary     Get user categories
// @Tags        ledger
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {array} string
// @Router      /ledger/categories [get]
func (h *LedgerHandler) GetCategories(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil {
		logger.Get().Warnw("invalid user_id for category listing, returning empty result",
			"user_id", c.Query("user_id"),
		)
		c.JSON(http.StatusOK, []string{})
		return
	}

	categories, err := h.ledgerService.Categories(uint(userID))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	c.JSON(http.StatusOK, categories)
}
