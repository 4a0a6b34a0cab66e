package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests related to entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
	formats      services.Formatters
}

func newEntryHandler(es portssvc.EntrySvcFacade, formats services.Formatters) *entryHandler {
	return &entryHandler{entryService: es, formats: formats}
}

// registerEntryRoutes registers routes related to entries.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade, formats services.Formatters) {
	h := newEntryHandler(entryService, formats)

	entries := rg.Group("/entries")
	{
		entries.GET("/rows/new", h.newRow)
		entries.POST("/rows/validate", h.validateRow)
		entries.POST("/rows/commit", h.commitRow)
		entries.POST("/rows/balances", h.rowBalances)
		entries.POST("/search", h.searchEntries)
		entries.GET("/:number", h.getEntry)
		entries.GET("/:number/row", h.getRow)
		entries.DELETE("/:number", h.deleteEntry)
	}
}

// newRow returns a blank row, preset on the ledger given as query parameter.
func (h *entryHandler) newRow(c *gin.Context) {
	row := h.entryService.NewRow(c.Request.Context(), c.Query("ledger"))
	c.JSON(http.StatusOK, dto.ToEntryRowResponse(row))
}

// validateRow runs the validation engine and returns the row with its
// message and computed defaults. An invalid row is still a 200.
func (h *entryHandler) validateRow(c *gin.Context) {
	var req dto.EntryRowRequest
	if !bindJSON(c, &req, "ValidateRow") {
		return
	}
	row := h.entryService.ValidateRow(c.Request.Context(), req.ToDomainEntryRow())
	c.JSON(http.StatusOK, dto.ToEntryRowResponse(row))
}

func (h *entryHandler) commitRow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EntryRowRequest
	if !bindJSON(c, &req, "CommitRow") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	row := req.ToDomainEntryRow()
	isNew := row.Number == 0
	entry, err := h.entryService.CommitRow(c.Request.Context(), row, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Row not committed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "row": dto.ToEntryRowResponse(row)})
			return
		}
		respondError(c, err, "Failed to commit entry")
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	logger.Info("Entry committed", slog.Int64("entry_number", entry.Number), slog.Bool("created", isNew))
	c.JSON(status, gin.H{"entry": dto.ToEntryResponse(entry), "row": dto.ToEntryRowResponse(row)})
}

func (h *entryHandler) rowBalances(c *gin.Context) {
	var req dto.RowBalancesRequest
	if !bindJSON(c, &req, "RowBalances") {
		return
	}
	rows := make([]domain.EntryRow, len(req.Rows))
	for i, r := range req.Rows {
		rows[i] = *r.ToDomainEntryRow()
	}
	balances, err := h.entryService.ComputeRowBalances(c.Request.Context(), rows)
	if err != nil {
		respondError(c, err, "Failed to compute balances")
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": dto.ToBalanceResponses(balances, h.formats.Amounts.Format)})
}

func (h *entryHandler) searchEntries(c *gin.Context) {
	var req dto.SearchEntriesRequest
	if !bindJSON(c, &req, "SearchEntries") {
		return
	}
	entries, balances, err := h.entryService.ListEntries(c.Request.Context(), req.View)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.SearchEntriesResponse{
		Entries:  dto.ToListEntryResponse(entries),
		Balances: dto.ToBalanceResponses(balances, h.formats.Amounts.Format),
	})
}

func (h *entryHandler) getEntry(c *gin.Context) {
	number, ok := int64Param(c, "number")
	if !ok {
		return
	}
	entry, err := h.entryService.GetEntry(c.Request.Context(), number)
	if err != nil {
		respondError(c, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) getRow(c *gin.Context) {
	number, ok := int64Param(c, "number")
	if !ok {
		return
	}
	row, err := h.entryService.GetRow(c.Request.Context(), number)
	if err != nil {
		respondError(c, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryRowResponse(row))
}

func (h *entryHandler) deleteEntry(c *gin.Context) {
	number, ok := int64Param(c, "number")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.entryService.DeleteEntry(c.Request.Context(), number, userID); err != nil {
		respondError(c, err, "Failed to delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}
