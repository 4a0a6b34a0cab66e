package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settlementHandler handles HTTP requests related to settlements.
type settlementHandler struct {
	settlementService portssvc.SettlementSvc
	formats           services.Formatters
}

func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvc, formats services.Formatters) {
	h := &settlementHandler{settlementService: settlementService, formats: formats}

	settlements := rg.Group("/settlements")
	{
		settlements.POST("", h.settle)
		settlements.POST("/clear", h.unsettle)
	}
}

// settle answers 409 with the per-currency balances when the selection does
// not balance and force was not set. Partial failures answer 207; when no
// entry could be written the mapped error status is answered instead.
func (h *settlementHandler) settle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SettleRequest
	if !bindJSON(c, &req, "Settle") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	number, result, err := h.settlementService.Settle(c.Request.Context(), req.Numbers, portssvc.SettleOptions{Force: req.Force}, userID)
	var unbalanced *portssvc.UnbalancedSelectionError
	if errors.As(err, &unbalanced) {
		logger.Info("Settlement needs confirmation", slog.Int("entries", len(req.Numbers)))
		c.JSON(http.StatusConflict, dto.UnbalancedSelectionResponse{
			Error:    unbalanced.Error(),
			Balances: dto.ToBalanceResponseSlice(unbalanced.Balances, h.formats.Amounts.Format),
		})
		return
	}
	if nothingWritten(result, err) {
		respondError(c, err, "Failed to settle entries")
		return
	}

	c.JSON(bulkStatus(err), dto.SettleResponse{
		SettlementNumber:   number,
		BulkResultResponse: dto.ToBulkResultResponse(result),
	})
}

func (h *settlementHandler) unsettle(c *gin.Context) {
	var req dto.UnsettleRequest
	if !bindJSON(c, &req, "Unsettle") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.settlementService.Unsettle(c.Request.Context(), req.Numbers, userID)
	if nothingWritten(result, err) {
		respondError(c, err, "Failed to unsettle entries")
		return
	}
	c.JSON(bulkStatus(err), dto.ToBulkResultResponse(result))
}

func nothingWritten(result *domain.BulkResult, err error) bool {
	return result == nil || (err != nil && len(result.Succeeded) == 0)
}

func bulkStatus(err error) int {
	if err != nil {
		return http.StatusMultiStatus
	}
	return http.StatusOK
}
