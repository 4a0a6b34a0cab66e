package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// bookHandler handles the reference data of the book and its rough totals.
type bookHandler struct {
	bookService        portssvc.BookSvc
	remediationService portssvc.RemediationSvc
	formats            services.Formatters
}

func registerBookRoutes(rg *gin.RouterGroup, bookService portssvc.BookSvc, remediationService portssvc.RemediationSvc, formats services.Formatters) {
	h := &bookHandler{bookService: bookService, remediationService: remediationService, formats: formats}

	rg.GET("/currencies", h.listCurrencies)
	rg.PUT("/currencies", h.saveCurrency)
	rg.GET("/accounts", h.listAccounts)
	rg.PUT("/accounts", h.saveAccount)
	rg.GET("/ledgers", h.listLedgers)
	rg.PUT("/ledgers", h.saveLedger)
	rg.GET("/dossier", h.getDossier)
	rg.PUT("/dossier/exercise", h.openExercise)
	rg.POST("/balances/recompute", h.recomputeTotals)
}

func (h *bookHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.bookService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, currencies)
}

func (h *bookHandler) saveCurrency(c *gin.Context) {
	var req dto.SaveCurrencyRequest
	if !bindJSON(c, &req, "SaveCurrency") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	currency, err := h.bookService.SaveCurrency(c.Request.Context(), req.ToDomainCurrency(), userID)
	if err != nil {
		respondError(c, err, "Failed to save currency")
		return
	}
	c.JSON(http.StatusOK, currency)
}

func (h *bookHandler) listAccounts(c *gin.Context) {
	accounts, err := h.bookService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *bookHandler) saveAccount(c *gin.Context) {
	var req dto.SaveAccountRequest
	if !bindJSON(c, &req, "SaveAccount") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	account, err := h.bookService.SaveAccount(c.Request.Context(), req.ToDomainAccount(), userID)
	if err != nil {
		respondError(c, err, "Failed to save account")
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *bookHandler) listLedgers(c *gin.Context) {
	ledgers, err := h.bookService.ListLedgers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list ledgers")
		return
	}
	c.JSON(http.StatusOK, ledgers)
}

func (h *bookHandler) saveLedger(c *gin.Context) {
	var req dto.SaveLedgerRequest
	if !bindJSON(c, &req, "SaveLedger") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ledger := domain.Ledger{Mnemo: req.Mnemo, Label: req.Label}
	if req.LastClose != "" {
		closed, err := h.formats.Dates.Parse(req.LastClose)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid closing date: " + req.LastClose})
			return
		}
		ledger.LastClose = &closed
	}

	saved, err := h.bookService.SaveLedger(c.Request.Context(), ledger, userID)
	if err != nil {
		respondError(c, err, "Failed to save ledger")
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *bookHandler) getDossier(c *gin.Context) {
	dossier, err := h.bookService.GetDossier(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve dossier")
		return
	}
	c.JSON(http.StatusOK, dto.ToDossierResponse(dossier))
}

func (h *bookHandler) openExercise(c *gin.Context) {
	var req dto.OpenExerciseRequest
	if !bindJSON(c, &req, "OpenExercise") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var bounds [2]time.Time
	for i, s := range []string{req.Begin, req.End} {
		t, err := h.formats.Dates.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exercise date: " + s})
			return
		}
		bounds[i] = t
	}

	dossier, err := h.bookService.OpenExercise(c.Request.Context(), bounds[0], bounds[1], userID)
	if err != nil {
		respondError(c, err, "Failed to open exercise")
		return
	}
	c.JSON(http.StatusOK, dto.ToDossierResponse(dossier))
}

// recomputeTotals rebuilds every rough total from the rough entries.
func (h *bookHandler) recomputeTotals(c *gin.Context) {
	if err := h.remediationService.RecomputeRoughTotals(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to recompute rough totals")
		return
	}
	c.Status(http.StatusNoContent)
}
