package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// SaveCurrencyRequest defines a currency of the book.
type SaveCurrencyRequest struct {
	Code   string `json:"code" binding:"required,len=3,alpha"`
	Label  string `json:"label" binding:"max=100"`
	Symbol string `json:"symbol" binding:"max=8"`
	Digits *int   `json:"digits" binding:"required,min=0,max=6"`
}

// ToDomainCurrency converts the request.
func (r SaveCurrencyRequest) ToDomainCurrency() domain.Currency {
	return domain.Currency{Code: r.Code, Label: r.Label, Symbol: r.Symbol, Digits: *r.Digits}
}

// SaveAccountRequest defines an account of the chart.
type SaveAccountRequest struct {
	Number   string `json:"number" binding:"required,max=20"`
	Label    string `json:"label" binding:"max=200"`
	Currency string `json:"currency" binding:"required,len=3,alpha"`
	IsRoot   bool   `json:"isRoot"`
}

// ToDomainAccount converts the request.
func (r SaveAccountRequest) ToDomainAccount() domain.Account {
	return domain.Account{Number: r.Number, Label: r.Label, Currency: r.Currency, IsRoot: r.IsRoot}
}

// SaveLedgerRequest defines a ledger. LastClose is typed in the display order.
type SaveLedgerRequest struct {
	Mnemo     string `json:"mnemo" binding:"required,max=6,mnemo"`
	Label     string `json:"label" binding:"max=200"`
	LastClose string `json:"lastClose" binding:"omitempty,bookdate"`
}

// OpenExerciseRequest sets the bounds of the current exercise.
type OpenExerciseRequest struct {
	Begin string `json:"begin" binding:"required,bookdate"`
	End   string `json:"end" binding:"required,bookdate"`
}

// DossierResponse defines the data returned for the dossier.
type DossierResponse struct {
	ExeBegin       string `json:"exeBegin,omitempty"`
	ExeEnd         string `json:"exeEnd,omitempty"`
	LastSettlement int64  `json:"lastSettlement"`
	LastConcil     int64  `json:"lastConcil"`
}

// ToDossierResponse converts a domain.Dossier.
func ToDossierResponse(d *domain.Dossier) DossierResponse {
	res := DossierResponse{LastSettlement: d.LastSettlement, LastConcil: d.LastConcil}
	if d.ExeBegin != nil {
		res.ExeBegin = d.ExeBegin.Format(time.DateOnly)
	}
	if d.ExeEnd != nil {
		res.ExeEnd = d.ExeEnd.Format(time.DateOnly)
	}
	return res
}
