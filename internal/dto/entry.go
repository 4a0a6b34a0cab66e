package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/filter"
	"github.com/shopspring/decimal"
)

// EntryRowRequest carries a row as typed by the user. Field contents are not
// checked here: the validation engine reports them on the row itself.
type EntryRowRequest struct {
	Number      int64  `json:"number" binding:"gte=0"`
	DOpe        string `json:"dope"`
	DEffect     string `json:"deffect"`
	Label       string `json:"label"`
	Ref         string `json:"ref"`
	Notes       string `json:"notes"`
	Ledger      string `json:"ledger"`
	Account     string `json:"account"`
	Currency    string `json:"currency"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	OpeTemplate string `json:"opeTemplate"`

	DOpeSet     bool `json:"dopeSet"`
	DEffectSet  bool `json:"deffectSet"`
	CurrencySet bool `json:"currencySet"`
}

// ToDomainEntryRow converts the request into a row ready to be validated.
func (r EntryRowRequest) ToDomainEntryRow() *domain.EntryRow {
	return &domain.EntryRow{
		Number:      r.Number,
		DOpe:        r.DOpe,
		DEffect:     r.DEffect,
		Label:       r.Label,
		Ref:         r.Ref,
		Notes:       r.Notes,
		Ledger:      r.Ledger,
		Account:     r.Account,
		Currency:    r.Currency,
		Debit:       r.Debit,
		Credit:      r.Credit,
		OpeTemplate: r.OpeTemplate,
		DOpeSet:     r.DOpeSet,
		DEffectSet:  r.DEffectSet,
		CurrencySet: r.CurrencySet,
	}
}

// EntryRowResponse is a row after validation.
type EntryRowResponse struct {
	domain.EntryRow
	Committable bool `json:"committable"`
}

// ToEntryRowResponse wraps the row with its committable flag.
func ToEntryRowResponse(row *domain.EntryRow) EntryRowResponse {
	return EntryRowResponse{EntryRow: *row, Committable: row.IsCommittable()}
}

// EntryResponse defines the data returned for a stored entry.
type EntryResponse struct {
	Number           int64              `json:"number"`
	DOpe             string             `json:"dope"`
	DEffect          string             `json:"deffect"`
	Label            string             `json:"label"`
	Ref              string             `json:"ref"`
	Notes            string             `json:"notes"`
	Ledger           string             `json:"ledger"`
	Account          string             `json:"account"`
	Currency         string             `json:"currency"`
	Debit            decimal.Decimal    `json:"debit"`
	Credit           decimal.Decimal    `json:"credit"`
	Status           domain.EntryStatus `json:"status"`
	Period           domain.EntryPeriod `json:"period"`
	OpeTemplate      string             `json:"opeTemplate"`
	OpeNumber        int64              `json:"opeNumber"`
	SettlementNumber int64              `json:"settlementNumber"`
	SettlementUser   string             `json:"settlementUser,omitempty"`
	SettlementStamp  *time.Time         `json:"settlementStamp,omitempty"`
	ConcilID         int64              `json:"concilID"`
	CreatedAt        time.Time          `json:"createdAt"`
	CreatedBy        string             `json:"createdBy"`
	LastUpdatedAt    time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy    string             `json:"lastUpdatedBy"`
}

// ToEntryResponse converts a domain.Entry; dates are written as YYYY-MM-DD.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		Number:           e.Number,
		DOpe:             e.DOpe.Format(time.DateOnly),
		DEffect:          e.DEffect.Format(time.DateOnly),
		Label:            e.Label,
		Ref:              e.Ref,
		Notes:            e.Notes,
		Ledger:           e.Ledger,
		Account:          e.Account,
		Currency:         e.Currency,
		Debit:            e.Debit,
		Credit:           e.Credit,
		Status:           e.Status,
		Period:           e.Period,
		OpeTemplate:      e.OpeTemplate,
		OpeNumber:        e.OpeNumber,
		SettlementNumber: e.SettlementNumber,
		SettlementUser:   e.SettlementUser,
		SettlementStamp:  e.SettlementStamp,
		ConcilID:         e.ConcilID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
		LastUpdatedAt:    e.LastUpdatedAt,
		LastUpdatedBy:    e.LastUpdatedBy,
	}
}

// ToListEntryResponse converts a slice of entries.
func ToListEntryResponse(entries []domain.Entry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}

// SearchEntriesRequest is the view the entries are listed under.
type SearchEntriesRequest struct {
	View filter.View `json:"view"`
}

// SearchEntriesResponse lists the visible entries and their balances.
type SearchEntriesResponse struct {
	Entries  []EntryResponse   `json:"entries"`
	Balances []BalanceResponse `json:"balances"`
}

// RowBalancesRequest holds the rows being edited.
type RowBalancesRequest struct {
	Rows []EntryRowRequest `json:"rows" binding:"required,dive"`
}

// BalanceResponse is the displayed balance of one currency.
type BalanceResponse struct {
	Currency string          `json:"currency"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
	Display  BalanceDisplay  `json:"display"`
	Balanced bool            `json:"balanced"`
}

// BalanceDisplay holds the amounts formatted at the currency precision.
type BalanceDisplay struct {
	Debit  string `json:"debit"`
	Credit string `json:"credit"`
}

// AmountFormat formats an amount at a number of digits.
type AmountFormat func(amount decimal.Decimal, digits int) string

// ToBalanceResponses converts the non-zero buckets of a balance set.
func ToBalanceResponses(set *domain.BalanceSet, format AmountFormat) []BalanceResponse {
	if set == nil {
		return []BalanceResponse{}
	}
	return ToBalanceResponseSlice(set.Visible(), format)
}

// ToBalanceResponseSlice converts already selected buckets.
func ToBalanceResponseSlice(buckets []domain.CurrencyBalance, format AmountFormat) []BalanceResponse {
	res := make([]BalanceResponse, len(buckets))
	for i, b := range buckets {
		res[i] = BalanceResponse{
			Currency: b.Currency,
			Debit:    b.Debit,
			Credit:   b.Credit,
			Display: BalanceDisplay{
				Debit:  format(b.Debit, b.Digits),
				Credit: format(b.Credit, b.Digits),
			},
			Balanced: b.IsBalanced(),
		}
	}
	return res
}
