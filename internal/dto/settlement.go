package dto

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// SettleRequest selects the entries to settle together.
type SettleRequest struct {
	Numbers []int64 `json:"numbers" binding:"required,min=1,dive,gt=0"`
	// Force settles even when the selection does not balance.
	Force bool `json:"force"`
}

// UnsettleRequest selects the entries to unsettle.
type UnsettleRequest struct {
	Numbers []int64 `json:"numbers" binding:"required,min=1,dive,gt=0"`
}

// BulkResultResponse reports the outcome per entry.
type BulkResultResponse struct {
	Succeeded []int64          `json:"succeeded"`
	Failed    map[int64]string `json:"failed,omitempty"`
}

// SettleResponse is returned once a settlement number has been applied.
type SettleResponse struct {
	SettlementNumber int64 `json:"settlementNumber"`
	BulkResultResponse
}

// UnbalancedSelectionResponse asks the caller to confirm with force.
type UnbalancedSelectionResponse struct {
	Error    string            `json:"error"`
	Balances []BalanceResponse `json:"balances"`
}

// ToBulkResultResponse converts a domain.BulkResult.
func ToBulkResultResponse(r *domain.BulkResult) BulkResultResponse {
	res := BulkResultResponse{Succeeded: []int64{}}
	if r == nil {
		return res
	}
	if r.Succeeded != nil {
		res.Succeeded = r.Succeeded
	}
	if r.HasFailures() {
		res.Failed = make(map[int64]string, len(r.Failed))
		for number, err := range r.Failed {
			res.Failed[number] = err.Error()
		}
	}
	return res
}
