package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// CreateConcilRequest opens a reconciliation group at a value date.
type CreateConcilRequest struct {
	DValue string `json:"dvalue" binding:"required,bookdate"`
}

// AddConcilMemberRequest tags an entry (E) or a bank line (B) into a group.
type AddConcilMemberRequest struct {
	Type    string `json:"type" binding:"required,oneof=E B"`
	OtherID int64  `json:"otherID" binding:"required,gt=0"`
}

// ConcilGroupResponse defines the data returned for a reconciliation group.
type ConcilGroupResponse struct {
	ID      int64                 `json:"id"`
	DValue  string                `json:"dvalue"`
	User    string                `json:"user"`
	Stamp   time.Time             `json:"stamp"`
	Members []domain.ConcilMember `json:"members"`
}

// ToConcilGroupResponse converts a domain.ConcilGroup.
func ToConcilGroupResponse(g *domain.ConcilGroup) ConcilGroupResponse {
	members := g.Members
	if members == nil {
		members = []domain.ConcilMember{}
	}
	return ConcilGroupResponse{
		ID:      g.ID,
		DValue:  g.DValue.Format(time.DateOnly),
		User:    g.User,
		Stamp:   g.Stamp,
		Members: members,
	}
}
