package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ConcilSvc manages reconciliation groups.
type ConcilSvc interface {
	CreateGroup(ctx context.Context, dvalue time.Time, userID string) (*domain.ConcilGroup, error)
	AddMember(ctx context.Context, groupID int64, memberType domain.ConcilMemberType, otherID int64) (*domain.ConcilGroup, error)
	DeleteGroup(ctx context.Context, groupID int64) error
	GetGroup(ctx context.Context, groupID int64) (*domain.ConcilGroup, error)
	GetGroupByMember(ctx context.Context, memberType domain.ConcilMemberType, otherID int64) (*domain.ConcilGroup, error)
}
