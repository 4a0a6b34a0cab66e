package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ConcilReader defines read operations on reconciliation groups.
type ConcilReader interface {
	// FindGroupByID returns the group with its members, or apperrors.ErrNotFound.
	FindGroupByID(ctx context.Context, id int64) (*domain.ConcilGroup, error)

	// FindGroupByMember returns the group holding the tag, or apperrors.ErrNotFound.
	FindGroupByMember(ctx context.Context, memberType domain.ConcilMemberType, otherID int64) (*domain.ConcilGroup, error)
}

// ConcilWriter defines write operations on reconciliation groups.
type ConcilWriter interface {
	// CreateGroup persists the header; the group id is already allocated.
	CreateGroup(ctx context.Context, group domain.ConcilGroup) error

	// AddMember persists one member tag. An entry member also gets its
	// reconciliation column set to the group id.
	AddMember(ctx context.Context, groupID int64, member domain.ConcilMember) error

	// DeleteGroup removes the header and every member tag, and clears the
	// reconciliation column of the member entries.
	DeleteGroup(ctx context.Context, groupID int64) error
}

// ConcilRepositoryFacade combines all reconciliation repository interfaces.
type ConcilRepositoryFacade interface {
	ConcilReader
	ConcilWriter
}
