package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

// concilService implements the ConcilSvc interface
type concilService struct {
	BaseService
	concilRepo portsrepo.ConcilRepositoryFacade
	entryRepo  portsrepo.EntryReader
	ids        portsrepo.IDAllocator
}

// ConcilOption is a functional option for configuring the reconciliation service
type ConcilOption func(*concilService)

// WithConcilClock replaces the clock used to stamp groups.
func WithConcilClock(now func() time.Time) ConcilOption {
	return func(s *concilService) {
		s.Now = now
	}
}

// NewConcilService creates the reconciliation service.
func NewConcilService(
	concilRepo portsrepo.ConcilRepositoryFacade,
	entryRepo portsrepo.EntryReader,
	ids portsrepo.IDAllocator,
	options ...ConcilOption,
) portssvc.ConcilSvc {
	s := &concilService{concilRepo: concilRepo, entryRepo: entryRepo, ids: ids}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.ConcilSvc = (*concilService)(nil)

func (s *concilService) CreateGroup(ctx context.Context, dvalue time.Time, userID string) (*domain.ConcilGroup, error) {
	id, err := s.ids.NextConcilID(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate reconciliation id")
		return nil, fmt.Errorf("allocate reconciliation id: %w", err)
	}
	group := domain.ConcilGroup{
		ID:     id,
		DValue: domain.DateOnly(dvalue),
		User:   userID,
		Stamp:  s.now(),
	}
	if err := s.concilRepo.CreateGroup(ctx, group); err != nil {
		s.LogError(ctx, err, "Failed to create reconciliation group", slog.Int64("concil_id", id))
		return nil, fmt.Errorf("create reconciliation group: %w", err)
	}
	s.LogInfo(ctx, "Reconciliation group created", slog.Int64("concil_id", id))
	return &group, nil
}

// AddMember tags one more item as part of the group. An item belongs to at
// most one group.
func (s *concilService) AddMember(ctx context.Context, groupID int64, memberType domain.ConcilMemberType, otherID int64) (*domain.ConcilGroup, error) {
	if _, err := domain.ParseConcilMemberType(string(memberType)); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.HasMember(memberType, otherID) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, domain.ErrDuplicateMember)
	}

	other, err := s.concilRepo.FindGroupByMember(ctx, memberType, otherID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s %d already belongs to reconciliation group %d", apperrors.ErrConflict, memberType, otherID, other.ID)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up member group", slog.Int64("concil_id", groupID))
		return nil, fmt.Errorf("find member group: %w", err)
	}

	if memberType == domain.ConcilEntry {
		if _, err := s.entryRepo.FindByNumber(ctx, otherID); err != nil {
			return nil, fmt.Errorf("entry %d: %w", otherID, err)
		}
	}

	member := domain.ConcilMember{Type: memberType, OtherID: otherID}
	if err := s.concilRepo.AddMember(ctx, groupID, member); err != nil {
		s.LogError(ctx, err, "Failed to add reconciliation member",
			slog.Int64("concil_id", groupID),
			slog.String("member_type", string(memberType)),
			slog.Int64("other_id", otherID))
		return nil, fmt.Errorf("add reconciliation member: %w", err)
	}
	group.Members = append(group.Members, member)
	return group, nil
}

func (s *concilService) DeleteGroup(ctx context.Context, groupID int64) error {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return err
	}
	if err := s.concilRepo.DeleteGroup(ctx, groupID); err != nil {
		s.LogError(ctx, err, "Failed to delete reconciliation group", slog.Int64("concil_id", groupID))
		return fmt.Errorf("delete reconciliation group %d: %w", groupID, err)
	}
	s.LogInfo(ctx, "Reconciliation group deleted", slog.Int64("concil_id", groupID))
	return nil
}

func (s *concilService) GetGroup(ctx context.Context, groupID int64) (*domain.ConcilGroup, error) {
	group, err := s.concilRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, s.notFound(ctx, err, groupID)
	}
	return group, nil
}

func (s *concilService) GetGroupByMember(ctx context.Context, memberType domain.ConcilMemberType, otherID int64) (*domain.ConcilGroup, error) {
	group, err := s.concilRepo.FindGroupByMember(ctx, memberType, otherID)
	if err != nil {
		return nil, s.notFound(ctx, err, 0)
	}
	return group, nil
}

func (s *concilService) notFound(ctx context.Context, err error, groupID int64) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %w", apperrors.ErrNotFound, domain.ErrGroupNotFound)
	}
	s.LogError(ctx, err, "Failed to load reconciliation group", slog.Int64("concil_id", groupID))
	return err
}
