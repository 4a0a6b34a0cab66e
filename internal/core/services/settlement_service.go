package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

// settlementService implements the SettlementSvc interface
type settlementService struct {
	BaseService
	entryRepo      portsrepo.EntryRepositoryFacade
	currencyRepo   portsrepo.CurrencyReader
	ids            portsrepo.IDAllocator
	warnUnbalanced bool
}

// SettlementOption is a functional option for configuring the settlement service
type SettlementOption func(*settlementService)

// WithUnbalancedWarning makes Settle refuse unbalanced selections unless forced.
func WithUnbalancedWarning(warn bool) SettlementOption {
	return func(s *settlementService) {
		s.warnUnbalanced = warn
	}
}

// WithSettlementClock replaces the clock used to stamp settlements.
func WithSettlementClock(now func() time.Time) SettlementOption {
	return func(s *settlementService) {
		s.Now = now
	}
}

// NewSettlementService creates the settlement service.
func NewSettlementService(
	entryRepo portsrepo.EntryRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	ids portsrepo.IDAllocator,
	options ...SettlementOption,
) portssvc.SettlementSvc {
	s := &settlementService{
		entryRepo:      entryRepo,
		currencyRepo:   currencyRepo,
		ids:            ids,
		warnUnbalanced: true,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.SettlementSvc = (*settlementService)(nil)

// Settle applies one freshly allocated number to the whole selection. Each
// entry is written independently: a failure does not stop the others and
// nothing is rolled back.
func (s *settlementService) Settle(ctx context.Context, numbers []int64, opts portssvc.SettleOptions, userID string) (int64, *domain.BulkResult, error) {
	if len(numbers) == 0 {
		return 0, nil, domain.ErrEmptySelection
	}

	if s.warnUnbalanced && !opts.Force {
		balances, err := s.selectionBalances(ctx, numbers)
		if err != nil {
			return 0, nil, err
		}
		if !balances.AllBalanced() {
			s.LogWarn(ctx, "Settlement refused on unbalanced selection", slog.Int("entries", len(numbers)))
			return 0, nil, &portssvc.UnbalancedSelectionError{Balances: balances.Visible()}
		}
	}

	settlementNumber, err := s.ids.NextSettlementID(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate settlement number")
		return 0, nil, fmt.Errorf("allocate settlement number: %w", err)
	}

	result := s.apply(ctx, numbers, settlementNumber, userID)
	s.LogInfo(ctx, "Selection settled",
		slog.Int64("settlement_number", settlementNumber),
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)))
	return settlementNumber, result, joinFailures(result)
}

// Unsettle clears the settlement of the whole selection, entry by entry.
func (s *settlementService) Unsettle(ctx context.Context, numbers []int64, userID string) (*domain.BulkResult, error) {
	if len(numbers) == 0 {
		return nil, domain.ErrEmptySelection
	}
	result := s.apply(ctx, numbers, domain.SettlementClear, userID)
	s.LogInfo(ctx, "Selection unsettled",
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)))
	return result, joinFailures(result)
}

func (s *settlementService) apply(ctx context.Context, numbers []int64, settlementNumber int64, userID string) *domain.BulkResult {
	now := s.now()
	result := domain.NewBulkResult()
	for _, number := range numbers {
		if err := s.entryRepo.UpdateSettlement(ctx, number, settlementNumber, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to update entry settlement",
				slog.Int64("entry_number", number),
				slog.Int64("settlement_number", settlementNumber))
			result.Fail(number, err)
			continue
		}
		result.Ok(number)
	}
	return result
}

func (s *settlementService) selectionBalances(ctx context.Context, numbers []int64) (*domain.BalanceSet, error) {
	entries, err := s.entryRepo.List(ctx, portsrepo.EntryQuery{Numbers: numbers})
	if err != nil {
		s.LogError(ctx, err, "Failed to load selection")
		return nil, fmt.Errorf("load selection: %w", err)
	}
	var digits accounting.DigitsFunc
	if currencies, err := s.currencyRepo.ListCurrencies(ctx); err == nil {
		digits = accounting.DigitsFromCurrencies(currencies)
	}
	return accounting.ComputeEntryBalances(entries, digits), nil
}

// joinFailures returns nil when every item succeeded.
func joinFailures(result *domain.BulkResult) error {
	if !result.HasFailures() {
		return nil
	}
	errs := make([]error, 0, len(result.Failed))
	for number, err := range result.Failed {
		errs = append(errs, fmt.Errorf("entry %d: %w", number, err))
	}
	return errors.Join(errs...)
}
