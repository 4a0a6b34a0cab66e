package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// remediationService implements the RemediationSvc interface
type remediationService struct {
	BaseService
	entryRepo   portsrepo.EntryReader
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewRemediationService creates the remediation engine.
func NewRemediationService(
	entryRepo portsrepo.EntryReader,
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
) portssvc.RemediationSvc {
	return &remediationService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.RemediationSvc = (*remediationService)(nil)

// checkRemediable refuses entries that no longer contribute to rough totals.
// Reaching it with such an entry is a programming error of the caller.
func (s *remediationService) checkRemediable(ctx context.Context, entry *domain.Entry) error {
	var err error
	switch {
	case entry.Status != domain.StatusRough:
		err = fmt.Errorf("%w: %w: entry %d has status %s", apperrors.ErrInternal, domain.ErrEntryNotRough, entry.Number, entry.Status)
	case entry.Period != domain.PeriodCurrent && entry.Period != domain.PeriodFuture:
		err = fmt.Errorf("%w: %w: entry %d is in period %s", apperrors.ErrInternal, domain.ErrEntryPeriodLocked, entry.Number, entry.Period)
	}
	if err != nil {
		s.LogError(ctx, err, "Remediation refused", slog.Int64("entry_number", entry.Number))
	}
	return err
}

func (s *remediationService) RemediateAccount(ctx context.Context, entry *domain.Entry, prevAccount string, prevDebit, prevCredit decimal.Decimal) error {
	if err := s.checkRemediable(ctx, entry); err != nil {
		return err
	}
	accountChanged := prevAccount != entry.Account
	if !accountChanged && prevDebit.Equal(entry.Debit) && prevCredit.Equal(entry.Credit) {
		return nil
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, entry.Account)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account for remediation", slog.String("account", entry.Account))
		return fmt.Errorf("remediate account %s: %w", entry.Account, err)
	}
	prev := account
	if accountChanged && prevAccount != "" {
		prev, err = s.accountRepo.FindAccountByNumber(ctx, prevAccount)
		if err != nil {
			s.LogError(ctx, err, "Failed to load previous account for remediation", slog.String("account", prevAccount))
			return fmt.Errorf("remediate account %s: %w", prevAccount, err)
		}
	}

	if !accountChanged || prevAccount != "" {
		debit, credit, _ := prev.RoughAmounts(entry.Period)
		*debit = debit.Sub(prevDebit)
		*credit = credit.Sub(prevCredit)
	}
	debit, credit, _ := account.RoughAmounts(entry.Period)
	*debit = debit.Add(entry.Debit)
	*credit = credit.Add(entry.Credit)

	if accountChanged && prevAccount != "" {
		if err := s.accountRepo.UpdateAccountAmounts(ctx, *prev); err != nil {
			s.LogError(ctx, err, "Failed to update previous account totals", slog.String("account", prevAccount))
			return fmt.Errorf("remediate account %s: %w", prevAccount, err)
		}
	}
	if err := s.accountRepo.UpdateAccountAmounts(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account totals", slog.String("account", entry.Account))
		return fmt.Errorf("remediate account %s: %w", entry.Account, err)
	}

	s.LogDebug(ctx, "Account totals remediated",
		slog.Int64("entry_number", entry.Number),
		slog.String("account", entry.Account),
		slog.String("prev_account", prevAccount))
	return nil
}

func (s *remediationService) RemediateLedger(ctx context.Context, entry *domain.Entry, prevLedger string, prevDebit, prevCredit decimal.Decimal) error {
	if err := s.checkRemediable(ctx, entry); err != nil {
		return err
	}
	ledgerChanged := prevLedger != entry.Ledger
	if !ledgerChanged && prevDebit.Equal(entry.Debit) && prevCredit.Equal(entry.Credit) {
		return nil
	}

	ledger, err := s.ledgerRepo.FindLedgerByMnemo(ctx, entry.Ledger)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for remediation", slog.String("ledger", entry.Ledger))
		return fmt.Errorf("remediate ledger %s: %w", entry.Ledger, err)
	}
	prev := ledger
	if ledgerChanged && prevLedger != "" {
		prev, err = s.ledgerRepo.FindLedgerByMnemo(ctx, prevLedger)
		if err != nil {
			s.LogError(ctx, err, "Failed to load previous ledger for remediation", slog.String("ledger", prevLedger))
			return fmt.Errorf("remediate ledger %s: %w", prevLedger, err)
		}
	}

	if !ledgerChanged || prevLedger != "" {
		debit, credit, _ := prev.Balance(entry.Currency).RoughAmounts(entry.Period)
		*debit = debit.Sub(prevDebit)
		*credit = credit.Sub(prevCredit)
	}
	debit, credit, _ := ledger.Balance(entry.Currency).RoughAmounts(entry.Period)
	*debit = debit.Add(entry.Debit)
	*credit = credit.Add(entry.Credit)

	if ledgerChanged && prevLedger != "" {
		if err := s.ledgerRepo.UpdateLedgerBalance(ctx, *prev, entry.Currency); err != nil {
			s.LogError(ctx, err, "Failed to update previous ledger totals",
				slog.String("ledger", prevLedger), slog.String("currency", entry.Currency))
			return fmt.Errorf("remediate ledger %s: %w", prevLedger, err)
		}
	}
	if err := s.ledgerRepo.UpdateLedgerBalance(ctx, *ledger, entry.Currency); err != nil {
		s.LogError(ctx, err, "Failed to update ledger totals",
			slog.String("ledger", entry.Ledger), slog.String("currency", entry.Currency))
		return fmt.Errorf("remediate ledger %s: %w", entry.Ledger, err)
	}

	s.LogDebug(ctx, "Ledger totals remediated",
		slog.Int64("entry_number", entry.Number),
		slog.String("ledger", entry.Ledger),
		slog.String("currency", entry.Currency))
	return nil
}

// RecomputeRoughTotals zeroes every rough total then folds in each rough entry
// of the current and future periods.
func (s *remediationService) RecomputeRoughTotals(ctx context.Context) error {
	if err := s.accountRepo.ResetRoughAmounts(ctx); err != nil {
		s.LogError(ctx, err, "Failed to reset account totals")
		return fmt.Errorf("reset account totals: %w", err)
	}
	if err := s.ledgerRepo.ResetRoughBalances(ctx); err != nil {
		s.LogError(ctx, err, "Failed to reset ledger totals")
		return fmt.Errorf("reset ledger totals: %w", err)
	}

	entries, err := s.entryRepo.List(ctx, portsrepo.EntryQuery{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries for recompute")
		return fmt.Errorf("list entries: %w", err)
	}

	accounts := make(map[string]*domain.Account)
	ledgers := make(map[string]*domain.Ledger)
	var accountOrder, ledgerOrder []string

	for i := range entries {
		e := &entries[i]
		if !e.IsRemediable() {
			continue
		}

		account, ok := accounts[e.Account]
		if !ok {
			account, err = s.accountRepo.FindAccountByNumber(ctx, e.Account)
			if err != nil {
				s.LogError(ctx, err, "Failed to load account for recompute", slog.String("account", e.Account))
				return fmt.Errorf("load account %s: %w", e.Account, err)
			}
			accounts[e.Account] = account
			accountOrder = append(accountOrder, e.Account)
		}
		debit, credit, _ := account.RoughAmounts(e.Period)
		*debit = debit.Add(e.Debit)
		*credit = credit.Add(e.Credit)

		ledger, ok := ledgers[e.Ledger]
		if !ok {
			ledger, err = s.ledgerRepo.FindLedgerByMnemo(ctx, e.Ledger)
			if err != nil {
				s.LogError(ctx, err, "Failed to load ledger for recompute", slog.String("ledger", e.Ledger))
				return fmt.Errorf("load ledger %s: %w", e.Ledger, err)
			}
			ledgers[e.Ledger] = ledger
			ledgerOrder = append(ledgerOrder, e.Ledger)
		}
		debit, credit, _ = ledger.Balance(e.Currency).RoughAmounts(e.Period)
		*debit = debit.Add(e.Debit)
		*credit = credit.Add(e.Credit)
	}

	for _, number := range accountOrder {
		if err := s.accountRepo.UpdateAccountAmounts(ctx, *accounts[number]); err != nil {
			s.LogError(ctx, err, "Failed to store recomputed account totals", slog.String("account", number))
			return fmt.Errorf("update account %s: %w", number, err)
		}
	}
	for _, mnemo := range ledgerOrder {
		ledger := ledgers[mnemo]
		for currency := range ledger.Balances {
			if err := s.ledgerRepo.UpdateLedgerBalance(ctx, *ledger, currency); err != nil {
				s.LogError(ctx, err, "Failed to store recomputed ledger totals",
					slog.String("ledger", mnemo), slog.String("currency", currency))
				return fmt.Errorf("update ledger %s: %w", mnemo, err)
			}
		}
	}

	s.LogInfo(ctx, "Rough totals recomputed",
		slog.Int("entries", len(entries)),
		slog.Int("accounts", len(accountOrder)),
		slog.Int("ledgers", len(ledgerOrder)))
	return nil
}
