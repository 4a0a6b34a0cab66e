package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/filter"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// entryService implements the EntrySvcFacade interface
type entryService struct {
	BaseService
	entryRepo    portsrepo.EntryRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	dossierRepo  portsrepo.DossierReader
	validator    portssvc.EntryValidatorSvc
	remediation  portssvc.RemediationSvc
	formats      Formatters
	evaluator    *filter.Evaluator
}

// EntryServiceOption is a functional option for configuring the entry service
type EntryServiceOption func(*entryService)

// WithEntryFormatters sets how rows are read and rendered.
func WithEntryFormatters(f Formatters) EntryServiceOption {
	return func(s *entryService) {
		s.formats = f
	}
}

// WithEntryClock replaces the clock used for audit fields and the settlement session.
func WithEntryClock(now func() time.Time) EntryServiceOption {
	return func(s *entryService) {
		s.Now = now
	}
}

// NewEntryService creates the entry service.
func NewEntryService(
	entryRepo portsrepo.EntryRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	dossierRepo portsrepo.DossierReader,
	validator portssvc.EntryValidatorSvc,
	remediation portssvc.RemediationSvc,
	options ...EntryServiceOption,
) portssvc.EntrySvcFacade {
	s := &entryService{
		entryRepo:    entryRepo,
		currencyRepo: currencyRepo,
		dossierRepo:  dossierRepo,
		validator:    validator,
		remediation:  remediation,
		formats:      DefaultFormatters(),
	}
	for _, option := range options {
		option(s)
	}
	s.evaluator = filter.NewEvaluator(s.formats.Amounts, s.formats.Dates, s.formats.Collator)
	return s
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) NewRow(_ context.Context, ledger string) *domain.EntryRow {
	return &domain.EntryRow{
		Status: domain.StatusRough,
		Ledger: strings.TrimSpace(ledger),
	}
}

func (s *entryService) ValidateRow(ctx context.Context, row *domain.EntryRow) *domain.EntryRow {
	s.validator.CheckRowValid(ctx, row)
	return row
}

func (s *entryService) GetEntry(ctx context.Context, number int64) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindByNumber(ctx, number)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load entry", slog.Int64("entry_number", number))
		}
		return nil, err
	}
	return entry, nil
}

func (s *entryService) GetRow(ctx context.Context, number int64) (*domain.EntryRow, error) {
	entry, err := s.GetEntry(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.rowFromEntry(ctx, entry), nil
}

// CommitRow only writes rows without error. Once a new row is inserted or an
// existing one updated, its account then its ledger totals are remediated.
func (s *entryService) CommitRow(ctx context.Context, row *domain.EntryRow, userID string) (*domain.Entry, error) {
	if !s.validator.CheckRowValid(ctx, row) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, row.Error)
	}
	now := s.now()

	if row.Number == 0 {
		entry, err := s.entryFromRow(ctx, row, nil)
		if err != nil {
			return nil, err
		}
		entry.Status = domain.StatusRough
		entry.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
		if err := s.entryRepo.Insert(ctx, entry); err != nil {
			s.LogError(ctx, err, "Failed to insert entry", slog.String("ledger", entry.Ledger), slog.String("account", entry.Account))
			return nil, fmt.Errorf("insert entry: %w", err)
		}
		row.Number = entry.Number
		row.Status = entry.Status
		if err := s.fold(ctx, entry); err != nil {
			return entry, err
		}
		s.LogInfo(ctx, "Entry created", slog.Int64("entry_number", entry.Number))
		return entry, nil
	}

	prev, err := s.GetEntry(ctx, row.Number)
	if err != nil {
		return nil, err
	}
	if prev.Status == domain.StatusValidated || prev.Status == domain.StatusDeleted {
		return nil, fmt.Errorf("%w: entry %d is %s and cannot be edited", apperrors.ErrValidation, prev.Number, prev.Status)
	}

	entry, err := s.entryFromRow(ctx, row, prev)
	if err != nil {
		return nil, err
	}
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	if err := s.entryRepo.Update(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update entry", slog.Int64("entry_number", entry.Number))
		return nil, fmt.Errorf("update entry %d: %w", entry.Number, err)
	}

	if err := s.remediate(ctx, prev, entry); err != nil {
		return entry, err
	}
	s.LogInfo(ctx, "Entry updated", slog.Int64("entry_number", entry.Number))
	return entry, nil
}

// remediate applies an update to the rough totals. When the currency or the
// period changed, the amounts leave one bucket and enter another, so the
// previous state is taken out before the new one is added.
func (s *entryService) remediate(ctx context.Context, prev, entry *domain.Entry) error {
	if prev.Currency == entry.Currency && prev.Period == entry.Period {
		if !entry.IsRemediable() {
			return nil
		}
		if err := s.remediation.RemediateAccount(ctx, entry, prev.Account, prev.Debit, prev.Credit); err != nil {
			return err
		}
		return s.remediation.RemediateLedger(ctx, entry, prev.Ledger, prev.Debit, prev.Credit)
	}

	if prev.IsRemediable() {
		out := *prev
		out.Debit = decimal.Zero
		out.Credit = decimal.Zero
		if err := s.remediation.RemediateAccount(ctx, &out, prev.Account, prev.Debit, prev.Credit); err != nil {
			return err
		}
		if err := s.remediation.RemediateLedger(ctx, &out, prev.Ledger, prev.Debit, prev.Credit); err != nil {
			return err
		}
	}
	return s.fold(ctx, entry)
}

// fold adds the amounts of an entry the totals do not hold yet.
func (s *entryService) fold(ctx context.Context, entry *domain.Entry) error {
	if !entry.IsRemediable() {
		return nil
	}
	if err := s.remediation.RemediateAccount(ctx, entry, entry.Account, decimal.Zero, decimal.Zero); err != nil {
		return err
	}
	return s.remediation.RemediateLedger(ctx, entry, entry.Ledger, decimal.Zero, decimal.Zero)
}

// DeleteEntry soft-deletes a rough entry and takes its amounts out of the totals.
func (s *entryService) DeleteEntry(ctx context.Context, number int64, userID string) error {
	entry, err := s.GetEntry(ctx, number)
	if err != nil {
		return err
	}
	if entry.Status != domain.StatusRough {
		return fmt.Errorf("%w: %w: entry %d is %s", apperrors.ErrValidation, domain.ErrEntryNotRough, number, entry.Status)
	}

	if err := s.entryRepo.Delete(ctx, number, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete entry", slog.Int64("entry_number", number))
		return fmt.Errorf("delete entry %d: %w", number, err)
	}

	if entry.IsRemediable() {
		gone := *entry
		gone.Debit = decimal.Zero
		gone.Credit = decimal.Zero
		if err := s.remediation.RemediateAccount(ctx, &gone, entry.Account, entry.Debit, entry.Credit); err != nil {
			return err
		}
		if err := s.remediation.RemediateLedger(ctx, &gone, entry.Ledger, entry.Debit, entry.Credit); err != nil {
			return err
		}
	}
	s.LogInfo(ctx, "Entry deleted", slog.Int64("entry_number", number))
	return nil
}

// ListEntries loads the entries the storage can narrow down, keeps the ones
// visible under the view and computes their balances.
func (s *entryService) ListEntries(ctx context.Context, view filter.View) ([]domain.Entry, *domain.BalanceSet, error) {
	query := portsrepo.EntryQuery{}
	if !view.UseExtended {
		query.Ledgers = view.Standard.Ledgers
		query.Accounts = view.Standard.Accounts
		query.From = view.Standard.From
		query.To = view.Standard.To
		query.IncludeDeleted = slices.Contains(view.Standard.Statuses, domain.StatusDeleted)
	}

	entries, err := s.entryRepo.List(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, nil, fmt.Errorf("list entries: %w", err)
	}

	now := s.now()
	visible := make([]domain.Entry, 0, len(entries))
	for i := range entries {
		if s.evaluator.Visible(&view, &entries[i], now) {
			visible = append(visible, entries[i])
		}
	}

	return visible, accounting.ComputeEntryBalances(visible, s.digits(ctx)), nil
}

func (s *entryService) ComputeRowBalances(ctx context.Context, rows []domain.EntryRow) (*domain.BalanceSet, error) {
	return accounting.ComputeBalances(rows, s.formats.Amounts, s.digits(ctx)), nil
}

// digits returns the currency precision lookup; without currencies every
// amount uses the default precision.
func (s *entryService) digits(ctx context.Context) accounting.DigitsFunc {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies, using default precision")
		return nil
	}
	return accounting.DigitsFromCurrencies(currencies)
}

// entryFromRow reads a validated row. Fields the row does not carry are kept
// from prev when the entry already exists.
func (s *entryService) entryFromRow(ctx context.Context, row *domain.EntryRow, prev *domain.Entry) (*domain.Entry, error) {
	entry := &domain.Entry{}
	if prev != nil {
		*entry = *prev
	}

	var err error
	if entry.DOpe, err = s.formats.Dates.Parse(row.DOpe); err != nil {
		return nil, fmt.Errorf("%w: operation date: %w", apperrors.ErrValidation, err)
	}
	if entry.DEffect, err = s.formats.Dates.Parse(row.DEffect); err != nil {
		return nil, fmt.Errorf("%w: effect date: %w", apperrors.ErrValidation, err)
	}
	if entry.Debit, err = s.formats.Amounts.Parse(row.Debit); err != nil {
		return nil, fmt.Errorf("%w: debit: %w", apperrors.ErrValidation, err)
	}
	if entry.Credit, err = s.formats.Amounts.Parse(row.Credit); err != nil {
		return nil, fmt.Errorf("%w: credit: %w", apperrors.ErrValidation, err)
	}

	entry.Number = row.Number
	entry.Label = strings.TrimSpace(row.Label)
	entry.Ref = strings.TrimSpace(row.Ref)
	entry.Notes = row.Notes
	entry.Ledger = strings.TrimSpace(row.Ledger)
	entry.Account = strings.TrimSpace(row.Account)
	entry.Currency = strings.TrimSpace(row.Currency)
	entry.OpeTemplate = strings.TrimSpace(row.OpeTemplate)

	dossier, err := s.dossierRepo.GetDossier(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dossier")
		return nil, fmt.Errorf("load dossier: %w", err)
	}
	entry.Period = dossier.PeriodOf(entry.DEffect)
	return entry, nil
}

// rowFromEntry renders an entry for edition. Every field of a stored entry
// counts as set by the user.
func (s *entryService) rowFromEntry(ctx context.Context, e *domain.Entry) *domain.EntryRow {
	var currency *domain.Currency
	if c, err := s.currencyRepo.FindCurrencyByCode(ctx, e.Currency); err == nil {
		currency = c
	}
	return &domain.EntryRow{
		Number:           e.Number,
		Status:           e.Status,
		Period:           e.Period,
		DOpe:             s.formats.Dates.Format(e.DOpe),
		DEffect:          s.formats.Dates.Format(e.DEffect),
		Label:            e.Label,
		Ref:              e.Ref,
		Notes:            e.Notes,
		Ledger:           e.Ledger,
		Account:          e.Account,
		Currency:         e.Currency,
		Debit:            s.formats.Amounts.FormatForCurrency(e.Debit, currency),
		Credit:           s.formats.Amounts.FormatForCurrency(e.Credit, currency),
		OpeTemplate:      e.OpeTemplate,
		DOpeSet:          true,
		DEffectSet:       true,
		CurrencySet:      true,
		SettlementNumber: e.SettlementNumber,
		ConcilID:         e.ConcilID,
	}
}
