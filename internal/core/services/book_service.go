package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

// maxCurrencyDigits bounds the precision the storage keeps for amounts.
const maxCurrencyDigits = 6

// bookService implements the BookSvc interface
type bookService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	dossierRepo  portsrepo.DossierRepositoryFacade
}

// BookOption is a functional option for configuring the book service
type BookOption func(*bookService)

// WithBookClock replaces the clock used for audit fields.
func WithBookClock(now func() time.Time) BookOption {
	return func(s *bookService) {
		s.Now = now
	}
}

// NewBookService creates the reference data service.
func NewBookService(
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	dossierRepo portsrepo.DossierRepositoryFacade,
	options ...BookOption,
) portssvc.BookSvc {
	s := &bookService{
		currencyRepo: currencyRepo,
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		dossierRepo:  dossierRepo,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.BookSvc = (*bookService)(nil)

func (s *bookService) audit(userID string) domain.AuditFields {
	now := s.now()
	return domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
}

func (s *bookService) SaveCurrency(ctx context.Context, currency domain.Currency, userID string) (*domain.Currency, error) {
	currency.Code = strings.ToUpper(strings.TrimSpace(currency.Code))
	if len(currency.Code) != 3 || strings.IndexFunc(currency.Code, func(r rune) bool { return !unicode.IsUpper(r) }) >= 0 {
		return nil, fmt.Errorf("%w: currency code %q must be three letters", apperrors.ErrValidation, currency.Code)
	}
	if currency.Digits < 0 || currency.Digits > maxCurrencyDigits {
		return nil, fmt.Errorf("%w: currency digits must be between 0 and %d", apperrors.ErrValidation, maxCurrencyDigits)
	}
	currency.AuditFields = s.audit(userID)

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency", currency.Code))
		return nil, fmt.Errorf("save currency %s: %w", currency.Code, err)
	}
	s.LogInfo(ctx, "Currency saved", slog.String("currency", currency.Code))
	return &currency, nil
}

// SaveAccount requires the declared currency to exist.
func (s *bookService) SaveAccount(ctx context.Context, account domain.Account, userID string) (*domain.Account, error) {
	account.Number = strings.TrimSpace(account.Number)
	if account.Number == "" {
		return nil, fmt.Errorf("%w: account number is empty", apperrors.ErrValidation)
	}
	account.Currency = strings.ToUpper(strings.TrimSpace(account.Currency))
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, account.Currency); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency %q", apperrors.ErrValidation, account.Currency)
		}
		s.LogError(ctx, err, "Failed to load account currency", slog.String("currency", account.Currency))
		return nil, fmt.Errorf("load currency %s: %w", account.Currency, err)
	}
	account.AuditFields = s.audit(userID)

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account", account.Number))
		return nil, fmt.Errorf("save account %s: %w", account.Number, err)
	}
	s.LogInfo(ctx, "Account saved", slog.String("account", account.Number))
	return &account, nil
}

func (s *bookService) SaveLedger(ctx context.Context, ledger domain.Ledger, userID string) (*domain.Ledger, error) {
	ledger.Mnemo = strings.TrimSpace(ledger.Mnemo)
	if ledger.Mnemo == "" {
		return nil, fmt.Errorf("%w: ledger mnemonic is empty", apperrors.ErrValidation)
	}
	if ledger.LastClose != nil {
		closed := domain.DateOnly(*ledger.LastClose)
		ledger.LastClose = &closed
	}
	ledger.Balances = nil
	ledger.AuditFields = s.audit(userID)

	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		s.LogError(ctx, err, "Failed to save ledger", slog.String("ledger", ledger.Mnemo))
		return nil, fmt.Errorf("save ledger %s: %w", ledger.Mnemo, err)
	}
	s.LogInfo(ctx, "Ledger saved", slog.String("ledger", ledger.Mnemo))
	return &ledger, nil
}

func (s *bookService) OpenExercise(ctx context.Context, begin, end time.Time, userID string) (*domain.Dossier, error) {
	begin, end = domain.DateOnly(begin), domain.DateOnly(end)
	if end.Before(begin) {
		return nil, fmt.Errorf("%w: exercise ends before it begins", apperrors.ErrValidation)
	}
	if err := s.dossierRepo.SaveExercise(ctx, &begin, &end, userID); err != nil {
		s.LogError(ctx, err, "Failed to save exercise")
		return nil, fmt.Errorf("save exercise: %w", err)
	}
	s.LogInfo(ctx, "Exercise opened",
		slog.String("begin", begin.Format(time.DateOnly)),
		slog.String("end", end.Format(time.DateOnly)))
	return s.GetDossier(ctx)
}

func (s *bookService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	return currencies, nil
}

func (s *bookService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *bookService) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	ledgers, err := s.ledgerRepo.ListLedgers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledgers")
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	return ledgers, nil
}

func (s *bookService) GetDossier(ctx context.Context) (*domain.Dossier, error) {
	dossier, err := s.dossierRepo.GetDossier(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dossier")
		return nil, fmt.Errorf("load dossier: %w", err)
	}
	return dossier, nil
}
