package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

// Row messages. They are shown to the user as is.
const (
	msgAmountsEmpty      = "Debit and credit are both empty"
	msgAmountsBoth       = "Only one of debit and credit must be set"
	msgInvalidDebit      = "Invalid debit amount: %s"
	msgInvalidCredit     = "Invalid credit amount: %s"
	msgLabelEmpty        = "Label is empty"
	msgAccountEmpty      = "Account is empty"
	msgAccountUnknown    = "Unknown account: %s"
	msgAccountRoot       = "Account %s is a root account"
	msgCurrencyEmpty     = "Currency is empty"
	msgCurrencyUnknown   = "Unknown currency: %s"
	msgCurrencyMismatch  = "Account %s is configured for %s currency, while entry has %s"
	msgLedgerEmpty       = "Ledger is empty"
	msgLedgerUnknown     = "Unknown ledger: %s"
	msgEffectEmpty       = "Effect date is empty"
	msgEffectInvalid     = "Invalid effect date: %s"
	msgOperationEmpty    = "Operation date is empty"
	msgOperationInvalid  = "Invalid operation date: %s"
	msgEffectTooEarly    = "Effect date %s is lower than the minimal allowed %s"
	msgEffectInFutureExe = "Effect date is in a future exercise"
)

// entryValidator implements the EntryValidatorSvc interface
type entryValidator struct {
	BaseService
	accountRepo  portsrepo.AccountReader
	currencyRepo portsrepo.CurrencyReader
	ledgerRepo   portsrepo.LedgerReader
	dossierRepo  portsrepo.DossierReader
	formats      Formatters
}

// ValidatorOption is a functional option for configuring the entry validator
type ValidatorOption func(*entryValidator)

// WithValidatorFormatters sets how amounts and dates typed in rows are read.
func WithValidatorFormatters(f Formatters) ValidatorOption {
	return func(v *entryValidator) {
		v.formats = f
	}
}

// NewEntryValidator creates the validation engine.
func NewEntryValidator(
	accountRepo portsrepo.AccountReader,
	currencyRepo portsrepo.CurrencyReader,
	ledgerRepo portsrepo.LedgerReader,
	dossierRepo portsrepo.DossierReader,
	options ...ValidatorOption,
) portssvc.EntryValidatorSvc {
	v := &entryValidator{
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		ledgerRepo:   ledgerRepo,
		dossierRepo:  dossierRepo,
		formats:      DefaultFormatters(),
	}
	for _, option := range options {
		option(v)
	}
	return v
}

var _ portssvc.EntryValidatorSvc = (*entryValidator)(nil)

// CheckRowValid runs the checks in a fixed order. Each one only writes the row
// error when it finds a problem, so the last failing check is the one reported.
func (v *entryValidator) CheckRowValid(ctx context.Context, row *domain.EntryRow) bool {
	row.ResetMessages()

	v.CheckAmounts(ctx, row)
	v.CheckLabel(ctx, row)

	account, accountOk := v.checkAccount(ctx, row)
	currencyOk := v.CheckCurrency(ctx, row)
	if accountOk && currencyOk {
		v.checkCrossCurrency(row, account)
	}

	ledgerOk := v.CheckLedger(ctx, row)

	msgBeforeEffect := row.Error
	effectOk := v.checkEffectDate(row, true)
	operationOk := v.CheckOperationDate(ctx, row)

	if ledgerOk && operationOk && !effectOk {
		if v.SetDefaultEffect(ctx, row) {
			// The effect date message is obsolete now a default is written.
			row.SetError(msgBeforeEffect)
			effectOk = v.checkEffectDate(row, false)
		}
	}

	if operationOk && effectOk && ledgerOk {
		v.CheckCrossEffectDate(ctx, row)
	}

	if effectOk {
		v.checkPeriod(ctx, row)
	}

	return row.IsCommittable()
}

// SetDefaultEffect writes max(minimal effect date of the ledger, operation date)
// into a row whose effect date was not set by the user.
func (v *entryValidator) SetDefaultEffect(ctx context.Context, row *domain.EntryRow) bool {
	if row.DEffectSet {
		return false
	}
	mnemo := strings.TrimSpace(row.Ledger)
	if mnemo == "" {
		return false
	}
	if _, ok := v.findLedger(ctx, mnemo); !ok {
		return false
	}
	dope, err := v.formats.Dates.Parse(row.DOpe)
	if err != nil {
		return false
	}

	deffect := v.minEffectDate(ctx, mnemo, dope)
	row.DEffect = v.formats.Dates.Format(deffect)
	v.LogDebug(ctx, "Default effect date set",
		slog.String("ledger", mnemo),
		slog.String("deffect", row.DEffect))
	return true
}

// CheckAmounts accepts the row iff exactly one of debit and credit is non-zero.
// An empty amount counts as zero.
func (v *entryValidator) CheckAmounts(_ context.Context, row *domain.EntryRow) bool {
	debit, debitErr := v.formats.Amounts.Parse(row.Debit)
	if debitErr != nil {
		row.SetError(fmt.Sprintf(msgInvalidDebit, row.Debit))
	}
	credit, creditErr := v.formats.Amounts.Parse(row.Credit)
	if creditErr != nil {
		row.SetError(fmt.Sprintf(msgInvalidCredit, row.Credit))
	}
	if debitErr != nil || creditErr != nil {
		return false
	}

	switch {
	case debit.IsZero() && credit.IsZero():
		row.SetError(msgAmountsEmpty)
		return false
	case !debit.IsZero() && !credit.IsZero():
		row.SetError(msgAmountsBoth)
		return false
	}
	return true
}

func (v *entryValidator) CheckLabel(_ context.Context, row *domain.EntryRow) bool {
	if strings.TrimSpace(row.Label) == "" {
		row.SetError(msgLabelEmpty)
		return false
	}
	return true
}

// CheckAccount also fills the currency from the account when the user did not set it.
func (v *entryValidator) CheckAccount(ctx context.Context, row *domain.EntryRow) bool {
	_, ok := v.checkAccount(ctx, row)
	return ok
}

func (v *entryValidator) checkAccount(ctx context.Context, row *domain.EntryRow) (*domain.Account, bool) {
	number := strings.TrimSpace(row.Account)
	if number == "" {
		row.SetError(msgAccountEmpty)
		return nil, false
	}
	account, err := v.accountRepo.FindAccountByNumber(ctx, number)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			v.LogError(ctx, err, "Failed to load account while validating row", slog.String("account", number))
		}
		row.SetError(fmt.Sprintf(msgAccountUnknown, number))
		return nil, false
	}
	if account.IsRoot {
		row.SetError(fmt.Sprintf(msgAccountRoot, number))
		return nil, false
	}
	if !row.CurrencySet {
		row.Currency = account.Currency
	}
	return account, true
}

func (v *entryValidator) CheckCurrency(ctx context.Context, row *domain.EntryRow) bool {
	code := strings.TrimSpace(row.Currency)
	if code == "" {
		row.SetError(msgCurrencyEmpty)
		return false
	}
	if _, err := v.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			v.LogError(ctx, err, "Failed to load currency while validating row", slog.String("currency", code))
		}
		row.SetError(fmt.Sprintf(msgCurrencyUnknown, code))
		return false
	}
	return true
}

// CheckCrossCurrency requires the entry currency to be the account one.
// It only reports a mismatch; an unknown account is left to CheckAccount.
func (v *entryValidator) CheckCrossCurrency(ctx context.Context, row *domain.EntryRow) bool {
	account, err := v.accountRepo.FindAccountByNumber(ctx, strings.TrimSpace(row.Account))
	if err != nil {
		return false
	}
	return v.checkCrossCurrency(row, account)
}

func (v *entryValidator) checkCrossCurrency(row *domain.EntryRow, account *domain.Account) bool {
	if account.Currency != strings.TrimSpace(row.Currency) {
		row.SetError(fmt.Sprintf(msgCurrencyMismatch, account.Number, account.Currency, row.Currency))
		return false
	}
	return true
}

func (v *entryValidator) CheckLedger(ctx context.Context, row *domain.EntryRow) bool {
	mnemo := strings.TrimSpace(row.Ledger)
	if mnemo == "" {
		row.SetError(msgLedgerEmpty)
		return false
	}
	if _, ok := v.findLedger(ctx, mnemo); !ok {
		row.SetError(fmt.Sprintf(msgLedgerUnknown, mnemo))
		return false
	}
	return true
}

// CheckEffectDate copies a valid effect date into the operation date when the
// user did not set the latter.
func (v *entryValidator) CheckEffectDate(_ context.Context, row *domain.EntryRow) bool {
	return v.checkEffectDate(row, true)
}

func (v *entryValidator) checkEffectDate(row *domain.EntryRow, copyToOperation bool) bool {
	if strings.TrimSpace(row.DEffect) == "" {
		row.SetError(msgEffectEmpty)
		return false
	}
	deffect, err := v.formats.Dates.Parse(row.DEffect)
	if err != nil {
		row.SetError(fmt.Sprintf(msgEffectInvalid, row.DEffect))
		return false
	}
	if copyToOperation && !row.DOpeSet {
		row.DOpe = v.formats.Dates.Format(deffect)
	}
	return true
}

func (v *entryValidator) CheckOperationDate(_ context.Context, row *domain.EntryRow) bool {
	if strings.TrimSpace(row.DOpe) == "" {
		row.SetError(msgOperationEmpty)
		return false
	}
	if _, err := v.formats.Dates.Parse(row.DOpe); err != nil {
		row.SetError(fmt.Sprintf(msgOperationInvalid, row.DOpe))
		return false
	}
	return true
}

// CheckCrossEffectDate requires the effect date to be at least
// max(minimal effect date of the ledger, operation date).
func (v *entryValidator) CheckCrossEffectDate(ctx context.Context, row *domain.EntryRow) bool {
	dope, err := v.formats.Dates.Parse(row.DOpe)
	if err != nil {
		return false
	}
	deffect, err := v.formats.Dates.Parse(row.DEffect)
	if err != nil {
		return false
	}
	minDate := v.minEffectDate(ctx, strings.TrimSpace(row.Ledger), dope)
	if deffect.Before(minDate) {
		row.SetError(fmt.Sprintf(msgEffectTooEarly, v.formats.Dates.Format(deffect), v.formats.Dates.Format(minDate)))
		return false
	}
	return true
}

// checkPeriod records the period of the effect date and warns when it falls
// after the current exercise.
func (v *entryValidator) checkPeriod(ctx context.Context, row *domain.EntryRow) {
	deffect, err := v.formats.Dates.Parse(row.DEffect)
	if err != nil {
		return
	}
	dossier, err := v.dossierRepo.GetDossier(ctx)
	if err != nil {
		v.LogError(ctx, err, "Failed to load dossier while validating row")
		return
	}
	row.Period = dossier.PeriodOf(deffect)
	if row.Period == domain.PeriodFuture {
		row.SetWarning(msgEffectInFutureExe)
	}
}

func (v *entryValidator) findLedger(ctx context.Context, mnemo string) (*domain.Ledger, bool) {
	ledger, err := v.ledgerRepo.FindLedgerByMnemo(ctx, mnemo)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			v.LogError(ctx, err, "Failed to load ledger while validating row", slog.String("ledger", mnemo))
		}
		return nil, false
	}
	return ledger, true
}

// minEffectDate returns max(exercise begin, day after the ledger closing, dope).
func (v *entryValidator) minEffectDate(ctx context.Context, mnemo string, dope time.Time) time.Time {
	ledger, ok := v.findLedger(ctx, mnemo)
	if !ok {
		return dope
	}
	dossier, err := v.dossierRepo.GetDossier(ctx)
	if err != nil {
		v.LogError(ctx, err, "Failed to load dossier for minimal effect date", slog.String("ledger", mnemo))
		return dope
	}
	recorded, ok := dossier.MinEffectDate(ledger)
	if !ok {
		return dope
	}
	return domain.MaxDate(recorded, dope)
}
