package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *Store
	repos portsrepo.RepositoryProvider
	ctx   context.Context
	now   time.Time
}

func (suite *StoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	store, err := Open(filepath.Join(suite.T().TempDir(), "book.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	suite.Require().NoError(err)
	suite.store = store
	suite.repos = NewRepositoryProvider(store)

	audit := domain.AuditFields{CreatedAt: suite.now, CreatedBy: "user-1", LastUpdatedAt: suite.now, LastUpdatedBy: "user-1"}
	suite.Require().NoError(suite.repos.CurrencyRepo.SaveCurrency(suite.ctx, domain.Currency{Code: "EUR", Label: "Euro", Symbol: "€", Digits: 2, AuditFields: audit}))
	suite.Require().NoError(suite.repos.AccountRepo.SaveAccount(suite.ctx, domain.Account{Number: "411000", Label: "Customers", Currency: "EUR", AuditFields: audit}))
	suite.Require().NoError(suite.repos.LedgerRepo.SaveLedger(suite.ctx, domain.Ledger{Mnemo: "VTE", Label: "Sales", AuditFields: audit}))
}

func (suite *StoreTestSuite) TearDownTest() {
	suite.NoError(suite.store.Close())
}

func (suite *StoreTestSuite) entry(deffect time.Time, debit string) *domain.Entry {
	return &domain.Entry{
		DOpe:        deffect,
		DEffect:     deffect,
		Label:       "Invoice",
		Ledger:      "VTE",
		Account:     "411000",
		Currency:    "EUR",
		Debit:       decimal.RequireFromString(debit),
		Status:      domain.StatusRough,
		Period:      domain.PeriodCurrent,
		AuditFields: domain.AuditFields{CreatedAt: suite.now, CreatedBy: "user-1", LastUpdatedAt: suite.now, LastUpdatedBy: "user-1"},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (suite *StoreTestSuite) TestReferenceData() {
	currency, err := suite.repos.CurrencyRepo.FindCurrencyByCode(suite.ctx, "EUR")
	suite.Require().NoError(err)
	suite.Equal(2, currency.Digits)
	suite.True(currency.CreatedAt.Equal(suite.now))

	_, err = suite.repos.AccountRepo.FindAccountByNumber(suite.ctx, "999")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	accounts, err := suite.repos.AccountRepo.ListAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(accounts, 1)
	suite.True(accounts[0].CurrentRoughDebit.IsZero())
}

func (suite *StoreTestSuite) TestEntryRoundTrip() {
	e := suite.entry(day(2026, 3, 15), "100.25")
	suite.Require().NoError(suite.repos.EntryRepo.Insert(suite.ctx, e))
	suite.NotZero(e.Number)

	got, err := suite.repos.EntryRepo.FindByNumber(suite.ctx, e.Number)
	suite.Require().NoError(err)
	suite.Equal(day(2026, 3, 15), got.DEffect)
	suite.True(got.Debit.Equal(decimal.RequireFromString("100.25")))
	suite.Equal(domain.StatusRough, got.Status)
	suite.Equal(domain.PeriodCurrent, got.Period)
	suite.Nil(got.SettlementStamp)

	got.Label = "Invoice 42"
	got.Debit = decimal.RequireFromString("80")
	suite.Require().NoError(suite.repos.EntryRepo.Update(suite.ctx, *got))

	updated, err := suite.repos.EntryRepo.FindByNumber(suite.ctx, e.Number)
	suite.Require().NoError(err)
	suite.Equal("Invoice 42", updated.Label)
	suite.True(updated.Debit.Equal(decimal.NewFromInt(80)))
}

func (suite *StoreTestSuite) TestListFiltersAndOrder() {
	late := suite.entry(day(2026, 5, 1), "10")
	early := suite.entry(day(2026, 2, 1), "20")
	gone := suite.entry(day(2026, 3, 1), "30")
	for _, e := range []*domain.Entry{late, early, gone} {
		suite.Require().NoError(suite.repos.EntryRepo.Insert(suite.ctx, e))
	}
	suite.Require().NoError(suite.repos.EntryRepo.Delete(suite.ctx, gone.Number, "user-1", suite.now))

	all, err := suite.repos.EntryRepo.List(suite.ctx, portsrepo.EntryQuery{})
	suite.Require().NoError(err)
	suite.Equal([]int64{early.Number, late.Number}, numbers(all))

	withDeleted, err := suite.repos.EntryRepo.List(suite.ctx, portsrepo.EntryQuery{IncludeDeleted: true})
	suite.Require().NoError(err)
	suite.Equal([]int64{early.Number, gone.Number, late.Number}, numbers(withDeleted))

	from := day(2026, 3, 1)
	ranged, err := suite.repos.EntryRepo.List(suite.ctx, portsrepo.EntryQuery{From: &from, Ledgers: []string{"VTE"}})
	suite.Require().NoError(err)
	suite.Equal([]int64{late.Number}, numbers(ranged))

	picked, err := suite.repos.EntryRepo.List(suite.ctx, portsrepo.EntryQuery{Numbers: []int64{late.Number, early.Number}})
	suite.Require().NoError(err)
	suite.Len(picked, 2)
}

func (suite *StoreTestSuite) TestSettlementColumns() {
	e := suite.entry(day(2026, 3, 15), "100")
	suite.Require().NoError(suite.repos.EntryRepo.Insert(suite.ctx, e))

	suite.Require().NoError(suite.repos.EntryRepo.UpdateSettlement(suite.ctx, e.Number, 7, "user-2", suite.now))
	got, err := suite.repos.EntryRepo.FindByNumber(suite.ctx, e.Number)
	suite.Require().NoError(err)
	suite.Equal(int64(7), got.SettlementNumber)
	suite.Equal("user-2", got.SettlementUser)
	suite.Require().NotNil(got.SettlementStamp)
	suite.True(got.SettlementStamp.Equal(suite.now))

	suite.Require().NoError(suite.repos.EntryRepo.UpdateSettlement(suite.ctx, e.Number, domain.SettlementClear, "user-2", suite.now))
	got, err = suite.repos.EntryRepo.FindByNumber(suite.ctx, e.Number)
	suite.Require().NoError(err)
	suite.Zero(got.SettlementNumber)
	suite.Empty(got.SettlementUser)
	suite.Nil(got.SettlementStamp)

	err = suite.repos.EntryRepo.UpdateSettlement(suite.ctx, 9999, 7, "user-2", suite.now)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestSettlementSkipsDeletedEntries() {
	e := suite.entry(day(2026, 3, 15), "100")
	suite.Require().NoError(suite.repos.EntryRepo.Insert(suite.ctx, e))
	suite.Require().NoError(suite.repos.EntryRepo.UpdateSettlement(suite.ctx, e.Number, 4, "user-2", suite.now))
	suite.Require().NoError(suite.repos.EntryRepo.Delete(suite.ctx, e.Number, "user-1", suite.now))

	err := suite.repos.EntryRepo.UpdateSettlement(suite.ctx, e.Number, 5, "user-2", suite.now)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	err = suite.repos.EntryRepo.UpdateSettlement(suite.ctx, e.Number, domain.SettlementClear, "user-2", suite.now)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	got, err := suite.repos.EntryRepo.FindByNumber(suite.ctx, e.Number)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusDeleted, got.Status)
	suite.Equal(int64(4), got.SettlementNumber, "settlement of a deleted entry is frozen")
}

func (suite *StoreTestSuite) TestRoughTotals() {
	account, err := suite.repos.AccountRepo.FindAccountByNumber(suite.ctx, "411000")
	suite.Require().NoError(err)
	account.CurrentRoughDebit = decimal.RequireFromString("12.50")
	account.FutureRoughCredit = decimal.RequireFromString("3")
	suite.Require().NoError(suite.repos.AccountRepo.UpdateAccountAmounts(suite.ctx, *account))

	ledger, err := suite.repos.LedgerRepo.FindLedgerByMnemo(suite.ctx, "VTE")
	suite.Require().NoError(err)
	suite.Empty(ledger.Balances)
	ledger.Balance("EUR").CurrentRoughDebit = decimal.RequireFromString("12.50")
	suite.Require().NoError(suite.repos.LedgerRepo.UpdateLedgerBalance(suite.ctx, *ledger, "EUR"))

	ledger, err = suite.repos.LedgerRepo.FindLedgerByMnemo(suite.ctx, "VTE")
	suite.Require().NoError(err)
	suite.True(ledger.Balances["EUR"].CurrentRoughDebit.Equal(decimal.RequireFromString("12.5")))

	suite.Require().NoError(suite.repos.AccountRepo.ResetRoughAmounts(suite.ctx))
	suite.Require().NoError(suite.repos.LedgerRepo.ResetRoughBalances(suite.ctx))

	account, err = suite.repos.AccountRepo.FindAccountByNumber(suite.ctx, "411000")
	suite.Require().NoError(err)
	suite.True(account.CurrentRoughDebit.IsZero())
	suite.True(account.FutureRoughCredit.IsZero())
	ledgers, err := suite.repos.LedgerRepo.ListLedgers(suite.ctx)
	suite.Require().NoError(err)
	suite.True(ledgers[0].Balances["EUR"].CurrentRoughDebit.IsZero())
}

func (suite *StoreTestSuite) TestDossierCountersAndExercise() {
	first, err := suite.repos.DossierRepo.NextSettlementID(suite.ctx)
	suite.Require().NoError(err)
	second, err := suite.repos.DossierRepo.NextSettlementID(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(first+1, second)

	concil, err := suite.repos.DossierRepo.NextConcilID(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), concil)

	dossier, err := suite.repos.DossierRepo.GetDossier(suite.ctx)
	suite.Require().NoError(err)
	suite.Nil(dossier.ExeBegin)

	begin, end := day(2026, 1, 1), day(2026, 12, 31)
	suite.Require().NoError(suite.repos.DossierRepo.SaveExercise(suite.ctx, &begin, &end, "user-1"))
	closed := day(2026, 2, 28)
	suite.Require().NoError(suite.repos.LedgerRepo.SaveLedger(suite.ctx, domain.Ledger{Mnemo: "VTE", LastClose: &closed,
		AuditFields: domain.AuditFields{CreatedAt: suite.now, LastUpdatedAt: suite.now}}))

	ledger, err := suite.repos.LedgerRepo.FindLedgerByMnemo(suite.ctx, "VTE")
	suite.Require().NoError(err)
	dossier, err = suite.repos.DossierRepo.GetDossier(suite.ctx)
	suite.Require().NoError(err)
	minDate, ok := dossier.MinEffectDate(ledger)
	suite.Require().True(ok)
	suite.Equal(day(2026, 3, 1), minDate)
	suite.Equal(second, dossier.LastSettlement)
	suite.Equal(domain.PeriodFuture, dossier.PeriodOf(day(2027, 1, 2)))
}

func (suite *StoreTestSuite) TestConcilGroupLifecycle() {
	e := suite.entry(day(2026, 3, 15), "100")
	suite.Require().NoError(suite.repos.EntryRepo.Insert(suite.ctx, e))

	group := domain.ConcilGroup{ID: 3, DValue: day(2026, 3, 20), User: "user-1", Stamp: suite.now}
	suite.Require().NoError(suite.repos.ConcilRepo.CreateGroup(suite.ctx, group))
	suite.Require().NoError(suite.repos.ConcilRepo.AddMember(suite.ctx, 3, domain.ConcilMember{Type: domain.ConcilEntry, OtherID: e.Number}))
	suite.Require().NoError(suite.repos.ConcilRepo.AddMember(suite.ctx, 3, domain.ConcilMember{Type: domain.ConcilBat, OtherID: 40}))

	found, err := suite.repos.ConcilRepo.FindGroupByMember(suite.ctx, domain.ConcilBat, 40)
	suite.Require().NoError(err)
	suite.Equal(int64(3), found.ID)
	suite.Equal(day(2026, 3, 20), found.DValue)
	suite.Equal([]domain.ConcilMember{
		{Type: domain.ConcilEntry, OtherID: e.Number},
		{Type: domain.ConcilBat, OtherID: 40},
	}, found.Members)

	reconciled, err := suite.repos.EntryRepo.FindByNumber(suite.ctx, e.Number)
	suite.Require().NoError(err)
	suite.Equal(int64(3), reconciled.ConcilID)

	// an item belongs to one group at most
	suite.Require().NoError(suite.repos.ConcilRepo.CreateGroup(suite.ctx, domain.ConcilGroup{ID: 4, DValue: day(2026, 3, 21), User: "user-1", Stamp: suite.now}))
	suite.Error(suite.repos.ConcilRepo.AddMember(suite.ctx, 4, domain.ConcilMember{Type: domain.ConcilBat, OtherID: 40}))

	suite.Require().NoError(suite.repos.ConcilRepo.DeleteGroup(suite.ctx, 3))
	_, err = suite.repos.ConcilRepo.FindGroupByID(suite.ctx, 3)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = suite.repos.ConcilRepo.FindGroupByMember(suite.ctx, domain.ConcilBat, 40)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	released, err := suite.repos.EntryRepo.FindByNumber(suite.ctx, e.Number)
	suite.Require().NoError(err)
	suite.Zero(released.ConcilID)

	suite.ErrorIs(suite.repos.ConcilRepo.DeleteGroup(suite.ctx, 3), apperrors.ErrNotFound)
}

func numbers(entries []domain.Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.Number
	}
	return out
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
