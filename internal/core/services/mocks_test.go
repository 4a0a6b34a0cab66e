package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Entry repository ---

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByNumber(ctx context.Context, number int64) (*domain.Entry, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) List(ctx context.Context, query portsrepo.EntryQuery) ([]domain.Entry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) Insert(ctx context.Context, entry *domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) Update(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, number int64, userID string, now time.Time) error {
	args := m.Called(ctx, number, userID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateSettlement(ctx context.Context, number int64, settlementNumber int64, userID string, now time.Time) error {
	args := m.Called(ctx, number, settlementNumber, userID, now)
	return args.Error(0)
}

// --- Account repository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Hand out a copy so a test can compare the stored account with the fixture.
	account := *args.Get(0).(*domain.Account)
	return &account, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountAmounts(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) ResetRoughAmounts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Ledger repository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindLedgerByMnemo(ctx context.Context, mnemo string) (*domain.Ledger, error) {
	args := m.Called(ctx, mnemo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	src := args.Get(0).(*domain.Ledger)
	ledger := *src
	ledger.Balances = make(map[string]*domain.LedgerBalance, len(src.Balances))
	for cur, b := range src.Balances {
		copied := *b
		ledger.Balances[cur] = &copied
	}
	return &ledger, args.Error(1)
}

func (m *MockLedgerRepository) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) UpdateLedgerBalance(ctx context.Context, ledger domain.Ledger, currency string) error {
	args := m.Called(ctx, ledger, currency)
	return args.Error(0)
}

func (m *MockLedgerRepository) ResetRoughBalances(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

// --- Currency repository ---

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Dossier repository ---

type MockDossierRepository struct {
	mock.Mock
}

func (m *MockDossierRepository) GetDossier(ctx context.Context) (*domain.Dossier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dossier), args.Error(1)
}

func (m *MockDossierRepository) NextSettlementID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDossierRepository) NextConcilID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDossierRepository) SaveExercise(ctx context.Context, begin, end *time.Time, userID string) error {
	args := m.Called(ctx, begin, end, userID)
	return args.Error(0)
}

// --- Reconciliation repository ---

type MockConcilRepository struct {
	mock.Mock
}

func (m *MockConcilRepository) FindGroupByID(ctx context.Context, id int64) (*domain.ConcilGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	group := *args.Get(0).(*domain.ConcilGroup)
	return &group, args.Error(1)
}

func (m *MockConcilRepository) FindGroupByMember(ctx context.Context, memberType domain.ConcilMemberType, otherID int64) (*domain.ConcilGroup, error) {
	args := m.Called(ctx, memberType, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConcilGroup), args.Error(1)
}

func (m *MockConcilRepository) CreateGroup(ctx context.Context, group domain.ConcilGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockConcilRepository) AddMember(ctx context.Context, groupID int64, member domain.ConcilMember) error {
	args := m.Called(ctx, groupID, member)
	return args.Error(0)
}

func (m *MockConcilRepository) DeleteGroup(ctx context.Context, groupID int64) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

// Compile-time checks that the mocks satisfy the ports.
var (
	_ portsrepo.EntryRepositoryFacade    = (*MockEntryRepository)(nil)
	_ portsrepo.AccountRepositoryFacade  = (*MockAccountRepository)(nil)
	_ portsrepo.LedgerRepositoryFacade   = (*MockLedgerRepository)(nil)
	_ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)
	_ portsrepo.DossierRepositoryFacade  = (*MockDossierRepository)(nil)
	_ portsrepo.ConcilRepositoryFacade   = (*MockConcilRepository)(nil)
)

// stubReferenceData answers the lookups made while validating rows:
// accounts 411000 (EUR), 512USD (USD) and root 4; currencies EUR and USD;
// ledgers VTE, ACH (closed until February) and BQ (closed until March);
// and a 2026 exercise.
func stubReferenceData(accountRepo *MockAccountRepository, currencyRepo *MockCurrencyRepository, ledgerRepo *MockLedgerRepository, dossierRepo *MockDossierRepository) {
	accountRepo.On("FindAccountByNumber", mock.Anything, "411000").
		Return(&domain.Account{Number: "411000", Currency: "EUR"}, nil).Maybe()
	accountRepo.On("FindAccountByNumber", mock.Anything, "512USD").
		Return(&domain.Account{Number: "512USD", Currency: "USD"}, nil).Maybe()
	accountRepo.On("FindAccountByNumber", mock.Anything, "4").
		Return(&domain.Account{Number: "4", Currency: "EUR", IsRoot: true}, nil).Maybe()
	accountRepo.On("FindAccountByNumber", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Maybe()

	currencies := []domain.Currency{{Code: "EUR", Digits: 2}, {Code: "USD", Digits: 2}}
	for i := range currencies {
		currencyRepo.On("FindCurrencyByCode", mock.Anything, currencies[i].Code).Return(&currencies[i], nil).Maybe()
	}
	currencyRepo.On("FindCurrencyByCode", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Maybe()
	currencyRepo.On("ListCurrencies", mock.Anything).Return(currencies, nil).Maybe()

	ledgers := []domain.Ledger{
		{Mnemo: "VTE"},
		{Mnemo: "ACH", LastClose: datePtr(2026, 2, 28)},
		{Mnemo: "BQ", LastClose: datePtr(2026, 3, 31)},
	}
	for i := range ledgers {
		ledgerRepo.On("FindLedgerByMnemo", mock.Anything, ledgers[i].Mnemo).Return(&ledgers[i], nil).Maybe()
	}
	ledgerRepo.On("FindLedgerByMnemo", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Maybe()

	dossierRepo.On("GetDossier", mock.Anything).
		Return(&domain.Dossier{ExeBegin: datePtr(2026, 1, 1), ExeEnd: datePtr(2026, 12, 31)}, nil).Maybe()
}
