package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/filter"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) GetEntry(ctx context.Context, number int64) (*domain.Entry, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryService) GetRow(ctx context.Context, number int64) (*domain.EntryRow, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryRow), args.Error(1)
}

func (m *MockEntryService) ListEntries(ctx context.Context, view filter.View) ([]domain.Entry, *domain.BalanceSet, error) {
	args := m.Called(ctx, view)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Entry), args.Get(1).(*domain.BalanceSet), args.Error(2)
}

func (m *MockEntryService) ComputeRowBalances(ctx context.Context, rows []domain.EntryRow) (*domain.BalanceSet, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSet), args.Error(1)
}

func (m *MockEntryService) NewRow(ctx context.Context, ledger string) *domain.EntryRow {
	args := m.Called(ctx, ledger)
	return args.Get(0).(*domain.EntryRow)
}

func (m *MockEntryService) ValidateRow(ctx context.Context, row *domain.EntryRow) *domain.EntryRow {
	args := m.Called(ctx, row)
	return args.Get(0).(*domain.EntryRow)
}

func (m *MockEntryService) CommitRow(ctx context.Context, row *domain.EntryRow, userID string) (*domain.Entry, error) {
	args := m.Called(ctx, row, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryService) DeleteEntry(ctx context.Context, number int64, userID string) error {
	args := m.Called(ctx, number, userID)
	return args.Error(0)
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) Settle(ctx context.Context, numbers []int64, opts portssvc.SettleOptions, userID string) (int64, *domain.BulkResult, error) {
	args := m.Called(ctx, numbers, opts, userID)
	result, _ := args.Get(1).(*domain.BulkResult)
	return args.Get(0).(int64), result, args.Error(2)
}

func (m *MockSettlementService) Unsettle(ctx context.Context, numbers []int64, userID string) (*domain.BulkResult, error) {
	args := m.Called(ctx, numbers, userID)
	result, _ := args.Get(0).(*domain.BulkResult)
	return result, args.Error(1)
}

var _ portssvc.SettlementSvc = (*MockSettlementService)(nil)

// --- Mock ConcilService ---
type MockConcilService struct {
	mock.Mock
}

func (m *MockConcilService) CreateGroup(ctx context.Context, dvalue time.Time, userID string) (*domain.ConcilGroup, error) {
	args := m.Called(ctx, dvalue, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConcilGroup), args.Error(1)
}

func (m *MockConcilService) AddMember(ctx context.Context, groupID int64, memberType domain.ConcilMemberType, otherID int64) (*domain.ConcilGroup, error) {
	args := m.Called(ctx, groupID, memberType, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConcilGroup), args.Error(1)
}

func (m *MockConcilService) DeleteGroup(ctx context.Context, groupID int64) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *MockConcilService) GetGroup(ctx context.Context, groupID int64) (*domain.ConcilGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConcilGroup), args.Error(1)
}

func (m *MockConcilService) GetGroupByMember(ctx context.Context, memberType domain.ConcilMemberType, otherID int64) (*domain.ConcilGroup, error) {
	args := m.Called(ctx, memberType, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConcilGroup), args.Error(1)
}

var _ portssvc.ConcilSvc = (*MockConcilService)(nil)

// --- Mock BookService ---
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) SaveCurrency(ctx context.Context, currency domain.Currency, userID string) (*domain.Currency, error) {
	args := m.Called(ctx, currency, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockBookService) SaveAccount(ctx context.Context, account domain.Account, userID string) (*domain.Account, error) {
	args := m.Called(ctx, account, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockBookService) SaveLedger(ctx context.Context, ledger domain.Ledger, userID string) (*domain.Ledger, error) {
	args := m.Called(ctx, ledger, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockBookService) OpenExercise(ctx context.Context, begin, end time.Time, userID string) (*domain.Dossier, error) {
	args := m.Called(ctx, begin, end, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dossier), args.Error(1)
}

func (m *MockBookService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockBookService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockBookService) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

func (m *MockBookService) GetDossier(ctx context.Context) (*domain.Dossier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dossier), args.Error(1)
}

var _ portssvc.BookSvc = (*MockBookService)(nil)

// --- Mock RemediationService ---
type MockRemediationService struct {
	mock.Mock
}

func (m *MockRemediationService) RemediateAccount(ctx context.Context, entry *domain.Entry, prevAccount string, prevDebit, prevCredit decimal.Decimal) error {
	args := m.Called(ctx, entry, prevAccount, prevDebit, prevCredit)
	return args.Error(0)
}

func (m *MockRemediationService) RemediateLedger(ctx context.Context, entry *domain.Entry, prevLedger string, prevDebit, prevCredit decimal.Decimal) error {
	args := m.Called(ctx, entry, prevLedger, prevDebit, prevCredit)
	return args.Error(0)
}

func (m *MockRemediationService) RecomputeRoughTotals(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.RemediationSvc = (*MockRemediationService)(nil)
