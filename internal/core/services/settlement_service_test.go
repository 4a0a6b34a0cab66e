package services_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// memEntryStore keeps entries in memory and applies settlement updates the
// way the storage adapters do.
type memEntryStore struct {
	mu      sync.Mutex
	entries map[int64]domain.Entry
	failOn  map[int64]error
}

func newMemEntryStore(entries ...domain.Entry) *memEntryStore {
	s := &memEntryStore{entries: make(map[int64]domain.Entry), failOn: make(map[int64]error)}
	for _, e := range entries {
		s.entries[e.Number] = e
	}
	return s
}

func (s *memEntryStore) FindByNumber(_ context.Context, number int64) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[number]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (s *memEntryStore) List(_ context.Context, query portsrepo.EntryQuery) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Entry
	for number, e := range s.entries {
		if len(query.Numbers) > 0 && !slices.Contains(query.Numbers, number) {
			continue
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b domain.Entry) int { return int(a.Number - b.Number) })
	return out, nil
}

func (s *memEntryStore) Insert(_ context.Context, entry *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Number = int64(len(s.entries) + 1)
	s.entries[entry.Number] = *entry
	return nil
}

func (s *memEntryStore) Update(_ context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Number] = entry
	return nil
}

func (s *memEntryStore) Delete(_ context.Context, number int64, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[number]
	e.Status = domain.StatusDeleted
	e.LastUpdatedBy = userID
	e.LastUpdatedAt = now
	s.entries[number] = e
	return nil
}

func (s *memEntryStore) UpdateSettlement(_ context.Context, number int64, settlementNumber int64, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failOn[number]; err != nil {
		return err
	}
	e, ok := s.entries[number]
	if !ok {
		return apperrors.ErrNotFound
	}
	if settlementNumber == domain.SettlementClear {
		e.SettlementNumber = 0
		e.SettlementUser = ""
		e.SettlementStamp = nil
	} else {
		e.SettlementNumber = settlementNumber
		e.SettlementUser = userID
		e.SettlementStamp = &now
	}
	s.entries[number] = e
	return nil
}

var _ portsrepo.EntryRepositoryFacade = (*memEntryStore)(nil)

type SettlementServiceTestSuite struct {
	suite.Suite
	store        *memEntryStore
	currencyRepo *MockCurrencyRepository
	dossierRepo  *MockDossierRepository
	service      portssvc.SettlementSvc
	ctx          context.Context
	now          time.Time
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	suite.store = newMemEntryStore(
		domain.Entry{Number: 1, Account: "411000", Currency: "EUR", Debit: dec("100"), Status: domain.StatusRough, Period: domain.PeriodCurrent},
		domain.Entry{Number: 2, Account: "411000", Currency: "EUR", Credit: dec("100"), Status: domain.StatusRough, Period: domain.PeriodCurrent, SettlementNumber: 4},
		domain.Entry{Number: 3, Account: "512USD", Currency: "USD", Debit: dec("50"), Status: domain.StatusRough, Period: domain.PeriodCurrent},
	)
	suite.currencyRepo = new(MockCurrencyRepository)
	suite.currencyRepo.On("ListCurrencies", mock.Anything).Return([]domain.Currency{
		{Code: "EUR", Digits: 2},
		{Code: "USD", Digits: 2},
	}, nil).Maybe()
	suite.dossierRepo = new(MockDossierRepository)
	suite.service = services.NewSettlementService(suite.store, suite.currencyRepo, suite.dossierRepo,
		services.WithSettlementClock(func() time.Time { return suite.now }))
}

func (suite *SettlementServiceTestSuite) entry(number int64) *domain.Entry {
	e, err := suite.store.FindByNumber(suite.ctx, number)
	suite.Require().NoError(err)
	return e
}

func (suite *SettlementServiceTestSuite) TestSettle_OneNumberForTheWholeSelection() {
	suite.dossierRepo.On("NextSettlementID", mock.Anything).Return(int64(5), nil).Once()

	number, result, err := suite.service.Settle(suite.ctx, []int64{1, 2}, portssvc.SettleOptions{}, "user-1")

	suite.NoError(err)
	suite.Equal(int64(5), number)
	suite.ElementsMatch([]int64{1, 2}, result.Succeeded)
	suite.False(result.HasFailures())
	for _, n := range []int64{1, 2} {
		e := suite.entry(n)
		suite.Equal(int64(5), e.SettlementNumber, "entry %d", n)
		suite.Equal("user-1", e.SettlementUser)
		suite.Require().NotNil(e.SettlementStamp)
		suite.True(e.SettlementStamp.Equal(suite.now))
	}
	suite.dossierRepo.AssertNumberOfCalls(suite.T(), "NextSettlementID", 1)
}

func (suite *SettlementServiceTestSuite) TestSettle_UnbalancedSelectionRefused() {
	_, _, err := suite.service.Settle(suite.ctx, []int64{1, 2, 3}, portssvc.SettleOptions{}, "user-1")

	suite.ErrorIs(err, domain.ErrSettlementUnbalanced)
	var unbalanced *portssvc.UnbalancedSelectionError
	suite.Require().ErrorAs(err, &unbalanced)
	suite.Require().Len(unbalanced.Balances, 2)
	suite.Equal("EUR", unbalanced.Balances[0].Currency)
	suite.True(unbalanced.Balances[0].IsBalanced())
	suite.Equal("USD", unbalanced.Balances[1].Currency)
	suite.False(unbalanced.Balances[1].IsBalanced())

	suite.dossierRepo.AssertNotCalled(suite.T(), "NextSettlementID", mock.Anything)
	suite.Equal(int64(0), suite.entry(3).SettlementNumber)
}

func (suite *SettlementServiceTestSuite) TestSettle_ForcedOrWithoutWarning() {
	suite.dossierRepo.On("NextSettlementID", mock.Anything).Return(int64(6), nil).Once()
	number, _, err := suite.service.Settle(suite.ctx, []int64{3}, portssvc.SettleOptions{Force: true}, "user-1")
	suite.NoError(err)
	suite.Equal(int64(6), suite.entry(3).SettlementNumber)
	suite.Equal(int64(6), number)

	quiet := services.NewSettlementService(suite.store, suite.currencyRepo, suite.dossierRepo,
		services.WithUnbalancedWarning(false))
	suite.dossierRepo.On("NextSettlementID", mock.Anything).Return(int64(7), nil).Once()
	_, _, err = quiet.Settle(suite.ctx, []int64{1}, portssvc.SettleOptions{}, "user-1")
	suite.NoError(err)
	suite.Equal(int64(7), suite.entry(1).SettlementNumber)
}

func (suite *SettlementServiceTestSuite) TestSettleThenUnsettle_RoundTrip() {
	suite.dossierRepo.On("NextSettlementID", mock.Anything).Return(int64(8), nil).Once()
	_, _, err := suite.service.Settle(suite.ctx, []int64{1, 2}, portssvc.SettleOptions{}, "user-1")
	suite.Require().NoError(err)

	result, err := suite.service.Unsettle(suite.ctx, []int64{1, 2}, "user-2")

	suite.NoError(err)
	suite.ElementsMatch([]int64{1, 2}, result.Succeeded)
	for _, n := range []int64{1, 2} {
		e := suite.entry(n)
		suite.Equal(int64(0), e.SettlementNumber)
		suite.Empty(e.SettlementUser)
		suite.Nil(e.SettlementStamp)
		suite.False(e.IsSettled())
	}
}

func (suite *SettlementServiceTestSuite) TestEmptySelection() {
	_, _, err := suite.service.Settle(suite.ctx, nil, portssvc.SettleOptions{}, "user-1")
	suite.ErrorIs(err, domain.ErrEmptySelection)

	_, err = suite.service.Unsettle(suite.ctx, []int64{}, "user-1")
	suite.ErrorIs(err, domain.ErrEmptySelection)
}

func (suite *SettlementServiceTestSuite) TestSettle_PartialFailureKeepsGoing() {
	dbErr := errors.New("row locked")
	suite.store.failOn[1] = dbErr
	suite.dossierRepo.On("NextSettlementID", mock.Anything).Return(int64(9), nil).Once()

	number, result, err := suite.service.Settle(suite.ctx, []int64{1, 2}, portssvc.SettleOptions{}, "user-1")

	suite.ErrorIs(err, dbErr)
	suite.Equal(int64(9), number)
	suite.Equal([]int64{2}, result.Succeeded)
	suite.ErrorIs(result.Failed[1], dbErr)
	suite.Equal(int64(9), suite.entry(2).SettlementNumber, "no rollback of the other entries")
	suite.Equal(int64(0), suite.entry(1).SettlementNumber)
}

func (suite *SettlementServiceTestSuite) TestSettle_AllocationFailure() {
	suite.dossierRepo.On("NextSettlementID", mock.Anything).Return(int64(0), errors.New("sequence exhausted")).Once()

	_, result, err := suite.service.Settle(suite.ctx, []int64{1, 2}, portssvc.SettleOptions{}, "user-1")

	suite.Error(err)
	suite.Nil(result)
	suite.Equal(int64(4), suite.entry(2).SettlementNumber)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
