package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/handlers"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "handlers-test-secret"
	testUserID = "user-1"
)

type HandlersTestSuite struct {
	suite.Suite
	router      *gin.Engine
	token       string
	entry       *MockEntryService
	settlement  *MockSettlementService
	concil      *MockConcilService
	book        *MockBookService
	remediation *MockRemediationService
}

func (suite *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.entry = new(MockEntryService)
	suite.settlement = new(MockSettlementService)
	suite.concil = new(MockConcilService)
	suite.book = new(MockBookService)
	suite.remediation = new(MockRemediationService)

	cfg := &config.Config{
		JWTSecret:         testSecret,
		AmountDecimalSep:  ".",
		AmountThousandSep: " ",
		DateDisplayFormat: "dmy",
		CollationLocale:   "und",
	}
	container := &portssvc.ServiceContainer{
		Entry:       suite.entry,
		Remediation: suite.remediation,
		Settlement:  suite.settlement,
		Concil:      suite.concil,
		Book:        suite.book,
	}

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container))

	token, err := utils.IssueToken(testUserID, testSecret, time.Hour)
	suite.Require().NoError(err)
	suite.token = token
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.entry.AssertExpectations(suite.T())
	suite.settlement.AssertExpectations(suite.T())
	suite.concil.AssertExpectations(suite.T())
	suite.book.AssertExpectations(suite.T())
	suite.remediation.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (suite *HandlersTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestUnauthorized() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/entries/1", nil))

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestValidateRow_InvalidRowIsStillOK() {
	suite.entry.On("ValidateRow", mock.Anything, mock.MatchedBy(func(r *domain.EntryRow) bool {
		return r.Account == "411000" && r.Debit == "12.50"
	})).Return(&domain.EntryRow{Account: "411000", Debit: "12.50", Error: "Ledger is empty"}).Once()

	w := suite.do(http.MethodPost, "/api/v1/entries/rows/validate", dto.EntryRowRequest{Account: "411000", Debit: "12.50"})

	suite.Equal(http.StatusOK, w.Code)
	var res dto.EntryRowResponse
	suite.decode(w, &res)
	suite.Equal("Ledger is empty", res.Error)
	suite.False(res.Committable)
}

func (suite *HandlersTestSuite) TestNewRow() {
	suite.entry.On("NewRow", mock.Anything, "ACH").Return(&domain.EntryRow{Ledger: "ACH", Status: domain.StatusRough}).Once()

	w := suite.do(http.MethodGet, "/api/v1/entries/rows/new?ledger=ACH", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.EntryRowResponse
	suite.decode(w, &res)
	suite.Equal("ACH", res.Ledger)
	suite.True(res.Committable)
}

func (suite *HandlersTestSuite) TestCommitRow_Created() {
	entry := &domain.Entry{
		Number:  42,
		DOpe:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		DEffect: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Ledger:  "ACH",
		Account: "411000",
		Debit:   decimal.RequireFromString("12.5"),
		Credit:  decimal.Zero,
	}
	suite.entry.On("CommitRow", mock.Anything, mock.AnythingOfType("*domain.EntryRow"), testUserID).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/entries/rows/commit", dto.EntryRowRequest{Ledger: "ACH", Account: "411000", Debit: "12.50"})

	suite.Equal(http.StatusCreated, w.Code)
	var res struct {
		Entry dto.EntryResponse `json:"entry"`
	}
	suite.decode(w, &res)
	suite.Equal(int64(42), res.Entry.Number)
	suite.Equal("2026-03-02", res.Entry.DEffect)
}

func (suite *HandlersTestSuite) TestCommitRow_Updated() {
	suite.entry.On("CommitRow", mock.Anything, mock.AnythingOfType("*domain.EntryRow"), testUserID).
		Return(&domain.Entry{Number: 7}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/entries/rows/commit", dto.EntryRowRequest{Number: 7, Ledger: "ACH"})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestCommitRow_InvalidReturnsRow() {
	suite.entry.On("CommitRow", mock.Anything, mock.AnythingOfType("*domain.EntryRow"), testUserID).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.EntryRow).SetError("Account is empty")
		}).
		Return(nil, fmt.Errorf("%w: row is not committable", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/entries/rows/commit", dto.EntryRowRequest{Ledger: "ACH"})

	suite.Equal(http.StatusBadRequest, w.Code)
	var res struct {
		Error string               `json:"error"`
		Row   dto.EntryRowResponse `json:"row"`
	}
	suite.decode(w, &res)
	suite.Contains(res.Error, "not committable")
	suite.Equal("Account is empty", res.Row.Error)
	suite.False(res.Row.Committable)
}

func (suite *HandlersTestSuite) TestRowBalances() {
	set := domain.NewBalanceSet()
	set.Add("EUR", 2, decimal.RequireFromString("1234.5"), decimal.Zero)
	set.Add("USD", 2, decimal.Zero, decimal.Zero)
	suite.entry.On("ComputeRowBalances", mock.Anything, mock.MatchedBy(func(rows []domain.EntryRow) bool {
		return len(rows) == 2
	})).Return(set, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/entries/rows/balances", dto.RowBalancesRequest{
		Rows: []dto.EntryRowRequest{{Currency: "EUR", Debit: "1234.5"}, {Currency: "USD"}},
	})

	suite.Equal(http.StatusOK, w.Code)
	var res struct {
		Balances []dto.BalanceResponse `json:"balances"`
	}
	suite.decode(w, &res)
	suite.Require().Len(res.Balances, 1)
	suite.Equal("EUR", res.Balances[0].Currency)
	suite.Equal("1 234.50", res.Balances[0].Display.Debit)
	suite.Equal("0.00", res.Balances[0].Display.Credit)
	suite.False(res.Balances[0].Balanced)
}

func (suite *HandlersTestSuite) TestGetEntry_NotFound() {
	suite.entry.On("GetEntry", mock.Anything, int64(99)).
		Return(nil, apperrors.NewAppError(404, "entry 99 not found", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/entries/99", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestGetEntry_BadNumber() {
	w := suite.do(http.MethodGet, "/api/v1/entries/abc", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.entry.AssertNotCalled(suite.T(), "GetEntry", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestDeleteEntry() {
	suite.entry.On("DeleteEntry", mock.Anything, int64(5), testUserID).Return(nil).Once()
	suite.entry.On("DeleteEntry", mock.Anything, int64(6), testUserID).Return(fmt.Errorf("%w: %w", apperrors.ErrValidation, domain.ErrEntryNotRough)).Once()
	suite.entry.On("DeleteEntry", mock.Anything, int64(7), testUserID).Return(errors.New("connection reset")).Once()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/v1/entries/5", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodDelete, "/api/v1/entries/6", nil).Code)

	w := suite.do(http.MethodDelete, "/api/v1/entries/7", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *HandlersTestSuite) TestSettle_UnbalancedNeedsConfirmation() {
	unbalanced := &portssvc.UnbalancedSelectionError{Balances: []domain.CurrencyBalance{{
		Currency: "EUR",
		Digits:   2,
		Debit:    decimal.NewFromInt(100),
		Credit:   decimal.NewFromInt(40),
	}}}
	suite.settlement.On("Settle", mock.Anything, []int64{1, 2}, portssvc.SettleOptions{}, testUserID).
		Return(int64(0), nil, unbalanced).Once()

	w := suite.do(http.MethodPost, "/api/v1/settlements", dto.SettleRequest{Numbers: []int64{1, 2}})

	suite.Equal(http.StatusConflict, w.Code)
	var res dto.UnbalancedSelectionResponse
	suite.decode(w, &res)
	suite.Require().Len(res.Balances, 1)
	suite.Equal("100.00", res.Balances[0].Display.Debit)
	suite.Equal("40.00", res.Balances[0].Display.Credit)
}

func (suite *HandlersTestSuite) TestSettle_PartialFailure() {
	result := domain.NewBulkResult()
	result.Ok(1)
	result.Fail(2, apperrors.ErrNotFound)
	suite.settlement.On("Settle", mock.Anything, []int64{1, 2}, portssvc.SettleOptions{Force: true}, testUserID).
		Return(int64(12), result, errors.New("1 entry could not be settled")).Once()

	w := suite.do(http.MethodPost, "/api/v1/settlements", dto.SettleRequest{Numbers: []int64{1, 2}, Force: true})

	suite.Equal(http.StatusMultiStatus, w.Code)
	var res dto.SettleResponse
	suite.decode(w, &res)
	suite.Equal(int64(12), res.SettlementNumber)
	suite.Equal([]int64{1}, res.Succeeded)
	suite.Contains(res.Failed, int64(2))
}

func (suite *HandlersTestSuite) TestSettle_NothingWritten() {
	result := domain.NewBulkResult()
	result.Fail(1, apperrors.ErrNotFound)
	result.Fail(2, apperrors.ErrNotFound)
	joined := errors.Join(
		fmt.Errorf("entry 1: %w", apperrors.ErrNotFound),
		fmt.Errorf("entry 2: %w", apperrors.ErrNotFound))
	suite.settlement.On("Settle", mock.Anything, []int64{1, 2}, portssvc.SettleOptions{Force: true}, testUserID).
		Return(int64(13), result, joined).Once()

	w := suite.do(http.MethodPost, "/api/v1/settlements", dto.SettleRequest{Numbers: []int64{1, 2}, Force: true})

	suite.Equal(http.StatusNotFound, w.Code)
	var res map[string]string
	suite.decode(w, &res)
	suite.Contains(res["error"], "entry 1")
}

func (suite *HandlersTestSuite) TestUnsettle_NothingWrittenInternalError() {
	result := domain.NewBulkResult()
	result.Fail(3, errors.New("database is locked"))
	suite.settlement.On("Unsettle", mock.Anything, []int64{3}, testUserID).
		Return(result, fmt.Errorf("entry 3: %w", errors.New("database is locked"))).Once()

	w := suite.do(http.MethodPost, "/api/v1/settlements/clear", dto.UnsettleRequest{Numbers: []int64{3}})

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "database is locked")
}

func (suite *HandlersTestSuite) TestSettle_EmptySelectionRejected() {
	w := suite.do(http.MethodPost, "/api/v1/settlements", dto.SettleRequest{Numbers: []int64{}})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.settlement.AssertNotCalled(suite.T(), "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestUnsettle() {
	result := domain.NewBulkResult()
	result.Ok(3)
	suite.settlement.On("Unsettle", mock.Anything, []int64{3}, testUserID).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/settlements/clear", dto.UnsettleRequest{Numbers: []int64{3}})

	suite.Equal(http.StatusOK, w.Code)
	var res dto.BulkResultResponse
	suite.decode(w, &res)
	suite.Equal([]int64{3}, res.Succeeded)
	suite.Empty(res.Failed)
}

func (suite *HandlersTestSuite) TestCreateConcil_ParsesDisplayDate() {
	dvalue := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	suite.concil.On("CreateGroup", mock.Anything, mock.MatchedBy(func(t time.Time) bool {
		return t.Year() == 2026 && t.Month() == time.October && t.Day() == 1
	}), testUserID).Return(&domain.ConcilGroup{ID: 3, DValue: dvalue, User: testUserID}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/concil", dto.CreateConcilRequest{DValue: "01/10/2026"})

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.ConcilGroupResponse
	suite.decode(w, &res)
	suite.Equal(int64(3), res.ID)
	suite.Equal("2026-10-01", res.DValue)
	suite.NotNil(res.Members)
}

func (suite *HandlersTestSuite) TestCreateConcil_InvalidDate() {
	w := suite.do(http.MethodPost, "/api/v1/concil", dto.CreateConcilRequest{DValue: "31/02/2026"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestAddConcilMember_Duplicate() {
	suite.concil.On("AddMember", mock.Anything, int64(3), domain.ConcilEntry, int64(42)).
		Return(nil, fmt.Errorf("%w: %w", apperrors.ErrDuplicate, domain.ErrDuplicateMember)).Once()

	w := suite.do(http.MethodPost, "/api/v1/concil/3/members", dto.AddConcilMemberRequest{Type: "E", OtherID: 42})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestGetConcilByMember() {
	suite.concil.On("GetGroupByMember", mock.Anything, domain.ConcilBat, int64(8)).Return(&domain.ConcilGroup{
		ID:      4,
		Members: []domain.ConcilMember{{Type: domain.ConcilBat, OtherID: 8}},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/concil/members/B/8", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/concil/members/X/8", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestDeleteConcil_NotFound() {
	suite.concil.On("DeleteGroup", mock.Anything, int64(9)).Return(fmt.Errorf("%w: %w", apperrors.ErrNotFound, domain.ErrGroupNotFound)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/concil/9", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestSaveCurrency_BindingRejectsDigits() {
	w := suite.do(http.MethodPut, "/api/v1/currencies", map[string]any{"code": "EUR", "label": "Euro", "digits": 9})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.book.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestRecomputeTotals() {
	suite.remediation.On("RecomputeRoughTotals", mock.Anything).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/balances/recompute", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
