package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/SscSPs/textile_erp/internal/handlers"
	"github.com/SscSPs/textile_erp/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockJournalService
	mockAudit   *MockAuditService
	testUserID  string
	validToken  string
	postedEntry *domain.JournalEntry
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())

	suite.mockService = new(MockJournalService)
	suite.mockAudit = new(MockAuditService)
	suite.testUserID = "user-456"

	var err error
	suite.validToken, err = generateTestToken(suite.testUserID)
	suite.Require().NoError(err)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterJournalRoutes(api, suite.mockService, suite.mockAudit)
	suite.router = router

	entryDate := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	suite.postedEntry = &domain.JournalEntry{
		EntryID:     10,
		VoucherNo:   "SV-000001",
		VoucherSeq:  1,
		VoucherType: domain.SalesVoucher,
		EntryDate:   entryDate,
		Narration:   "Grey fabric sale",
		Status:      domain.Posted,
		Lines: []domain.JournalLine{
			{LineID: 1, EntryID: 10, LineNo: 1, AccountID: 5, AccountCode: "1200", Debit: decimal.NewFromInt(1180), Credit: decimal.Zero},
			{LineID: 2, EntryID: 10, LineNo: 2, AccountID: 8, AccountCode: "4100", Debit: decimal.Zero, Credit: decimal.NewFromInt(1180)},
		},
		AuditFields: domain.NewAuditFields(suite.testUserID, entryDate),
	}
}

func (suite *JournalHandlerTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func TestJournalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}

func (suite *JournalHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	reader := bytes.NewReader(nil)
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.validToken)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func saleRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   "2024-04-15",
		VoucherType: domain.SalesVoucher,
		Narration:   "Grey fabric sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: 5, Debit: decimal.NewFromInt(1180)},
			{AccountID: 8, Credit: decimal.NewFromInt(1180)},
		},
	}
}

// matchSale matches the bound request without comparing decimal internals.
func matchSale() any {
	return mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.EntryDate == "2024-04-15" &&
			req.VoucherType == domain.SalesVoucher &&
			len(req.Lines) == 2 &&
			req.Lines[0].Debit.Equal(decimal.NewFromInt(1180)) &&
			req.Lines[1].Credit.Equal(decimal.NewFromInt(1180))
	})
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Success() {
	suite.mockService.On("CreateEntry", mock.Anything, matchSale(), suite.testUserID).Return(suite.postedEntry, nil).Once()
	suite.mockAudit.On("Record", mock.Anything, mock.MatchedBy(func(rec portssvc.AuditRecord) bool {
		return rec.Action == domain.AuditPost && rec.Module == "journal" && rec.ResourceID == "10"
	})).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", saleRequest())

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("SV-000001", resp.VoucherNo)
	suite.Equal(domain.Posted, resp.Status)
	suite.Len(resp.Lines, 2)
	suite.True(resp.TotalDebit.Equal(resp.TotalCredit))
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_MissingDate() {
	req := saleRequest()
	req.EntryDate = ""

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_InsufficientLines() {
	suite.mockService.On("CreateEntry", mock.Anything, mock.Anything, suite.testUserID).
		Return(nil, &apperrors.InsufficientLinesError{Count: 1}).Once()

	req := saleRequest()
	req.Lines = req.Lines[:1]
	w := suite.do(http.MethodPost, "/api/v1/journal-entries", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("journal entry must have at least two lines, got 1", decodeError(suite.T(), w))
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Unbalanced() {
	unbalanced := &apperrors.UnbalancedEntryError{TotalDebit: "1180", TotalCredit: "1000", Delta: "180"}
	suite.mockService.On("CreateEntry", mock.Anything, mock.Anything, suite.testUserID).Return(nil, unbalanced).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", saleRequest())

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_UnknownAccount() {
	suite.mockService.On("CreateEntry", mock.Anything, mock.Anything, suite.testUserID).
		Return(nil, &apperrors.AccountNotFoundError{AccountID: 8}).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", saleRequest())

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_VoucherConflictAfterRetries() {
	failed := &apperrors.PostingFailedError{
		Attempts: 3,
		Err:      fmt.Errorf("%w: voucher number SV-000002 already issued", apperrors.ErrConflict),
	}
	suite.mockService.On("CreateEntry", mock.Anything, mock.Anything, suite.testUserID).Return(nil, failed).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", saleRequest())

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_PersistenceFailure() {
	failed := &apperrors.PostingFailedError{
		Attempts: 1,
		Err:      apperrors.NewAppError(http.StatusInternalServerError, "failed to insert journal lines", errors.New("connection refused")),
	}
	suite.mockService.On("CreateEntry", mock.Anything, mock.Anything, suite.testUserID).Return(nil, failed).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", saleRequest())

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to post journal entry", decodeError(suite.T(), w))
}

func (suite *JournalHandlerTestSuite) TestListEntries_Success() {
	next := "token"
	resp := &dto.ListJournalEntriesResponse{
		Entries:   []dto.JournalEntryResponse{dto.ToJournalEntryResponse(suite.postedEntry)},
		NextToken: &next,
	}
	suite.mockService.On("GetEntries", mock.Anything, mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
		return p.VoucherType == "SALES" && p.Limit == 20
	})).Return(resp, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?voucherType=SALES", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ListJournalEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got.Entries, 1)
	suite.Require().NotNil(got.NextToken)
	suite.Equal("token", *got.NextToken)
}

func (suite *JournalHandlerTestSuite) TestListEntries_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/journal-entries?limit=1000", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestGetEntry_NotFound() {
	suite.mockService.On("GetEntryByID", mock.Anything, int64(77)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries/77", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_Success() {
	originalID := int64(10)
	reversal := &domain.JournalEntry{
		EntryID:      11,
		VoucherNo:    "SV-000002",
		VoucherType:  domain.SalesVoucher,
		EntryDate:    suite.postedEntry.EntryDate,
		Status:       domain.Posted,
		ReversalOfID: &originalID,
		AuditFields:  domain.NewAuditFields(suite.testUserID, suite.postedEntry.EntryDate),
	}
	suite.mockService.On("ReverseEntry", mock.Anything, int64(10), dto.ReverseJournalEntryRequest{}, suite.testUserID).Return(reversal, nil).Once()
	suite.mockAudit.On("Record", mock.Anything, mock.MatchedBy(func(rec portssvc.AuditRecord) bool {
		return rec.Action == domain.AuditReverse && rec.ResourceID == "10"
	})).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/10/reverse", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.ReversalOfID)
	suite.Equal(int64(10), *resp.ReversalOfID)
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_AlreadyReversed() {
	reversedErr := fmt.Errorf("%w: entry 10 is already reversed", apperrors.ErrBusinessRule)
	req := dto.ReverseJournalEntryRequest{EntryDate: "2024-04-30", Narration: "Sale cancelled"}
	suite.mockService.On("ReverseEntry", mock.Anything, int64(10), req, suite.testUserID).Return(nil, reversedErr).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/10/reverse", req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
}

type ReportingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockReportingService
	validToken  string
}

func (suite *ReportingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
	suite.mockService = new(MockReportingService)

	var err error
	suite.validToken, err = generateTestToken("auditor-1")
	suite.Require().NoError(err)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterReportingRoutes(api, suite.mockService)
	suite.router = router
}

func (suite *ReportingHandlerTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
}

func TestReportingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}

func (suite *ReportingHandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+suite.validToken)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReportingHandlerTestSuite) TestTrialBalance_Success() {
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	tb := &domain.TrialBalance{
		Segment: "WEAVING",
		AsOf:    &asOf,
		Rows: []domain.TrialBalanceRow{
			{AccountID: 5, Code: "1200", AccountName: "Debtors", AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
			{AccountID: 8, Code: "4100", AccountName: "Fabric Sales", AccountType: domain.Income, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
		},
		TotalDebit:  decimal.NewFromInt(500),
		TotalCredit: decimal.NewFromInt(500),
		IsBalanced:  true,
	}
	suite.mockService.On("TrialBalance", mock.Anything, "WEAVING", mock.MatchedBy(func(d *time.Time) bool {
		return d != nil && d.Equal(asOf)
	})).Return(tb, nil).Once()

	w := suite.get("/api/v1/reports/trial-balance?segment=WEAVING&asOf=2024-03-31")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsBalanced)
	suite.Len(resp.Rows, 2)
	suite.Equal("2024-03-31", resp.AsOf)
}

func (suite *ReportingHandlerTestSuite) TestTrialBalance_AllDates() {
	tb := &domain.TrialBalance{Rows: []domain.TrialBalanceRow{}, IsBalanced: true}
	suite.mockService.On("TrialBalance", mock.Anything, "", (*time.Time)(nil)).Return(tb, nil).Once()

	w := suite.get("/api/v1/reports/trial-balance")

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *ReportingHandlerTestSuite) TestTrialBalance_InvalidDate() {
	w := suite.get("/api/v1/reports/trial-balance?asOf=31-03-2024")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "TrialBalance", mock.Anything, mock.Anything, mock.Anything)
}
