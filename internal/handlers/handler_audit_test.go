package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/SscSPs/textile_erp/internal/handlers"
	"github.com/SscSPs/textile_erp/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuditHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockAudit  *MockAuditService
	validToken string
}

func (suite *AuditHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())

	suite.mockAudit = new(MockAuditService)

	var err error
	suite.validToken, err = generateTestToken("auditor-1")
	suite.Require().NoError(err)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterAuditRoutes(api, suite.mockAudit)
	suite.router = router
}

func (suite *AuditHandlerTestSuite) TearDownTest() {
	suite.mockAudit.AssertExpectations(suite.T())
}

func TestAuditHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuditHandlerTestSuite))
}

func (suite *AuditHandlerTestSuite) TestListAuditLogs_FiltersAndDefaultLimit() {
	logs := []domain.AuditLog{{
		AuditID:    11,
		UserID:     "user-123",
		Action:     domain.AuditUpdate,
		Module:     "currencies",
		ResourceID: "USD",
		Before:     json.RawMessage(`{"exchangeRate":"83.25"}`),
		After:      json.RawMessage(`{"exchangeRate":"84.1"}`),
		CreatedAt:  time.Date(2024, 4, 2, 8, 30, 0, 0, time.UTC),
	}}
	suite.mockAudit.On("ListAuditLogs", mock.Anything, dto.ListAuditLogsParams{
		Module: "currencies", ResourceID: "USD", Limit: 50,
	}).Return(logs, nil).Once()

	w := serve(suite.T(), suite.router, suite.validToken, http.MethodGet, "/api/v1/audit-logs?module=currencies&resourceID=USD", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AuditLogResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("UPDATE", resp[0].Action)
	suite.JSONEq(`{"exchangeRate":"83.25"}`, string(resp[0].Before))
	suite.JSONEq(`{"exchangeRate":"84.1"}`, string(resp[0].After))
}

func (suite *AuditHandlerTestSuite) TestListAuditLogs_CreateHasNoBefore() {
	suite.mockAudit.On("ListAuditLogs", mock.Anything, mock.Anything).Return([]domain.AuditLog{{
		AuditID: 1, UserID: "user-123", Action: domain.AuditCreate, Module: "accounts", ResourceID: "4",
		After: json.RawMessage(`{"code":"1100"}`),
	}}, nil).Once()

	w := serve(suite.T(), suite.router, suite.validToken, http.MethodGet, "/api/v1/audit-logs", nil)

	suite.Equal(http.StatusOK, w.Code)
	var raw []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &raw))
	suite.Require().Len(raw, 1)
	suite.NotContains(raw[0], "before")
	suite.Contains(raw[0], "after")
}

func (suite *AuditHandlerTestSuite) TestListAuditLogs_LimitOutOfRange() {
	for _, q := range []string{"limit=0", "limit=501", "limit=abc"} {
		w := serve(suite.T(), suite.router, suite.validToken, http.MethodGet, "/api/v1/audit-logs?"+q, nil)
		suite.Equal(http.StatusBadRequest, w.Code, q)
	}
	suite.mockAudit.AssertNotCalled(suite.T(), "ListAuditLogs", mock.Anything, mock.Anything)
}

func (suite *AuditHandlerTestSuite) TestListAuditLogs_StoreFailure() {
	suite.mockAudit.On("ListAuditLogs", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(500, "failed to query audit logs", errors.New("conn refused"))).Once()

	w := serve(suite.T(), suite.router, suite.validToken, http.MethodGet, "/api/v1/audit-logs", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to list audit logs", decodeError(suite.T(), w))
}

func (suite *AuditHandlerTestSuite) TestListAuditLogs_RequiresToken() {
	w := serve(suite.T(), suite.router, "", http.MethodGet, "/api/v1/audit-logs", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}
