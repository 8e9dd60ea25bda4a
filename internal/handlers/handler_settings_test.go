package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/SscSPs/textile_erp/internal/handlers"
	"github.com/SscSPs/textile_erp/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettingsHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockSettingsService
	mockAudit   *MockAuditService
	testUserID  string
	validToken  string
	current     domain.Precision
}

func (suite *SettingsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())

	suite.mockService = new(MockSettingsService)
	suite.mockAudit = new(MockAuditService)
	suite.testUserID = "user-123"

	var err error
	suite.validToken, err = generateTestToken(suite.testUserID)
	suite.Require().NoError(err)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterSettingsRoutes(api, suite.mockService, suite.mockAudit)
	suite.router = router

	suite.current = domain.Precision{AmountDecimals: 2, QuantityDecimals: 3, RateDecimals: 4}
}

func (suite *SettingsHandlerTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func TestSettingsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsHandlerTestSuite))
}

func (suite *SettingsHandlerTestSuite) TestGetPrecision() {
	suite.mockService.On("GetPrecision", mock.Anything).Return(suite.current, nil).Once()

	w := serve(suite.T(), suite.router, suite.validToken, http.MethodGet, "/api/v1/settings/precision", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.Precision
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(suite.current, resp)
}

func (suite *SettingsHandlerTestSuite) TestGetPrecision_StoreFailure() {
	suite.mockService.On("GetPrecision", mock.Anything).
		Return(domain.Precision{}, apperrors.NewAppError(500, "failed to read settings", errors.New("timeout"))).Once()

	w := serve(suite.T(), suite.router, suite.validToken, http.MethodGet, "/api/v1/settings/precision", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to read precision", decodeError(suite.T(), w))
}

func (suite *SettingsHandlerTestSuite) TestUpdatePrecision_PartialUpdate() {
	amount := int32(3)
	updated := suite.current
	updated.AmountDecimals = amount

	suite.mockService.On("GetPrecision", mock.Anything).Return(suite.current, nil).Once()
	suite.mockService.On("UpdatePrecision", mock.Anything, mock.MatchedBy(func(req dto.UpdatePrecisionRequest) bool {
		return req.AmountDecimals != nil && *req.AmountDecimals == amount && req.QuantityDecimals == nil && req.RateDecimals == nil
	}), suite.testUserID).Return(updated, nil).Once()
	suite.mockAudit.On("Record", mock.Anything, mock.MatchedBy(func(rec portssvc.AuditRecord) bool {
		return rec.Module == "settings" && rec.Action == domain.AuditUpdate && rec.ResourceID == "precision" &&
			rec.Before == suite.current && rec.After == updated
	})).Return(nil).Once()

	w := serve(suite.T(), suite.router, suite.validToken, http.MethodPut, "/api/v1/settings/precision",
		map[string]any{"amountDecimals": 3})

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.Precision
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int32(3), resp.AmountDecimals)
	suite.Equal(int32(3), resp.QuantityDecimals)
}

func (suite *SettingsHandlerTestSuite) TestUpdatePrecision_OutOfRange() {
	w := serve(suite.T(), suite.router, suite.validToken, http.MethodPut, "/api/v1/settings/precision",
		map[string]any{"rateDecimals": 9})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "UpdatePrecision", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettingsHandlerTestSuite) TestUpdatePrecision_RequiresToken() {
	w := serve(suite.T(), suite.router, "", http.MethodPut, "/api/v1/settings/precision", map[string]any{"amountDecimals": 2})

	suite.Equal(http.StatusUnauthorized, w.Code)
}
