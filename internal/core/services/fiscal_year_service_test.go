package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/core/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FiscalYearServiceTestSuite struct {
	suite.Suite
	mockRepo *MockFiscalYearRepository
	service  portssvc.FiscalYearSvcFacade
	fy2024   domain.FiscalYear
	userID   string
}

func (suite *FiscalYearServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFiscalYearRepository)
	suite.service = services.NewFiscalYearService(suite.mockRepo)
	suite.userID = "user-1"
	suite.fy2024 = domain.FiscalYear{
		FiscalYearID: 1,
		Name:         "FY 2024-25",
		StartDate:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}
}

func (suite *FiscalYearServiceTestSuite) TestCreateFiscalYear_FirstBecomesActive() {
	ctx := context.Background()
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindOverlapping", ctx, start, end).Return([]domain.FiscalYear{}, nil).Once()
	suite.mockRepo.On("ListFiscalYears", ctx).Return([]domain.FiscalYear{}, nil).Once()
	suite.mockRepo.On("SaveFiscalYear", ctx, mock.MatchedBy(func(fy domain.FiscalYear) bool {
		return fy.IsActive && fy.Name == "FY 2024-25" && fy.StartDate.Equal(start)
	})).Return(&suite.fy2024, nil).Once()

	fy, err := suite.service.CreateFiscalYear(ctx, dto.CreateFiscalYearRequest{Name: "FY 2024-25", StartDate: "2024-04-01", EndDate: "2025-03-31"}, suite.userID)

	suite.Require().NoError(err)
	suite.True(fy.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestCreateFiscalYear_LaterYearIsInactive() {
	ctx := context.Background()
	suite.mockRepo.On("FindOverlapping", ctx, mock.Anything, mock.Anything).Return([]domain.FiscalYear{}, nil).Once()
	suite.mockRepo.On("ListFiscalYears", ctx).Return([]domain.FiscalYear{suite.fy2024}, nil).Once()
	suite.mockRepo.On("SaveFiscalYear", ctx, mock.MatchedBy(func(fy domain.FiscalYear) bool {
		return !fy.IsActive
	})).Return(&domain.FiscalYear{FiscalYearID: 2, Name: "FY 2025-26"}, nil).Once()

	fy, err := suite.service.CreateFiscalYear(ctx, dto.CreateFiscalYearRequest{Name: "FY 2025-26", StartDate: "2025-04-01", EndDate: "2026-03-31"}, suite.userID)

	suite.Require().NoError(err)
	suite.False(fy.IsActive)
}

func (suite *FiscalYearServiceTestSuite) TestCreateFiscalYear_Overlap() {
	ctx := context.Background()
	suite.mockRepo.On("FindOverlapping", ctx, mock.Anything, mock.Anything).Return([]domain.FiscalYear{suite.fy2024}, nil).Once()

	_, err := suite.service.CreateFiscalYear(ctx, dto.CreateFiscalYearRequest{Name: "Overlap", StartDate: "2025-01-01", EndDate: "2025-12-31"}, suite.userID)

	suite.Require().Error(err)
	var overlap *apperrors.FiscalYearOverlapError
	suite.Require().ErrorAs(err, &overlap)
	suite.Equal("FY 2024-25", overlap.Conflicting)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveFiscalYear", mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestCreateFiscalYear_StartNotBeforeEnd() {
	tests := []dto.CreateFiscalYearRequest{
		{Name: "Backwards", StartDate: "2025-03-31", EndDate: "2024-04-01"},
		{Name: "Single day", StartDate: "2024-04-01", EndDate: "2024-04-01"},
		{Name: "Bad date", StartDate: "2024/04/01", EndDate: "2025-03-31"},
		{Name: " ", StartDate: "2024-04-01", EndDate: "2025-03-31"},
	}
	for _, req := range tests {
		_, err := suite.service.CreateFiscalYear(context.Background(), req, suite.userID)
		suite.ErrorIs(err, apperrors.ErrValidation, req.Name)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "FindOverlapping", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestActivateFiscalYear() {
	ctx := context.Background()
	inactive := domain.FiscalYear{FiscalYearID: 2, Name: "FY 2025-26"}
	active := inactive
	active.IsActive = true

	suite.mockRepo.On("FindFiscalYearByID", ctx, int64(2)).Return(&inactive, nil).Once()
	suite.mockRepo.On("ActivateFiscalYear", ctx, int64(2), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("FindFiscalYearByID", ctx, int64(2)).Return(&active, nil).Once()

	fy, err := suite.service.ActivateFiscalYear(ctx, 2, suite.userID)

	suite.Require().NoError(err)
	suite.True(fy.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestActivateFiscalYear_Locked() {
	ctx := context.Background()
	locked := domain.FiscalYear{FiscalYearID: 3, Name: "FY 2023-24", IsLocked: true}
	suite.mockRepo.On("FindFiscalYearByID", ctx, int64(3)).Return(&locked, nil).Once()

	_, err := suite.service.ActivateFiscalYear(ctx, 3, suite.userID)

	suite.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (suite *FiscalYearServiceTestSuite) TestLockFiscalYear() {
	ctx := context.Background()
	fy := suite.fy2024
	locked := suite.fy2024
	locked.IsLocked = true

	suite.mockRepo.On("FindFiscalYearByID", ctx, int64(1)).Return(&fy, nil).Once()
	suite.mockRepo.On("LockFiscalYear", ctx, int64(1), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("FindFiscalYearByID", ctx, int64(1)).Return(&locked, nil).Once()

	got, err := suite.service.LockFiscalYear(ctx, 1, suite.userID)

	suite.Require().NoError(err)
	suite.True(got.IsLocked)
}

func (suite *FiscalYearServiceTestSuite) TestDeleteFiscalYear_Rules() {
	ctx := context.Background()
	active := suite.fy2024
	locked := domain.FiscalYear{FiscalYearID: 3, Name: "FY 2023-24", IsLocked: true}
	open := domain.FiscalYear{FiscalYearID: 4, Name: "FY 2026-27"}

	suite.mockRepo.On("FindFiscalYearByID", ctx, int64(1)).Return(&active, nil).Once()
	suite.mockRepo.On("FindFiscalYearByID", ctx, int64(3)).Return(&locked, nil).Once()
	suite.mockRepo.On("FindFiscalYearByID", ctx, int64(4)).Return(&open, nil).Once()
	suite.mockRepo.On("DeleteFiscalYear", ctx, int64(4)).Return(nil).Once()

	suite.ErrorIs(suite.service.DeleteFiscalYear(ctx, 1, suite.userID), apperrors.ErrBusinessRule)
	suite.ErrorIs(suite.service.DeleteFiscalYear(ctx, 3, suite.userID), apperrors.ErrBusinessRule)
	suite.NoError(suite.service.DeleteFiscalYear(ctx, 4, suite.userID))
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "DeleteFiscalYear", 1)
}

func (suite *FiscalYearServiceTestSuite) TestFindFiscalYearForDate_None() {
	ctx := context.Background()
	date := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.mockRepo.On("FindFiscalYearByDate", ctx, date).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.FindFiscalYearForDate(ctx, date)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "2030-01-01")
}

func TestFiscalYearServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalYearServiceTestSuite))
}
