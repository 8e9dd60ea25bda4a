package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/core/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var configDefaults = domain.Precision{AmountDecimals: 2, QuantityDecimals: 3, RateDecimals: 6}

func TestSettingsService_GetPrecisionFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	repo.On("GetPrecision", ctx).Return(nil, apperrors.ErrNotFound).Once()

	p, err := services.NewSettingsService(repo, configDefaults).GetPrecision(ctx)

	require.NoError(t, err)
	assert.Equal(t, configDefaults, p)
}

func TestSettingsService_GetPrecisionStored(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	stored := domain.Precision{AmountDecimals: 3, QuantityDecimals: 2, RateDecimals: 4}
	repo.On("GetPrecision", ctx).Return(&stored, nil).Once()

	p, err := services.NewSettingsService(repo, configDefaults).GetPrecision(ctx)

	require.NoError(t, err)
	assert.Equal(t, stored, p)
}

func TestSettingsService_GetPrecisionError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	repo.On("GetPrecision", ctx).Return(nil, assert.AnError).Once()

	_, err := services.NewSettingsService(repo, configDefaults).GetPrecision(ctx)

	assert.ErrorIs(t, err, assert.AnError)
}

func TestSettingsService_UpdatePrecisionMergesFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	repo.On("GetPrecision", ctx).Return(nil, apperrors.ErrNotFound).Once()
	want := domain.Precision{AmountDecimals: 4, QuantityDecimals: 3, RateDecimals: 6}
	repo.On("SavePrecision", ctx, want, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	amount := int32(4)
	p, err := services.NewSettingsService(repo, configDefaults).UpdatePrecision(ctx, dto.UpdatePrecisionRequest{AmountDecimals: &amount}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, want, p)
	repo.AssertExpectations(t)
}

func TestSettingsService_UpdatePrecisionOutOfRange(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	repo.On("GetPrecision", ctx).Return(nil, apperrors.ErrNotFound).Once()

	rate := int32(9)
	_, err := services.NewSettingsService(repo, configDefaults).UpdatePrecision(ctx, dto.UpdatePrecisionRequest{RateDecimals: &rate}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "SavePrecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
