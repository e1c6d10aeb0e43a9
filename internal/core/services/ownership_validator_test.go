package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/psoares/finsync/internal/codec"
	"github.com/psoares/finsync/internal/core/domain"
	"github.com/psoares/finsync/internal/core/services"
)

func TestOwnershipValidator_TableWithoutFKsIsTriviallyValid(t *testing.T) {
	ownership := new(MockOwnershipReader)
	v := services.NewOwnershipValidator(ownership)

	result, err := v.Validate(context.Background(), domain.TableBanks, codec.Record{"name": "Caixa"}, 1)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	ownership.AssertNotCalled(t, "FindOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestOwnershipValidator_NullFKIsValid(t *testing.T) {
	ownership := new(MockOwnershipReader)
	v := services.NewOwnershipValidator(ownership)
	ctx := context.Background()

	// typeId present and owned, categoryId explicitly null
	ownership.On("FindOwner", ctx, domain.TableAccountTypes, int64(3)).Return(int64(1), true, nil).Once()

	result, err := v.Validate(ctx, domain.TableAccounts, codec.Record{
		"typeId":     float64(3),
		"categoryId": nil,
	}, 1)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	ownership.AssertExpectations(t)
}

func TestOwnershipValidator_CamelAndSnakeCaseKeys(t *testing.T) {
	ownership := new(MockOwnershipReader)
	v := services.NewOwnershipValidator(ownership)
	ctx := context.Background()

	ownership.On("FindOwner", ctx, domain.TableAccountTypes, int64(3)).Return(int64(1), true, nil).Twice()

	for _, rec := range []codec.Record{
		{"typeId": float64(3)},
		{"type_id": float64(3)},
	} {
		result, err := v.Validate(ctx, domain.TableAccounts, rec, 1)
		require.NoError(t, err)
		assert.True(t, result.Valid)
	}
	ownership.AssertExpectations(t)
}

func TestOwnershipValidator_MissingReference(t *testing.T) {
	ownership := new(MockOwnershipReader)
	v := services.NewOwnershipValidator(ownership)
	ctx := context.Background()

	ownership.On("FindOwner", ctx, domain.TableAccounts, int64(50)).Return(int64(0), false, nil).Once()

	result, err := v.Validate(ctx, domain.TablePayments, codec.Record{"account_id": float64(50)}, 1)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"account_id=50 not found"}, result.Errors)
}

func TestOwnershipValidator_CrossTenantReference(t *testing.T) {
	ownership := new(MockOwnershipReader)
	v := services.NewOwnershipValidator(ownership)
	ctx := context.Background()

	ownership.On("FindOwner", ctx, domain.TableAccounts, int64(50)).Return(int64(2), true, nil).Once()
	ownership.On("FindOwner", ctx, domain.TablePaymentMethods, int64(4)).Return(int64(1), true, nil).Once()

	result, err := v.Validate(ctx, domain.TablePayments, codec.Record{
		"account_id":        float64(50),
		"payment_method_id": float64(4),
	}, 1)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"account_id=50 does not belong to user"}, result.Errors)
}

func TestOwnershipValidator_InfraErrorPropagates(t *testing.T) {
	ownership := new(MockOwnershipReader)
	v := services.NewOwnershipValidator(ownership)
	ctx := context.Background()

	ownership.On("FindOwner", ctx, domain.TableAccounts, int64(50)).Return(int64(0), false, assert.AnError).Once()

	_, err := v.Validate(ctx, domain.TablePayments, codec.Record{"account_id": float64(50)}, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
