package accounting_test

import (
	"errors"
	"testing"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestConvertToBase(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		rate    string
		want    string
		wantErr error
	}{
		{name: "identity rate", amount: "1000", rate: "1", want: "1000"},
		{name: "fractional rate rounds to 2dp", amount: "100", rate: "0.856789", want: "85.68"},
		{name: "half rounds up", amount: "10.05", rate: "0.5", want: "5.03"},
		{name: "zero rate", amount: "100", rate: "0", wantErr: apperrors.ErrInvalidRate},
		{name: "negative rate", amount: "100", rate: "-1.2", wantErr: apperrors.ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.ConvertToBase(dec(tt.amount), dec(tt.rate))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestValidateAllocationPercentages(t *testing.T) {
	t.Run("empty set is valid", func(t *testing.T) {
		assert.NoError(t, accounting.ValidateAllocationPercentages(nil))
	})

	t.Run("sum of exactly 100 is valid", func(t *testing.T) {
		err := accounting.ValidateAllocationPercentages([]decimal.Decimal{dec("30"), dec("70")})
		assert.NoError(t, err)
	})

	t.Run("single full allocation is valid", func(t *testing.T) {
		err := accounting.ValidateAllocationPercentages([]decimal.Decimal{dec("100")})
		assert.NoError(t, err)
	})

	t.Run("fractional percentages summing to 100 are valid", func(t *testing.T) {
		err := accounting.ValidateAllocationPercentages([]decimal.Decimal{dec("33.33"), dec("33.33"), dec("33.34")})
		assert.NoError(t, err)
	})

	t.Run("sum below 100 fails with the actual sum", func(t *testing.T) {
		err := accounting.ValidateAllocationPercentages([]decimal.Decimal{dec("30"), dec("60")})
		var sumErr *apperrors.AllocationSumError
		require.True(t, errors.As(err, &sumErr))
		assert.True(t, sumErr.ActualSum.Equal(dec("90")))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("sum above 100 fails", func(t *testing.T) {
		err := accounting.ValidateAllocationPercentages([]decimal.Decimal{dec("60"), dec("60")})
		var sumErr *apperrors.AllocationSumError
		require.True(t, errors.As(err, &sumErr))
		assert.True(t, sumErr.ActualSum.Equal(dec("120")))
	})

	t.Run("zero percentage fails before the sum check", func(t *testing.T) {
		err := accounting.ValidateAllocationPercentages([]decimal.Decimal{dec("0"), dec("100")})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPercentage)
	})

	t.Run("negative percentage fails", func(t *testing.T) {
		err := accounting.ValidateAllocationPercentages([]decimal.Decimal{dec("-10"), dec("110")})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPercentage)
	})

	t.Run("percentage above 100 fails", func(t *testing.T) {
		err := accounting.ValidateAllocationPercentages([]decimal.Decimal{dec("100.01")})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPercentage)
	})
}

func TestAllocationAmount(t *testing.T) {
	// Expense of 1000 split Travel 30% / Meals 70%.
	assert.True(t, accounting.AllocationAmount(dec("1000"), dec("30")).Equal(dec("300")))
	assert.True(t, accounting.AllocationAmount(dec("1000"), dec("70")).Equal(dec("700")))
	// Thirds round to cents.
	assert.True(t, accounting.AllocationAmount(dec("100"), dec("33.33")).Equal(dec("33.33")))
	assert.True(t, accounting.AllocationAmount(dec("0.01"), dec("50")).Equal(dec("0.01")))
}
