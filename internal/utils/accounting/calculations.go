package accounting

import (
	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ConvertToBase converts an amount in a source currency into the base
// currency using the given rate, rounded half-up to 2 decimal places.
// Pure; fails with ErrInvalidRate when the rate is zero or negative.
func ConvertToBase(amount, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, apperrors.ErrInvalidRate
	}
	return amount.Mul(rate).Round(2), nil
}

// ValidateAllocationPercentages checks a whole allocation percentage set for
// one expense. An empty set is valid (the expense is not yet split). Each
// percentage must lie in (0, 100]; a non-empty set must sum to exactly 100.
// Validation runs on the save boundary of the whole set, never per row, so
// partial sets in progress are not rejected prematurely.
func ValidateAllocationPercentages(percentages []decimal.Decimal) error {
	if len(percentages) == 0 {
		return nil
	}

	sum := decimal.Zero
	for _, p := range percentages {
		if p.LessThanOrEqual(decimal.Zero) || p.GreaterThan(hundred) {
			return apperrors.ErrInvalidPercentage
		}
		sum = sum.Add(p)
	}

	if !sum.Equal(hundred) {
		return &apperrors.AllocationSumError{ActualSum: sum}
	}
	return nil
}

// AllocationAmount derives the amount one allocation carves out of an
// expense: baseAmount * percentage / 100, rounded half-up to 2 decimal places.
func AllocationAmount(baseAmount, percentage decimal.Decimal) decimal.Decimal {
	return baseAmount.Mul(percentage).Div(hundred).Round(2)
}
