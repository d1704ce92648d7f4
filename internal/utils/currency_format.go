package utils

import (
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount formats an amount with its currency symbol at 2 decimal places.
// Example: amount 12.3456 with USD returns "$12.35".
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	return currency.Symbol + amount.Round(2).StringFixed(2)
}

// FormatBaseAmount formats a base-currency amount at 2 decimal places without
// a symbol, for messages where the base currency is implied.
func FormatBaseAmount(amount decimal.Decimal) string {
	return amount.Round(2).StringFixed(2)
}
