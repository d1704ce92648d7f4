package domain

import "github.com/shopspring/decimal"

// Currency represents a supported currency and its conversion rate into the
// organization's base (reporting) currency.
type Currency struct {
	CurrencyCode string          `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name         string          `json:"name"`         // e.g., "US Dollar"
	Symbol       string          `json:"symbol"`       // e.g., "$"
	RateToBase   decimal.Decimal `json:"rateToBase"`   // Positive; 1.0 for the base currency
	IsBase       bool            `json:"isBase"`
	AuditFields
}
