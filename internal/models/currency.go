package models

import "github.com/shopspring/decimal"

// Currency is the persistence model for currencies.
type Currency struct {
	CurrencyCode string          `db:"currency_code"`
	Name         string          `db:"name"`
	Symbol       string          `db:"symbol"`
	RateToBase   decimal.Decimal `db:"rate_to_base"`
	IsBase       bool            `db:"is_base"`
	AuditFields
}
