package services

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// UpdateCurrencyRate updates a currency's rate to the base currency.
	UpdateCurrencyRate(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRateRequest, requestingUserID string) (*domain.Currency, error)
}

// CurrencyConverterSvc converts amounts into the base currency.
type CurrencyConverterSvc interface {
	// ConvertToBase converts an amount of the given currency into the base
	// currency using the currency's stored rate, rounded to 2 decimal places.
	ConvertToBase(ctx context.Context, amount decimal.Decimal, currencyCode string) (decimal.Decimal, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
	CurrencyConverterSvc
}
