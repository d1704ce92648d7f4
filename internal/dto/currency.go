package dto

import (
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,uppercase,len=3"`
	Name         string          `json:"name" binding:"required"`
	Symbol       string          `json:"symbol" binding:"required"`
	RateToBase   decimal.Decimal `json:"rateToBase" binding:"required"`
	IsBase       bool            `json:"isBase"`
}

// UpdateCurrencyRateRequest updates a currency's conversion rate.
type UpdateCurrencyRateRequest struct {
	RateToBase decimal.Decimal `json:"rateToBase" binding:"required"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string          `json:"currencyCode"`
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	RateToBase    decimal.Decimal `json:"rateToBase"`
	IsBase        bool            `json:"isBase"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  c.CurrencyCode,
		Name:          c.Name,
		Symbol:        c.Symbol,
		RateToBase:    c.RateToBase,
		IsBase:        c.IsBase,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListCurrencyResponse converts domain Currencies to DTOs
func ToListCurrencyResponse(cs []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(cs))
	for i := range cs {
		res[i] = ToCurrencyResponse(&cs[i])
	}
	return res
}
