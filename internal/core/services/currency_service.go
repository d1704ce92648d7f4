package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/accounting"
)

// currencyService provides currency management and base-currency conversion.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if len(currencyCode) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		currencies = []domain.Currency{}
	}
	return currencies, nil
}

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	if req.RateToBase.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate to base must be positive", apperrors.ErrInvalidRate)
	}
	if req.IsBase && !req.RateToBase.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: the base currency must have a rate of exactly 1", apperrors.ErrValidation)
	}

	now := time.Now()
	currency := domain.Currency{
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Name:         req.Name,
		Symbol:       req.Symbol,
		RateToBase:   req.RateToBase,
		IsBase:       req.IsBase,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	return &currency, nil
}

func (s *currencyService) UpdateCurrencyRate(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRateRequest, requestingUserID string) (*domain.Currency, error) {
	if req.RateToBase.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate to base must be positive", apperrors.ErrInvalidRate)
	}

	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}

	if currency.IsBase && !req.RateToBase.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: the base currency rate is fixed at 1", apperrors.ErrValidation)
	}

	currency.RateToBase = req.RateToBase
	currency.LastUpdatedAt = time.Now()
	currency.LastUpdatedBy = requestingUserID

	if err := s.currencyRepo.UpdateCurrencyRate(ctx, *currency); err != nil {
		return nil, fmt.Errorf("failed to update currency rate: %w", err)
	}

	return currency, nil
}

// ConvertToBase converts an amount of the given currency into the base
// currency using the stored rate. Rate changes never rewrite stored base
// amounts; conversion happens once, when the expense is captured.
func (s *currencyService) ConvertToBase(ctx context.Context, amount decimal.Decimal, currencyCode string) (decimal.Decimal, error) {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return decimal.Zero, err
	}

	converted, err := accounting.ConvertToBase(amount, currency.RateToBase)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to convert %s %s to base: %w", amount.String(), currencyCode, err)
	}
	return converted, nil
}
