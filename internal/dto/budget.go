package dto

import (
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget. Exactly one
// of SegmentID and DepartmentID must be set (checked at service level).
type CreateBudgetRequest struct {
	SegmentID      string           `json:"segmentID" binding:"omitempty,uuid"`
	DepartmentID   string           `json:"departmentID" binding:"omitempty,uuid"`
	PeriodType     string           `json:"periodType" binding:"required,oneof=MONTHLY QUARTERLY YEARLY"`
	StartDate      time.Time        `json:"startDate" binding:"required"`
	EndDate        time.Time        `json:"endDate" binding:"required"`
	LimitAmount    decimal.Decimal  `json:"limitAmount" binding:"required"`
	AlertThreshold *decimal.Decimal `json:"alertThreshold"` // Defaults to 0.8
}

// UpdateBudgetRequest defines the mutable fields of a budget.
type UpdateBudgetRequest struct {
	LimitAmount    *decimal.Decimal `json:"limitAmount"`
	AlertThreshold *decimal.Decimal `json:"alertThreshold"`
	StartDate      *time.Time       `json:"startDate"`
	EndDate        *time.Time       `json:"endDate"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID       string          `json:"budgetID"`
	SegmentID      string          `json:"segmentID,omitempty"`
	DepartmentID   string          `json:"departmentID,omitempty"`
	PeriodType     string          `json:"periodType"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	LimitAmount    decimal.Decimal `json:"limitAmount"`
	AlertThreshold decimal.Decimal `json:"alertThreshold"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// BudgetStatusResponse is the derived consumption view of a budget.
type BudgetStatusResponse struct {
	Budget         BudgetResponse  `json:"budget"`
	SpentAmount    decimal.Decimal `json:"spentAmount"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
	AlertTriggered bool            `json:"alertTriggered"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:       b.BudgetID,
		SegmentID:      b.SegmentID,
		DepartmentID:   b.DepartmentID,
		PeriodType:     string(b.PeriodType),
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		LimitAmount:    b.LimitAmount,
		AlertThreshold: b.AlertThreshold,
		CreatedAt:      b.CreatedAt,
	}
}

// ToBudgetStatusResponse converts a domain.BudgetStatus to its DTO
func ToBudgetStatusResponse(s *domain.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		Budget:         ToBudgetResponse(&s.Budget),
		SpentAmount:    s.SpentAmount,
		Remaining:      s.Remaining,
		PercentageUsed: s.PercentageUsed,
		AlertTriggered: s.AlertTriggered,
	}
}

// ToListBudgetResponse converts domain Budgets to DTOs
func ToListBudgetResponse(bs []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(bs))
	for i := range bs {
		res[i] = ToBudgetResponse(&bs[i])
	}
	return res
}
