package services

import (
	"context"
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
	"github.com/shopspring/decimal"
)

// BudgetReaderSvc defines read operations for budgets and the ledger.
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves a budget by ID.
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves all budgets.
	ListBudgets(ctx context.Context) ([]domain.Budget, error)

	// GetSpentAmount computes the amount consumed against a budget from
	// approved expenses in its period.
	GetSpentAmount(ctx context.Context, budget *domain.Budget) (decimal.Decimal, error)

	// GetBudgetStatus computes the full derived view: spent, remaining,
	// percentage used and whether the alert threshold is crossed.
	GetBudgetStatus(ctx context.Context, budgetID string) (*domain.BudgetStatus, error)
}

// BudgetWriterSvc defines write operations for budget data
type BudgetWriterSvc interface {
	// CreateBudget creates a budget scoped to exactly one of segment or
	// department.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error)

	// UpdateBudget updates an existing budget.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, requestingUserID string) (*domain.Budget, error)

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, budgetID string, requestingUserID string) error
}

// BudgetAlertSvc checks budgets affected by an expense and emits alerts.
type BudgetAlertSvc interface {
	// CheckAlertsForExpense evaluates every budget whose scope and period
	// cover the expense and notifies (best-effort) on threshold crossings.
	CheckAlertsForExpense(ctx context.Context, expense *domain.Expense, at time.Time)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
	BudgetAlertSvc
}
