package repositories

import (
	"context"
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a budget by ID.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves all budgets.
	ListBudgets(ctx context.Context) ([]domain.Budget, error)

	// FindBudgetsForSegment retrieves budgets scoped to a segment whose
	// period contains the given date.
	FindBudgetsForSegment(ctx context.Context, segmentID string, at time.Time) ([]domain.Budget, error)

	// FindBudgetsForDepartment retrieves budgets scoped to a department whose
	// period contains the given date.
	FindBudgetsForDepartment(ctx context.Context, departmentID string, at time.Time) ([]domain.Budget, error)
}

// BudgetAggregator runs the spent-amount aggregate queries for the ledger.
type BudgetAggregator interface {
	// SumSegmentAllocations sums allocation amounts for a segment over
	// approved expenses dated within [from, to].
	SumSegmentAllocations(ctx context.Context, segmentID string, from, to time.Time) (decimal.Decimal, error)

	// SumDepartmentExpenses sums base amounts of approved expenses for a
	// department dated within [from, to].
	SumDepartmentExpenses(ctx context.Context, departmentID string, from, to time.Time) (decimal.Decimal, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates an existing budget.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, budgetID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetAggregator
	BudgetWriter
}
