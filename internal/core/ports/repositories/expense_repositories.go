package repositories

import (
	"context"
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// ExpenseListFilter narrows expense listings.
type ExpenseListFilter struct {
	SubmitterID  string
	DepartmentID string
	Status       domain.ExpenseStatus
	DateFrom     *time.Time
	DateTo       *time.Time
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by ID, without allocations.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// FindExpenseWithAllocations retrieves an expense with its allocation set.
	FindExpenseWithAllocations(ctx context.Context, expenseID string) (*domain.Expense, error)

	// FindAllocationsByExpenseID retrieves the allocation set of one expense.
	FindAllocationsByExpenseID(ctx context.Context, expenseID string) ([]domain.SegmentAllocation, error)

	// ListExpenses retrieves expenses matching the filter with keyset
	// pagination, newest expense date first.
	ListExpenses(ctx context.Context, filter ExpenseListFilter, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense updates a draft expense's mutable fields.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense removes an expense and its allocations.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ReplaceAllocations swaps the whole allocation set of one expense in a
	// single transaction. The expense row is locked for the duration so
	// concurrent replacements for the same expense serialize.
	ReplaceAllocations(ctx context.Context, expenseID string, allocations []domain.SegmentAllocation, audit domain.AuditLog) error

	// SubmitExpense transitions an expense from DRAFT to SUBMITTED, creating
	// its approval chain and the audit entry in one transaction. The status
	// is re-checked under a row lock; a non-DRAFT expense fails with
	// ErrInvalidTransition.
	SubmitExpense(ctx context.Context, expense domain.Expense, approvals []domain.Approval, audit domain.AuditLog) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

// ExpenseRepositoryWithTx extends ExpenseRepositoryFacade with transaction capabilities
type ExpenseRepositoryWithTx interface {
	ExpenseRepositoryFacade
	TransactionManager
}
