package services

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense with its allocations. Submitters
	// see their own expenses; managers, finance admins and auditors see all.
	GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses visible to the requesting user.
	ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter, requestingUserID string, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense creates a new draft expense for the submitter, deriving
	// the base-currency amount.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, submitterID string) (*domain.Expense, error)

	// UpdateExpense updates a draft expense. Only the submitter may update,
	// and only while the expense is in DRAFT.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// DeleteExpense removes a draft expense owned by the requesting user.
	DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error

	// ReplaceAllocations validates and swaps the whole allocation set of a
	// draft expense.
	ReplaceAllocations(ctx context.Context, expenseID string, req dto.ReplaceAllocationsRequest, requestingUserID string) (*domain.Expense, error)
}

// ExpenseWorkflowSvc defines the submit transition of the approval workflow.
type ExpenseWorkflowSvc interface {
	// SubmitExpense transitions a draft expense to SUBMITTED, creating its
	// approval chain and notifying the approvers.
	SubmitExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	ExpenseWorkflowSvc
}
