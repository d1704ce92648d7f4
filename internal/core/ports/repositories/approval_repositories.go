package repositories

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// ApprovalReader defines read operations for approval data
type ApprovalReader interface {
	// FindApprovalsByExpenseID retrieves the approval chain of one expense,
	// ordered by level ascending.
	FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error)

	// ListPendingApprovalsForApprover retrieves approvals awaiting a user's
	// decision.
	ListPendingApprovalsForApprover(ctx context.Context, approverID string) ([]domain.Approval, error)
}

// ApprovalWriter defines write operations for approval data
type ApprovalWriter interface {
	// RecordDecision persists one approval decision, the resulting expense
	// status, and the audit entry in a single transaction. The approval row
	// is updated only while still PENDING and the expense only while still
	// SUBMITTED; losing either guard fails with ErrInvalidTransition, which
	// keeps concurrent decisions at one level to at most one winner.
	RecordDecision(ctx context.Context, approval domain.Approval, newStatus domain.ExpenseStatus, audit domain.AuditLog) error
}

// ApprovalRepositoryFacade combines all approval-related repository interfaces
type ApprovalRepositoryFacade interface {
	ApprovalReader
	ApprovalWriter
}

// ApprovalRepositoryWithTx extends ApprovalRepositoryFacade with transaction capabilities
type ApprovalRepositoryWithTx interface {
	ApprovalRepositoryFacade
	TransactionManager
}
