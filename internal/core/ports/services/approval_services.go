package services

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
)

// ApprovalReaderSvc defines read operations for approval data
type ApprovalReaderSvc interface {
	// GetApprovalsForExpense retrieves an expense's approval chain, level
	// ascending.
	GetApprovalsForExpense(ctx context.Context, expenseID string) ([]domain.Approval, error)

	// ListPendingApprovals retrieves approvals awaiting the user's decision.
	ListPendingApprovals(ctx context.Context, approverID string) ([]domain.Approval, error)
}

// ApprovalDeciderSvc records approval decisions.
type ApprovalDeciderSvc interface {
	// Decide records the approver's decision on an expense's current pending
	// approval level. Fails with ErrNotAuthorized when the approver does not
	// hold the pending approval, and with ErrInvalidTransition when the
	// expense is not SUBMITTED or the level is already decided.
	Decide(ctx context.Context, expenseID string, approverID string, req dto.DecideApprovalRequest) (*domain.Expense, error)
}

// ApprovalSvcFacade combines all approval-related service interfaces
type ApprovalSvcFacade interface {
	ApprovalReaderSvc
	ApprovalDeciderSvc
}
