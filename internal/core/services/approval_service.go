package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
	"github.com/aakritisaxena/ExpenseManagement/internal/middleware"
)

// approvalService drives the multi-level approval workflow. Decisions are
// recorded strictly in level order: the lowest pending level is always the
// one being decided.
type approvalService struct {
	approvalRepo portsrepo.ApprovalRepositoryFacade
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	notifier     portssvc.NotifierSvc
	budgetAlerts portssvc.BudgetAlertSvc
}

// NewApprovalService creates a new approval service.
func NewApprovalService(
	approvalRepo portsrepo.ApprovalRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	notifier portssvc.NotifierSvc,
	budgetAlerts portssvc.BudgetAlertSvc,
) portssvc.ApprovalSvcFacade {
	return &approvalService{
		approvalRepo: approvalRepo,
		expenseRepo:  expenseRepo,
		notifier:     notifier,
		budgetAlerts: budgetAlerts,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

func (s *approvalService) GetApprovalsForExpense(ctx context.Context, expenseID string) ([]domain.Approval, error) {
	approvals, err := s.approvalRepo.FindApprovalsByExpenseID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get approvals: %w", err)
	}
	if approvals == nil {
		approvals = []domain.Approval{}
	}
	return approvals, nil
}

func (s *approvalService) ListPendingApprovals(ctx context.Context, approverID string) ([]domain.Approval, error) {
	approvals, err := s.approvalRepo.ListPendingApprovalsForApprover(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	if approvals == nil {
		approvals = []domain.Approval{}
	}
	return approvals, nil
}

// Decide records the approver's decision on the expense's lowest pending
// approval level. A rejection at any level is terminal; an approval advances
// to the next level, or approves the expense when no level remains.
func (s *approvalService) Decide(ctx context.Context, expenseID string, approverID string, req dto.DecideApprovalRequest) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseWithAllocations(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for decision: %w", err)
	}
	if expense.Status != domain.ExpenseSubmitted {
		return nil, fmt.Errorf("%w: expense is %s, decisions only apply to submitted expenses", apperrors.ErrInvalidTransition, expense.Status)
	}

	approvals, err := s.approvalRepo.FindApprovalsByExpenseID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load approval chain: %w", err)
	}

	// Approvals come back ordered by level ascending; the first pending one
	// is the level being decided.
	var pending *domain.Approval
	pendingRemain := 0
	for i := range approvals {
		if approvals[i].Decision == domain.ApprovalPending {
			if pending == nil {
				pending = &approvals[i]
			}
			pendingRemain++
		}
	}
	if pending == nil {
		return nil, fmt.Errorf("%w: the approval chain is already fully decided", apperrors.ErrInvalidTransition)
	}
	if pending.ApproverID != approverID {
		logger.Warn("Decision refused: actor does not hold the pending approval",
			slog.String("expense_id", expenseID),
			slog.Int("pending_level", pending.Level),
		)
		return nil, fmt.Errorf("%w: the pending level %d approval belongs to another approver", apperrors.ErrNotAuthorized, pending.Level)
	}

	decision := domain.ApprovalDecision(req.Decision)

	newStatus := domain.ExpenseSubmitted
	auditAction := domain.AuditApprove
	switch decision {
	case domain.ApprovalRejected:
		newStatus = domain.ExpenseRejected
		auditAction = domain.AuditReject
	case domain.ApprovalApproved:
		if pendingRemain == 1 {
			newStatus = domain.ExpenseApproved
		}
	default:
		return nil, fmt.Errorf("%w: decision must be APPROVED or REJECTED", apperrors.ErrValidation)
	}

	now := time.Now()
	decided := *pending
	decided.Decision = decision
	decided.Comments = req.Comments
	decided.DecidedAt = &now
	decided.LastUpdatedAt = now
	decided.LastUpdatedBy = approverID

	audit := newAuditEntry(approverID, auditAction, expenseEntityType, expenseID, map[string]any{
		"level":     decided.Level,
		"decision":  string(decision),
		"newStatus": string(newStatus),
	})

	if err := s.approvalRepo.RecordDecision(ctx, decided, newStatus, audit); err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}
	expense.Status = newStatus

	s.notifyDecision(ctx, expense, &decided, approvals, newStatus)

	// Budget consumption changes only when the expense reaches APPROVED.
	if newStatus == domain.ExpenseApproved {
		s.budgetAlerts.CheckAlertsForExpense(ctx, expense, expense.ExpenseDate)
	}

	return expense, nil
}

// notifyDecision fans out best-effort notifications after a recorded decision.
func (s *approvalService) notifyDecision(ctx context.Context, expense *domain.Expense, decided *domain.Approval, approvals []domain.Approval, newStatus domain.ExpenseStatus) {
	switch newStatus {
	case domain.ExpenseApproved:
		s.notifier.Notify(ctx, expense.SubmitterID, domain.NotifyExpenseApproved,
			"Expense approved",
			fmt.Sprintf("Your expense from %s for %s %s was approved.", expense.Vendor, expense.Amount.String(), expense.CurrencyCode),
			expense.ExpenseID,
		)
	case domain.ExpenseRejected:
		s.notifier.Notify(ctx, expense.SubmitterID, domain.NotifyExpenseRejected,
			"Expense rejected",
			fmt.Sprintf("Your expense from %s for %s %s was rejected at level %d.", expense.Vendor, expense.Amount.String(), expense.CurrencyCode, decided.Level),
			expense.ExpenseID,
		)
	default:
		// Intermediate approval: hand off to the next pending level.
		for i := range approvals {
			if approvals[i].Level > decided.Level && approvals[i].Decision == domain.ApprovalPending {
				s.notifier.Notify(ctx, approvals[i].ApproverID, domain.NotifyExpenseSubmitted,
					"Expense awaiting your approval",
					fmt.Sprintf("An expense from %s for %s %s passed level %d and awaits your decision.", expense.Vendor, expense.Amount.String(), expense.CurrencyCode, decided.Level),
					expense.ExpenseID,
				)
				return
			}
		}
	}
}
