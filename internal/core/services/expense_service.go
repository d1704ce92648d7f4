package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
	"github.com/aakritisaxena/ExpenseManagement/internal/middleware"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/accounting"
)

const expenseEntityType = "Expense"

// expenseService provides expense lifecycle operations: draft CRUD, segment
// allocation and submission into the approval workflow.
type expenseService struct {
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	segmentRepo    portsrepo.SegmentRepositoryFacade
	departmentRepo portsrepo.DepartmentRepositoryFacade
	currencySvc    portssvc.CurrencyConverterSvc
	auditSvc       portssvc.AuditRecorderSvc
	notifier       portssvc.NotifierSvc
}

// NewExpenseService creates a new expense service.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	segmentRepo portsrepo.SegmentRepositoryFacade,
	departmentRepo portsrepo.DepartmentRepositoryFacade,
	currencySvc portssvc.CurrencyConverterSvc,
	auditSvc portssvc.AuditRecorderSvc,
	notifier portssvc.NotifierSvc,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:    expenseRepo,
		userRepo:       userRepo,
		segmentRepo:    segmentRepo,
		departmentRepo: departmentRepo,
		currencySvc:    currencySvc,
		auditSvc:       auditSvc,
		notifier:       notifier,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseWithAllocations(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.authorizeRead(ctx, expense, requestingUserID); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter, requestingUserID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find requesting user: %w", err)
	}

	// Employees only ever see their own expenses regardless of the filter.
	if requester.Role == domain.RoleEmployee {
		filter.SubmitterID = requestingUserID
	}

	if limit <= 0 {
		limit = 20
	}

	expenses, next, err := s.expenseRepo.ListExpenses(ctx, filter, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, next, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, submitterID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	submitter, err := s.userRepo.FindUserByID(ctx, submitterID)
	if err != nil {
		return nil, fmt.Errorf("failed to find submitter: %w", err)
	}
	if submitter.DepartmentID == "" {
		return nil, fmt.Errorf("%w: submitter is not assigned to a department", apperrors.ErrValidation)
	}

	// The base amount is fixed at capture time; later rate changes never
	// rewrite it.
	baseAmount, err := s.currencySvc.ConvertToBase(ctx, req.Amount, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:               uuid.NewString(),
		SubmitterID:             submitterID,
		DepartmentID:            submitter.DepartmentID,
		ExpenseDate:             req.ExpenseDate,
		Vendor:                  req.Vendor,
		Description:             req.Description,
		Amount:                  req.Amount,
		CurrencyCode:            req.CurrencyCode,
		BaseAmount:              baseAmount,
		Status:                  domain.ExpenseDraft,
		RequiresFinanceApproval: req.RequiresFinanceApproval,
		ReceiptURL:              req.ReceiptURL,
		Notes:                   req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     submitterID,
			LastUpdatedAt: now,
			LastUpdatedBy: submitterID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	if _, err := s.auditSvc.Record(ctx, submitterID, domain.AuditCreate, expenseEntityType, expense.ExpenseID, map[string]any{
		"vendor":     expense.Vendor,
		"amount":     expense.Amount.String(),
		"currency":   expense.CurrencyCode,
		"baseAmount": expense.BaseAmount.String(),
	}); err != nil {
		return nil, err
	}

	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseWithAllocations(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for update: %w", err)
	}

	if err := s.requireMutableBy(expense, requestingUserID); err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if req.ExpenseDate != nil {
		expense.ExpenseDate = *req.ExpenseDate
		changes["expenseDate"] = req.ExpenseDate.Format(time.DateOnly)
	}
	if req.Vendor != nil {
		expense.Vendor = *req.Vendor
		changes["vendor"] = *req.Vendor
	}
	if req.Description != nil {
		expense.Description = *req.Description
		changes["description"] = *req.Description
	}
	if req.RequiresFinanceApproval != nil {
		expense.RequiresFinanceApproval = *req.RequiresFinanceApproval
		changes["requiresFinanceApproval"] = *req.RequiresFinanceApproval
	}
	if req.ReceiptURL != nil {
		expense.ReceiptURL = *req.ReceiptURL
		changes["receiptURL"] = *req.ReceiptURL
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
		changes["notes"] = *req.Notes
	}

	amountChanged := false
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
		changes["amount"] = req.Amount.String()
		amountChanged = true
	}
	if req.CurrencyCode != nil {
		expense.CurrencyCode = *req.CurrencyCode
		changes["currency"] = *req.CurrencyCode
		amountChanged = true
	}
	if amountChanged {
		baseAmount, err := s.currencySvc.ConvertToBase(ctx, expense.Amount, expense.CurrencyCode)
		if err != nil {
			return nil, err
		}
		expense.BaseAmount = baseAmount
		changes["baseAmount"] = baseAmount.String()
	}

	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	// A changed base amount invalidates the derived allocation amounts, so
	// the split is rebuilt against the new base.
	if amountChanged && len(expense.Allocations) > 0 {
		rebuilt := make([]domain.SegmentAllocation, len(expense.Allocations))
		for i, alloc := range expense.Allocations {
			alloc.Amount = accounting.AllocationAmount(expense.BaseAmount, alloc.Percentage)
			alloc.LastUpdatedAt = expense.LastUpdatedAt
			alloc.LastUpdatedBy = requestingUserID
			rebuilt[i] = alloc
		}
		audit := newAuditEntry(requestingUserID, domain.AuditUpdate, expenseEntityType, expenseID, map[string]any{
			"allocationsRecomputed": true,
			"baseAmount":            expense.BaseAmount.String(),
		})
		if err := s.expenseRepo.ReplaceAllocations(ctx, expenseID, rebuilt, audit); err != nil {
			return nil, fmt.Errorf("failed to recompute allocations: %w", err)
		}
		expense.Allocations = rebuilt
	}

	if _, err := s.auditSvc.Record(ctx, requestingUserID, domain.AuditUpdate, expenseEntityType, expenseID, changes); err != nil {
		return nil, err
	}

	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("failed to find expense for deletion: %w", err)
	}

	if err := s.requireMutableBy(expense, requestingUserID); err != nil {
		return err
	}

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if _, err := s.auditSvc.Record(ctx, requestingUserID, domain.AuditDelete, expenseEntityType, expenseID, map[string]any{
		"vendor": expense.Vendor,
		"amount": expense.Amount.String(),
	}); err != nil {
		return err
	}

	return nil
}

// ReplaceAllocations validates the whole allocation set and swaps it in one
// transaction. An empty set clears the split.
func (s *expenseService) ReplaceAllocations(ctx context.Context, expenseID string, req dto.ReplaceAllocationsRequest, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for allocation: %w", err)
	}

	if err := s.requireMutableBy(expense, requestingUserID); err != nil {
		return nil, err
	}

	percentages := make([]decimal.Decimal, len(req.Allocations))
	segmentIDs := make([]string, 0, len(req.Allocations))
	seen := make(map[string]bool, len(req.Allocations))
	for i, in := range req.Allocations {
		percentages[i] = in.Percentage
		if seen[in.SegmentID] {
			return nil, fmt.Errorf("%w: segment %s appears more than once", apperrors.ErrValidation, in.SegmentID)
		}
		seen[in.SegmentID] = true
		segmentIDs = append(segmentIDs, in.SegmentID)
	}

	if err := accounting.ValidateAllocationPercentages(percentages); err != nil {
		return nil, err
	}

	if len(segmentIDs) > 0 {
		segments, err := s.segmentRepo.FindSegmentsByIDs(ctx, segmentIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load segments: %w", err)
		}
		for _, id := range segmentIDs {
			segment, ok := segments[id]
			if !ok {
				return nil, fmt.Errorf("%w: segment %s not found", apperrors.ErrValidation, id)
			}
			if !segment.IsActive {
				return nil, fmt.Errorf("%w: segment %s is inactive", apperrors.ErrValidation, id)
			}
		}
	}

	now := time.Now()
	allocations := make([]domain.SegmentAllocation, len(req.Allocations))
	for i, in := range req.Allocations {
		allocations[i] = domain.SegmentAllocation{
			AllocationID: uuid.NewString(),
			ExpenseID:    expenseID,
			SegmentID:    in.SegmentID,
			Percentage:   in.Percentage,
			Amount:       accounting.AllocationAmount(expense.BaseAmount, in.Percentage),
			Notes:        in.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
	}

	audit := newAuditEntry(requestingUserID, domain.AuditUpdate, expenseEntityType, expenseID, map[string]any{
		"allocationCount": len(allocations),
	})
	if err := s.expenseRepo.ReplaceAllocations(ctx, expenseID, allocations, audit); err != nil {
		return nil, fmt.Errorf("failed to replace allocations: %w", err)
	}

	expense.Allocations = allocations
	return expense, nil
}

// SubmitExpense transitions a draft to SUBMITTED, creating the full approval
// chain up front: the department manager at level 1 and, when the expense
// requires finance approval, a finance admin at level 2.
func (s *expenseService) SubmitExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseWithAllocations(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for submission: %w", err)
	}

	if expense.SubmitterID != requestingUserID {
		return nil, fmt.Errorf("%w: only the submitter may submit the expense", apperrors.ErrForbidden)
	}
	if expense.Status != domain.ExpenseDraft {
		return nil, fmt.Errorf("%w: expense is %s, only drafts can be submitted", apperrors.ErrInvalidTransition, expense.Status)
	}

	// The allocation set may have been left half-edited since the last
	// replace, so it is checked again on the submit boundary.
	percentages := make([]decimal.Decimal, len(expense.Allocations))
	for i, alloc := range expense.Allocations {
		percentages[i] = alloc.Percentage
	}
	if err := accounting.ValidateAllocationPercentages(percentages); err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.FindDepartmentByID(ctx, expense.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense department: %w", err)
	}
	if department.ManagerID == "" {
		return nil, fmt.Errorf("%w: department %s has no manager to approve expenses", apperrors.ErrValidation, department.Name)
	}

	now := time.Now()
	approvals := []domain.Approval{
		{
			ApprovalID: uuid.NewString(),
			ExpenseID:  expenseID,
			ApproverID: department.ManagerID,
			Level:      domain.ApprovalLevelManager,
			Decision:   domain.ApprovalPending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		},
	}

	if expense.RequiresFinanceApproval {
		financeAdmin, err := s.userRepo.FindFirstActiveByRole(ctx, domain.RoleFinanceAdmin)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no active finance admin available for level 2 approval", apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to find finance admin: %w", err)
		}
		approvals = append(approvals, domain.Approval{
			ApprovalID: uuid.NewString(),
			ExpenseID:  expenseID,
			ApproverID: financeAdmin.UserID,
			Level:      domain.ApprovalLevelFinance,
			Decision:   domain.ApprovalPending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		})
	}

	expense.Status = domain.ExpenseSubmitted
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = requestingUserID

	audit := newAuditEntry(requestingUserID, domain.AuditSubmit, expenseEntityType, expenseID, map[string]any{
		"approvalLevels": len(approvals),
		"baseAmount":     expense.BaseAmount.String(),
	})
	if err := s.expenseRepo.SubmitExpense(ctx, *expense, approvals, audit); err != nil {
		return nil, fmt.Errorf("failed to submit expense: %w", err)
	}

	logger.Info("Expense submitted for approval",
		slog.String("expense_id", expenseID),
		slog.Int("approval_levels", len(approvals)),
	)

	s.notifier.Notify(ctx, department.ManagerID, domain.NotifyExpenseSubmitted,
		"Expense awaiting your approval",
		fmt.Sprintf("%s submitted an expense of %s %s from %s.", expense.SubmitterID, expense.Amount.String(), expense.CurrencyCode, expense.Vendor),
		expenseID,
	)

	return expense, nil
}

// authorizeRead enforces expense visibility: submitters see their own,
// managers, finance admins and auditors see all.
func (s *expenseService) authorizeRead(ctx context.Context, expense *domain.Expense, requestingUserID string) error {
	if expense.SubmitterID == requestingUserID {
		return nil
	}
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return fmt.Errorf("failed to find requesting user: %w", err)
	}
	if requester.Role == domain.RoleEmployee {
		return fmt.Errorf("%w: expense belongs to another user", apperrors.ErrForbidden)
	}
	return nil
}

// requireMutableBy enforces the draft-only mutation rule.
func (s *expenseService) requireMutableBy(expense *domain.Expense, requestingUserID string) error {
	if expense.SubmitterID != requestingUserID {
		return fmt.Errorf("%w: only the submitter may modify the expense", apperrors.ErrForbidden)
	}
	if expense.Status != domain.ExpenseDraft {
		return fmt.Errorf("%w: expense is %s, only drafts can be modified", apperrors.ErrInvalidTransition, expense.Status)
	}
	return nil
}
