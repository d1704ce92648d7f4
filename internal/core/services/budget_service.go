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
)

const budgetEntityType = "Budget"

// defaultAlertThreshold is applied when a budget is created without one.
var defaultAlertThreshold = decimal.NewFromFloat(0.8)

var oneHundred = decimal.NewFromInt(100)

// budgetService manages budgets and derives their consumption from approved
// expenses. The spent amount is never stored: it is recomputed from the
// ledger on every read.
type budgetService struct {
	budgetRepo     portsrepo.BudgetRepositoryFacade
	segmentRepo    portsrepo.SegmentRepositoryFacade
	departmentRepo portsrepo.DepartmentRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	auditSvc       portssvc.AuditRecorderSvc
	notifier       portssvc.NotifierSvc
}

// NewBudgetService creates a new budget service.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	segmentRepo portsrepo.SegmentRepositoryFacade,
	departmentRepo portsrepo.DepartmentRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	auditSvc portssvc.AuditRecorderSvc,
	notifier portssvc.NotifierSvc,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:     budgetRepo,
		segmentRepo:    segmentRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		auditSvc:       auditSvc,
		notifier:       notifier,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}
	return budgets, nil
}

// GetSpentAmount sums approved spending against the budget over its period.
// Segment budgets consume allocation amounts; department budgets consume
// whole base amounts.
func (s *budgetService) GetSpentAmount(ctx context.Context, budget *domain.Budget) (decimal.Decimal, error) {
	if budget.IsSegmentScoped() {
		spent, err := s.budgetRepo.SumSegmentAllocations(ctx, budget.SegmentID, budget.StartDate, budget.EndDate)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to sum segment spending: %w", err)
		}
		return spent, nil
	}

	spent, err := s.budgetRepo.SumDepartmentExpenses(ctx, budget.DepartmentID, budget.StartDate, budget.EndDate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum department spending: %w", err)
	}
	return spent, nil
}

func (s *budgetService) GetBudgetStatus(ctx context.Context, budgetID string) (*domain.BudgetStatus, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget for status: %w", err)
	}

	spent, err := s.GetSpentAmount(ctx, budget)
	if err != nil {
		return nil, err
	}

	return s.deriveStatus(budget, spent), nil
}

// deriveStatus computes the consumption view. A zero limit reports 0% used
// and never alerts.
func (s *budgetService) deriveStatus(budget *domain.Budget, spent decimal.Decimal) *domain.BudgetStatus {
	status := &domain.BudgetStatus{
		Budget:         *budget,
		SpentAmount:    spent,
		Remaining:      budget.LimitAmount.Sub(spent),
		PercentageUsed: decimal.Zero,
	}

	if budget.LimitAmount.IsPositive() {
		ratio := spent.Div(budget.LimitAmount)
		status.PercentageUsed = ratio.Mul(oneHundred).Round(2)
		status.AlertTriggered = ratio.GreaterThanOrEqual(budget.AlertThreshold)
	}

	return status
}

func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error) {
	if (req.SegmentID == "") == (req.DepartmentID == "") {
		return nil, fmt.Errorf("%w: a budget is scoped to exactly one of segment or department", apperrors.ErrValidation)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: budget end date must be after its start date", apperrors.ErrValidation)
	}
	if req.LimitAmount.IsNegative() {
		return nil, fmt.Errorf("%w: budget limit cannot be negative", apperrors.ErrValidation)
	}

	threshold := defaultAlertThreshold
	if req.AlertThreshold != nil {
		threshold = *req.AlertThreshold
		if threshold.LessThanOrEqual(decimal.Zero) || threshold.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: alert threshold must be in (0, 1]", apperrors.ErrValidation)
		}
	}

	if req.SegmentID != "" {
		if _, err := s.segmentRepo.FindSegmentByID(ctx, req.SegmentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: segment %s not found", apperrors.ErrValidation, req.SegmentID)
			}
			return nil, fmt.Errorf("failed to validate segment: %w", err)
		}
	}
	if req.DepartmentID != "" {
		if _, err := s.departmentRepo.FindDepartmentByID(ctx, req.DepartmentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: department %s not found", apperrors.ErrValidation, req.DepartmentID)
			}
			return nil, fmt.Errorf("failed to validate department: %w", err)
		}
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		SegmentID:      req.SegmentID,
		DepartmentID:   req.DepartmentID,
		PeriodType:     domain.BudgetPeriodType(req.PeriodType),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		LimitAmount:    req.LimitAmount,
		AlertThreshold: threshold,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	if _, err := s.auditSvc.Record(ctx, creatorUserID, domain.AuditCreate, budgetEntityType, budget.BudgetID, map[string]any{
		"limitAmount": budget.LimitAmount.String(),
		"periodType":  string(budget.PeriodType),
	}); err != nil {
		return nil, err
	}

	return &budget, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, requestingUserID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget for update: %w", err)
	}

	changes := map[string]any{}
	if req.LimitAmount != nil {
		if req.LimitAmount.IsNegative() {
			return nil, fmt.Errorf("%w: budget limit cannot be negative", apperrors.ErrValidation)
		}
		budget.LimitAmount = *req.LimitAmount
		changes["limitAmount"] = req.LimitAmount.String()
	}
	if req.AlertThreshold != nil {
		if req.AlertThreshold.LessThanOrEqual(decimal.Zero) || req.AlertThreshold.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: alert threshold must be in (0, 1]", apperrors.ErrValidation)
		}
		budget.AlertThreshold = *req.AlertThreshold
		changes["alertThreshold"] = req.AlertThreshold.String()
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
		changes["startDate"] = req.StartDate.Format(time.DateOnly)
	}
	if req.EndDate != nil {
		budget.EndDate = *req.EndDate
		changes["endDate"] = req.EndDate.Format(time.DateOnly)
	}
	if !budget.EndDate.After(budget.StartDate) {
		return nil, fmt.Errorf("%w: budget end date must be after its start date", apperrors.ErrValidation)
	}

	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = requestingUserID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	if _, err := s.auditSvc.Record(ctx, requestingUserID, domain.AuditUpdate, budgetEntityType, budgetID, changes); err != nil {
		return nil, err
	}

	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, budgetID string, requestingUserID string) error {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return fmt.Errorf("failed to find budget for deletion: %w", err)
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	if _, err := s.auditSvc.Record(ctx, requestingUserID, domain.AuditDelete, budgetEntityType, budgetID, map[string]any{
		"limitAmount": budget.LimitAmount.String(),
	}); err != nil {
		return err
	}

	return nil
}

// CheckAlertsForExpense evaluates every budget whose scope and period cover
// the expense. It never fails the caller: alerting is best-effort.
func (s *budgetService) CheckAlertsForExpense(ctx context.Context, expense *domain.Expense, at time.Time) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var affected []domain.Budget

	for _, alloc := range expense.Allocations {
		budgets, err := s.budgetRepo.FindBudgetsForSegment(ctx, alloc.SegmentID, at)
		if err != nil {
			logger.Warn("Budget alert check skipped for segment", slog.String("segment_id", alloc.SegmentID), slog.String("error", err.Error()))
			continue
		}
		affected = append(affected, budgets...)
	}

	deptBudgets, err := s.budgetRepo.FindBudgetsForDepartment(ctx, expense.DepartmentID, at)
	if err != nil {
		logger.Warn("Budget alert check skipped for department", slog.String("department_id", expense.DepartmentID), slog.String("error", err.Error()))
	} else {
		affected = append(affected, deptBudgets...)
	}

	for i := range affected {
		budget := affected[i]
		spent, err := s.GetSpentAmount(ctx, &budget)
		if err != nil {
			logger.Warn("Budget alert check failed", slog.String("budget_id", budget.BudgetID), slog.String("error", err.Error()))
			continue
		}

		status := s.deriveStatus(&budget, spent)
		if !status.AlertTriggered {
			continue
		}

		logger.Info("Budget alert threshold crossed",
			slog.String("budget_id", budget.BudgetID),
			slog.String("spent", spent.String()),
			slog.String("limit", budget.LimitAmount.String()),
		)
		s.notifyBudgetAlert(ctx, &budget, status)
	}
}

// notifyBudgetAlert delivers the alert to the budget's responsible parties:
// the department manager for department budgets, and a finance admin always.
func (s *budgetService) notifyBudgetAlert(ctx context.Context, budget *domain.Budget, status *domain.BudgetStatus) {
	logger := middleware.GetLoggerFromCtx(ctx)

	message := fmt.Sprintf("Budget has reached %s%% of its %s limit (spent %s).",
		status.PercentageUsed.String(), budget.LimitAmount.String(), status.SpentAmount.String())

	if budget.DepartmentID != "" {
		department, err := s.departmentRepo.FindDepartmentByID(ctx, budget.DepartmentID)
		if err == nil && department.ManagerID != "" {
			s.notifier.Notify(ctx, department.ManagerID, domain.NotifyBudgetAlert, "Budget alert", message, "")
		}
	}

	financeAdmin, err := s.userRepo.FindFirstActiveByRole(ctx, domain.RoleFinanceAdmin)
	if err != nil {
		logger.Warn("No finance admin to receive budget alert", slog.String("budget_id", budget.BudgetID))
		return
	}
	s.notifier.Notify(ctx, financeAdmin.UserID, domain.NotifyBudgetAlert, "Budget alert", message, "")
}
