package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
)

// --- Mock ApprovalRepository ---
type MockApprovalRepository struct {
	mock.Mock
}

var _ portsrepo.ApprovalRepositoryFacade = (*MockApprovalRepository)(nil)

func (m *MockApprovalRepository) FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

func (m *MockApprovalRepository) ListPendingApprovalsForApprover(ctx context.Context, approverID string) ([]domain.Approval, error) {
	args := m.Called(ctx, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

func (m *MockApprovalRepository) RecordDecision(ctx context.Context, approval domain.Approval, newStatus domain.ExpenseStatus, audit domain.AuditLog) error {
	args := m.Called(ctx, approval, newStatus, audit)
	return args.Error(0)
}

// --- Mock BudgetAlert ---
type MockBudgetAlert struct {
	mock.Mock
}

var _ portssvc.BudgetAlertSvc = (*MockBudgetAlert)(nil)

func (m *MockBudgetAlert) CheckAlertsForExpense(ctx context.Context, expense *domain.Expense, at time.Time) {
	m.Called(ctx, expense, at)
}

// --- Test Suite Setup ---
type ApprovalServiceTestSuite struct {
	suite.Suite
	mockApprovalRepo *MockApprovalRepository
	mockExpenseRepo  *MockExpenseRepository
	mockNotifier     *MockNotifier
	mockBudgetAlerts *MockBudgetAlert
	service          portssvc.ApprovalSvcFacade

	submitterID string
	managerID   string
	financeID   string
	expense     *domain.Expense
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockApprovalRepo = new(MockApprovalRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.mockBudgetAlerts = new(MockBudgetAlert)

	suite.service = services.NewApprovalService(
		suite.mockApprovalRepo,
		suite.mockExpenseRepo,
		suite.mockNotifier,
		suite.mockBudgetAlerts,
	)

	suite.submitterID = uuid.NewString()
	suite.managerID = uuid.NewString()
	suite.financeID = uuid.NewString()

	suite.expense = &domain.Expense{
		ExpenseID:    uuid.NewString(),
		SubmitterID:  suite.submitterID,
		DepartmentID: uuid.NewString(),
		ExpenseDate:  time.Now().AddDate(0, 0, -2),
		Vendor:       "Train Tickets Ltd",
		Amount:       decimal.NewFromInt(250),
		CurrencyCode: "USD",
		BaseAmount:   decimal.NewFromInt(250),
		Status:       domain.ExpenseSubmitted,
	}
}

func (suite *ApprovalServiceTestSuite) chain(levels ...domain.Approval) []domain.Approval {
	return levels
}

func (suite *ApprovalServiceTestSuite) pendingApproval(level int, approverID string) domain.Approval {
	return domain.Approval{
		ApprovalID: uuid.NewString(),
		ExpenseID:  suite.expense.ExpenseID,
		ApproverID: approverID,
		Level:      level,
		Decision:   domain.ApprovalPending,
	}
}

func (suite *ApprovalServiceTestSuite) TestDecide_SingleLevelApprove() {
	ctx := context.Background()
	approvals := suite.chain(suite.pendingApproval(domain.ApprovalLevelManager, suite.managerID))

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, suite.expense.ExpenseID).Return(suite.expense, nil).Once()
	suite.mockApprovalRepo.On("FindApprovalsByExpenseID", ctx, suite.expense.ExpenseID).Return(approvals, nil).Once()
	suite.mockApprovalRepo.On("RecordDecision", ctx, mock.MatchedBy(func(a domain.Approval) bool {
		return a.Decision == domain.ApprovalApproved && a.DecidedAt != nil && a.Level == domain.ApprovalLevelManager
	}), domain.ExpenseApproved, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, suite.submitterID, domain.NotifyExpenseApproved, mock.Anything, mock.Anything, suite.expense.ExpenseID).Once()
	suite.mockBudgetAlerts.On("CheckAlertsForExpense", ctx, mock.AnythingOfType("*domain.Expense"), suite.expense.ExpenseDate).Once()

	updated, err := suite.service.Decide(ctx, suite.expense.ExpenseID, suite.managerID, dto.DecideApprovalRequest{Decision: "APPROVED"})

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseApproved, updated.Status)
	suite.mockApprovalRepo.AssertExpectations(suite.T())
	suite.mockBudgetAlerts.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestDecide_FirstOfTwoLevelsApprove() {
	ctx := context.Background()
	approvals := suite.chain(
		suite.pendingApproval(domain.ApprovalLevelManager, suite.managerID),
		suite.pendingApproval(domain.ApprovalLevelFinance, suite.financeID),
	)

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, suite.expense.ExpenseID).Return(suite.expense, nil).Once()
	suite.mockApprovalRepo.On("FindApprovalsByExpenseID", ctx, suite.expense.ExpenseID).Return(approvals, nil).Once()
	suite.mockApprovalRepo.On("RecordDecision", ctx, mock.MatchedBy(func(a domain.Approval) bool {
		return a.Level == domain.ApprovalLevelManager && a.Decision == domain.ApprovalApproved
	}), domain.ExpenseSubmitted, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, suite.financeID, domain.NotifyExpenseSubmitted, mock.Anything, mock.Anything, suite.expense.ExpenseID).Once()

	updated, err := suite.service.Decide(ctx, suite.expense.ExpenseID, suite.managerID, dto.DecideApprovalRequest{Decision: "APPROVED"})

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseSubmitted, updated.Status, "expense stays submitted while a higher level is pending")
	suite.mockBudgetAlerts.AssertNotCalled(suite.T(), "CheckAlertsForExpense")
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestDecide_SecondLevelApproves() {
	ctx := context.Background()
	decidedAt := time.Now().Add(-time.Hour)
	levelOne := suite.pendingApproval(domain.ApprovalLevelManager, suite.managerID)
	levelOne.Decision = domain.ApprovalApproved
	levelOne.DecidedAt = &decidedAt
	approvals := suite.chain(levelOne, suite.pendingApproval(domain.ApprovalLevelFinance, suite.financeID))

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, suite.expense.ExpenseID).Return(suite.expense, nil).Once()
	suite.mockApprovalRepo.On("FindApprovalsByExpenseID", ctx, suite.expense.ExpenseID).Return(approvals, nil).Once()
	suite.mockApprovalRepo.On("RecordDecision", ctx, mock.MatchedBy(func(a domain.Approval) bool {
		return a.Level == domain.ApprovalLevelFinance && a.Decision == domain.ApprovalApproved
	}), domain.ExpenseApproved, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, suite.submitterID, domain.NotifyExpenseApproved, mock.Anything, mock.Anything, suite.expense.ExpenseID).Once()
	suite.mockBudgetAlerts.On("CheckAlertsForExpense", ctx, mock.AnythingOfType("*domain.Expense"), suite.expense.ExpenseDate).Once()

	updated, err := suite.service.Decide(ctx, suite.expense.ExpenseID, suite.financeID, dto.DecideApprovalRequest{Decision: "APPROVED"})

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseApproved, updated.Status)
}

func (suite *ApprovalServiceTestSuite) TestDecide_RejectionIsTerminal() {
	ctx := context.Background()
	approvals := suite.chain(
		suite.pendingApproval(domain.ApprovalLevelManager, suite.managerID),
		suite.pendingApproval(domain.ApprovalLevelFinance, suite.financeID),
	)

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, suite.expense.ExpenseID).Return(suite.expense, nil).Once()
	suite.mockApprovalRepo.On("FindApprovalsByExpenseID", ctx, suite.expense.ExpenseID).Return(approvals, nil).Once()
	suite.mockApprovalRepo.On("RecordDecision", ctx, mock.MatchedBy(func(a domain.Approval) bool {
		return a.Decision == domain.ApprovalRejected && a.Comments == "missing receipt"
	}), domain.ExpenseRejected, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, suite.submitterID, domain.NotifyExpenseRejected, mock.Anything, mock.Anything, suite.expense.ExpenseID).Once()

	updated, err := suite.service.Decide(ctx, suite.expense.ExpenseID, suite.managerID, dto.DecideApprovalRequest{Decision: "REJECTED", Comments: "missing receipt"})

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseRejected, updated.Status)
	suite.mockBudgetAlerts.AssertNotCalled(suite.T(), "CheckAlertsForExpense")
}

func (suite *ApprovalServiceTestSuite) TestDecide_WrongApprover() {
	ctx := context.Background()
	approvals := suite.chain(
		suite.pendingApproval(domain.ApprovalLevelManager, suite.managerID),
		suite.pendingApproval(domain.ApprovalLevelFinance, suite.financeID),
	)

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, suite.expense.ExpenseID).Return(suite.expense, nil).Once()
	suite.mockApprovalRepo.On("FindApprovalsByExpenseID", ctx, suite.expense.ExpenseID).Return(approvals, nil).Once()

	// The finance admin cannot decide before the manager's level.
	_, err := suite.service.Decide(ctx, suite.expense.ExpenseID, suite.financeID, dto.DecideApprovalRequest{Decision: "APPROVED"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotAuthorized)
	suite.mockApprovalRepo.AssertNotCalled(suite.T(), "RecordDecision")
}

func (suite *ApprovalServiceTestSuite) TestDecide_ExpenseNotSubmitted() {
	ctx := context.Background()
	draft := *suite.expense
	draft.Status = domain.ExpenseDraft

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, suite.expense.ExpenseID).Return(&draft, nil).Once()

	_, err := suite.service.Decide(ctx, suite.expense.ExpenseID, suite.managerID, dto.DecideApprovalRequest{Decision: "APPROVED"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *ApprovalServiceTestSuite) TestDecide_ChainAlreadyDecided() {
	ctx := context.Background()
	decidedAt := time.Now()
	levelOne := suite.pendingApproval(domain.ApprovalLevelManager, suite.managerID)
	levelOne.Decision = domain.ApprovalApproved
	levelOne.DecidedAt = &decidedAt

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, suite.expense.ExpenseID).Return(suite.expense, nil).Once()
	suite.mockApprovalRepo.On("FindApprovalsByExpenseID", ctx, suite.expense.ExpenseID).Return(suite.chain(levelOne), nil).Once()

	_, err := suite.service.Decide(ctx, suite.expense.ExpenseID, suite.managerID, dto.DecideApprovalRequest{Decision: "APPROVED"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *ApprovalServiceTestSuite) TestListPendingApprovals() {
	ctx := context.Background()
	pending := suite.chain(suite.pendingApproval(domain.ApprovalLevelManager, suite.managerID))

	suite.mockApprovalRepo.On("ListPendingApprovalsForApprover", ctx, suite.managerID).Return(pending, nil).Once()

	approvals, err := suite.service.ListPendingApprovals(ctx, suite.managerID)

	suite.Require().NoError(err)
	suite.Len(approvals, 1)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
