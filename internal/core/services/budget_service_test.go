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

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetsForSegment(ctx context.Context, segmentID string, at time.Time) ([]domain.Budget, error) {
	args := m.Called(ctx, segmentID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetsForDepartment(ctx context.Context, departmentID string, at time.Time) ([]domain.Budget, error) {
	args := m.Called(ctx, departmentID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SumSegmentAllocations(ctx context.Context, segmentID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, segmentID, from, to)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBudgetRepository) SumDepartmentExpenses(ctx context.Context, departmentID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, departmentID, from, to)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo     *MockBudgetRepository
	mockSegmentRepo    *MockSegmentRepository
	mockDepartmentRepo *MockDepartmentRepository
	mockUserRepo       *MockUserRepository
	mockAudit          *MockAuditRecorder
	mockNotifier       *MockNotifier
	service            portssvc.BudgetSvcFacade

	userID       string
	segmentID    string
	departmentID string
	periodStart  time.Time
	periodEnd    time.Time
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockSegmentRepo = new(MockSegmentRepository)
	suite.mockDepartmentRepo = new(MockDepartmentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAudit = new(MockAuditRecorder)
	suite.mockNotifier = new(MockNotifier)

	suite.service = services.NewBudgetService(
		suite.mockBudgetRepo,
		suite.mockSegmentRepo,
		suite.mockDepartmentRepo,
		suite.mockUserRepo,
		suite.mockAudit,
		suite.mockNotifier,
	)

	suite.userID = uuid.NewString()
	suite.segmentID = uuid.NewString()
	suite.departmentID = uuid.NewString()
	suite.periodStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.periodEnd = time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
}

func (suite *BudgetServiceTestSuite) segmentBudget(limit int64) *domain.Budget {
	return &domain.Budget{
		BudgetID:       uuid.NewString(),
		SegmentID:      suite.segmentID,
		PeriodType:     domain.PeriodMonthly,
		StartDate:      suite.periodStart,
		EndDate:        suite.periodEnd,
		LimitAmount:    decimal.NewFromInt(limit),
		AlertThreshold: decimal.NewFromFloat(0.8),
	}
}

func (suite *BudgetServiceTestSuite) TestGetBudgetStatus_AlertTriggered() {
	ctx := context.Background()
	budget := suite.segmentBudget(1000)

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("SumSegmentAllocations", ctx, suite.segmentID, suite.periodStart, suite.periodEnd).Return(decimal.NewFromInt(850), nil).Once()

	status, err := suite.service.GetBudgetStatus(ctx, budget.BudgetID)

	suite.Require().NoError(err)
	suite.True(status.SpentAmount.Equal(decimal.NewFromInt(850)))
	suite.True(status.Remaining.Equal(decimal.NewFromInt(150)))
	suite.True(status.PercentageUsed.Equal(decimal.NewFromInt(85)))
	suite.True(status.AlertTriggered, "850 of 1000 crosses the 0.8 threshold")
}

func (suite *BudgetServiceTestSuite) TestGetBudgetStatus_BelowThreshold() {
	ctx := context.Background()
	budget := suite.segmentBudget(1000)

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("SumSegmentAllocations", ctx, suite.segmentID, suite.periodStart, suite.periodEnd).Return(decimal.NewFromInt(750), nil).Once()

	status, err := suite.service.GetBudgetStatus(ctx, budget.BudgetID)

	suite.Require().NoError(err)
	suite.True(status.PercentageUsed.Equal(decimal.NewFromInt(75)))
	suite.False(status.AlertTriggered)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetStatus_ZeroLimitNeverAlerts() {
	ctx := context.Background()
	budget := suite.segmentBudget(0)

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("SumSegmentAllocations", ctx, suite.segmentID, suite.periodStart, suite.periodEnd).Return(decimal.NewFromInt(400), nil).Once()

	status, err := suite.service.GetBudgetStatus(ctx, budget.BudgetID)

	suite.Require().NoError(err)
	suite.True(status.PercentageUsed.IsZero(), "a zero limit reports 0%% used")
	suite.False(status.AlertTriggered)
	suite.True(status.Remaining.Equal(decimal.NewFromInt(-400)))
}

func (suite *BudgetServiceTestSuite) TestGetSpentAmount_DepartmentScope() {
	ctx := context.Background()
	budget := &domain.Budget{
		BudgetID:       uuid.NewString(),
		DepartmentID:   suite.departmentID,
		PeriodType:     domain.PeriodMonthly,
		StartDate:      suite.periodStart,
		EndDate:        suite.periodEnd,
		LimitAmount:    decimal.NewFromInt(5000),
		AlertThreshold: decimal.NewFromFloat(0.8),
	}

	suite.mockBudgetRepo.On("SumDepartmentExpenses", ctx, suite.departmentID, suite.periodStart, suite.periodEnd).Return(decimal.NewFromInt(1200), nil).Once()

	spent, err := suite.service.GetSpentAmount(ctx, budget)

	suite.Require().NoError(err)
	suite.True(spent.Equal(decimal.NewFromInt(1200)))
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SumSegmentAllocations")
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_ScopeXOR() {
	ctx := context.Background()

	// Both scopes set
	_, err := suite.service.CreateBudget(ctx, dto.CreateBudgetRequest{
		SegmentID:    suite.segmentID,
		DepartmentID: suite.departmentID,
		PeriodType:   "MONTHLY",
		StartDate:    suite.periodStart,
		EndDate:      suite.periodEnd,
		LimitAmount:  decimal.NewFromInt(1000),
	}, suite.userID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	// Neither scope set
	_, err = suite.service.CreateBudget(ctx, dto.CreateBudgetRequest{
		PeriodType:  "MONTHLY",
		StartDate:   suite.periodStart,
		EndDate:     suite.periodEnd,
		LimitAmount: decimal.NewFromInt(1000),
	}, suite.userID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_DefaultThreshold() {
	ctx := context.Background()

	suite.mockSegmentRepo.On("FindSegmentByID", ctx, suite.segmentID).Return(&domain.Segment{SegmentID: suite.segmentID, IsActive: true}, nil).Once()
	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.AlertThreshold.Equal(decimal.NewFromFloat(0.8))
	})).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, suite.userID, domain.AuditCreate, "Budget", mock.AnythingOfType("string"), mock.Anything).Return(&domain.AuditLog{}, nil).Once()

	budget, err := suite.service.CreateBudget(ctx, dto.CreateBudgetRequest{
		SegmentID:   suite.segmentID,
		PeriodType:  "MONTHLY",
		StartDate:   suite.periodStart,
		EndDate:     suite.periodEnd,
		LimitAmount: decimal.NewFromInt(1000),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(budget.AlertThreshold.Equal(decimal.NewFromFloat(0.8)))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_InvalidDates() {
	ctx := context.Background()

	_, err := suite.service.CreateBudget(ctx, dto.CreateBudgetRequest{
		SegmentID:   suite.segmentID,
		PeriodType:  "MONTHLY",
		StartDate:   suite.periodEnd,
		EndDate:     suite.periodStart,
		LimitAmount: decimal.NewFromInt(1000),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BudgetServiceTestSuite) TestCheckAlertsForExpense_NotifiesOnCrossing() {
	ctx := context.Background()
	budget := suite.segmentBudget(1000)
	manager := domain.User{UserID: uuid.NewString(), Role: domain.RoleFinanceAdmin, IsActive: true}

	expense := &domain.Expense{
		ExpenseID:    uuid.NewString(),
		DepartmentID: suite.departmentID,
		ExpenseDate:  suite.periodStart.AddDate(0, 0, 10),
		Allocations: []domain.SegmentAllocation{
			{SegmentID: suite.segmentID, Percentage: decimal.NewFromInt(100), Amount: decimal.NewFromInt(850)},
		},
	}

	suite.mockBudgetRepo.On("FindBudgetsForSegment", ctx, suite.segmentID, expense.ExpenseDate).Return([]domain.Budget{*budget}, nil).Once()
	suite.mockBudgetRepo.On("FindBudgetsForDepartment", ctx, suite.departmentID, expense.ExpenseDate).Return([]domain.Budget{}, nil).Once()
	suite.mockBudgetRepo.On("SumSegmentAllocations", ctx, suite.segmentID, suite.periodStart, suite.periodEnd).Return(decimal.NewFromInt(850), nil).Once()
	suite.mockUserRepo.On("FindFirstActiveByRole", ctx, domain.RoleFinanceAdmin).Return(&manager, nil).Once()
	suite.mockNotifier.On("Notify", ctx, manager.UserID, domain.NotifyBudgetAlert, mock.Anything, mock.Anything, "").Once()

	suite.service.CheckAlertsForExpense(ctx, expense, expense.ExpenseDate)

	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCheckAlertsForExpense_NoAlertBelowThreshold() {
	ctx := context.Background()
	budget := suite.segmentBudget(1000)

	expense := &domain.Expense{
		ExpenseID:    uuid.NewString(),
		DepartmentID: suite.departmentID,
		ExpenseDate:  suite.periodStart.AddDate(0, 0, 10),
		Allocations: []domain.SegmentAllocation{
			{SegmentID: suite.segmentID, Percentage: decimal.NewFromInt(100), Amount: decimal.NewFromInt(100)},
		},
	}

	suite.mockBudgetRepo.On("FindBudgetsForSegment", ctx, suite.segmentID, expense.ExpenseDate).Return([]domain.Budget{*budget}, nil).Once()
	suite.mockBudgetRepo.On("FindBudgetsForDepartment", ctx, suite.departmentID, expense.ExpenseDate).Return([]domain.Budget{}, nil).Once()
	suite.mockBudgetRepo.On("SumSegmentAllocations", ctx, suite.segmentID, suite.periodStart, suite.periodEnd).Return(decimal.NewFromInt(100), nil).Once()

	suite.service.CheckAlertsForExpense(ctx, expense, expense.ExpenseDate)

	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify")
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
