package services_test

import (
	"context"
	"errors"
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

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindExpenseWithAllocations(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllocationsByExpenseID(ctx context.Context, expenseID string) ([]domain.SegmentAllocation, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SegmentAllocation), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		next = &tokenVal
	}
	return args.Get(0).([]domain.Expense), next, args.Error(2)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

func (m *MockExpenseRepository) ReplaceAllocations(ctx context.Context, expenseID string, allocations []domain.SegmentAllocation, audit domain.AuditLog) error {
	args := m.Called(ctx, expenseID, allocations, audit)
	return args.Error(0)
}

func (m *MockExpenseRepository) SubmitExpense(ctx context.Context, expense domain.Expense, approvals []domain.Approval, audit domain.AuditLog) error {
	args := m.Called(ctx, expense, approvals, audit)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindFirstActiveByRole(ctx context.Context, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveRefreshTokenHash(ctx context.Context, userID string, tokenHash *string) error {
	args := m.Called(ctx, userID, tokenHash)
	return args.Error(0)
}

func (m *MockUserRepository) FindRefreshTokenHash(ctx context.Context, userID string) (*string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

// --- Mock SegmentRepository ---
type MockSegmentRepository struct {
	mock.Mock
}

var _ portsrepo.SegmentRepositoryFacade = (*MockSegmentRepository)(nil)

func (m *MockSegmentRepository) FindSegmentByID(ctx context.Context, segmentID string) (*domain.Segment, error) {
	args := m.Called(ctx, segmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Segment), args.Error(1)
}

func (m *MockSegmentRepository) FindSegmentsByIDs(ctx context.Context, segmentIDs []string) (map[string]domain.Segment, error) {
	args := m.Called(ctx, segmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Segment), args.Error(1)
}

func (m *MockSegmentRepository) ListSegments(ctx context.Context, activeOnly bool) ([]domain.Segment, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Segment), args.Error(1)
}

func (m *MockSegmentRepository) CountAllocationsForSegment(ctx context.Context, segmentID string) (int, error) {
	args := m.Called(ctx, segmentID)
	return args.Int(0), args.Error(1)
}

func (m *MockSegmentRepository) SaveSegment(ctx context.Context, segment domain.Segment) error {
	args := m.Called(ctx, segment)
	return args.Error(0)
}

func (m *MockSegmentRepository) UpdateSegment(ctx context.Context, segment domain.Segment) error {
	args := m.Called(ctx, segment)
	return args.Error(0)
}

// --- Mock DepartmentRepository ---
type MockDepartmentRepository struct {
	mock.Mock
}

var _ portsrepo.DepartmentRepositoryFacade = (*MockDepartmentRepository)(nil)

func (m *MockDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) UpdateDepartment(ctx context.Context, department domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

// --- Mock CurrencyConverter ---
type MockCurrencyConverter struct {
	mock.Mock
}

var _ portssvc.CurrencyConverterSvc = (*MockCurrencyConverter)(nil)

func (m *MockCurrencyConverter) ConvertToBase(ctx context.Context, amount decimal.Decimal, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, currencyCode)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock AuditRecorder ---
type MockAuditRecorder struct {
	mock.Mock
}

var _ portssvc.AuditRecorderSvc = (*MockAuditRecorder)(nil)

func (m *MockAuditRecorder) Record(ctx context.Context, actorID string, action domain.AuditAction, entityType, entityID string, changes map[string]any) (*domain.AuditLog, error) {
	args := m.Called(ctx, actorID, action, entityType, entityID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLog), args.Error(1)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.NotifierSvc = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(ctx context.Context, userID string, notifType domain.NotificationType, title, message, expenseID string) {
	m.Called(ctx, userID, notifType, title, message, expenseID)
}

// --- Test Suite Setup ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo    *MockExpenseRepository
	mockUserRepo       *MockUserRepository
	mockSegmentRepo    *MockSegmentRepository
	mockDepartmentRepo *MockDepartmentRepository
	mockConverter      *MockCurrencyConverter
	mockAudit          *MockAuditRecorder
	mockNotifier       *MockNotifier
	service            portssvc.ExpenseSvcFacade

	submitter  domain.User
	department domain.Department
	managerID  string
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockSegmentRepo = new(MockSegmentRepository)
	suite.mockDepartmentRepo = new(MockDepartmentRepository)
	suite.mockConverter = new(MockCurrencyConverter)
	suite.mockAudit = new(MockAuditRecorder)
	suite.mockNotifier = new(MockNotifier)

	suite.service = services.NewExpenseService(
		suite.mockExpenseRepo,
		suite.mockUserRepo,
		suite.mockSegmentRepo,
		suite.mockDepartmentRepo,
		suite.mockConverter,
		suite.mockAudit,
		suite.mockNotifier,
	)

	suite.managerID = uuid.NewString()
	suite.department = domain.Department{
		DepartmentID: uuid.NewString(),
		Name:         "Engineering",
		Code:         "ENG",
		ManagerID:    suite.managerID,
		IsActive:     true,
	}
	suite.submitter = domain.User{
		UserID:       uuid.NewString(),
		Username:     "asha",
		Role:         domain.RoleEmployee,
		DepartmentID: suite.department.DepartmentID,
		IsActive:     true,
	}
}

func (suite *ExpenseServiceTestSuite) draftExpense() *domain.Expense {
	return &domain.Expense{
		ExpenseID:    uuid.NewString(),
		SubmitterID:  suite.submitter.UserID,
		DepartmentID: suite.department.DepartmentID,
		ExpenseDate:  time.Now().AddDate(0, 0, -1),
		Vendor:       "Cloud Hosting Inc",
		Description:  "Monthly hosting",
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "EUR",
		BaseAmount:   decimal.NewFromFloat(110.00),
		Status:       domain.ExpenseDraft,
	}
}

// --- CreateExpense ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		ExpenseDate:  time.Now(),
		Vendor:       "Cloud Hosting Inc",
		Description:  "Monthly hosting",
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "EUR",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.submitter.UserID).Return(&suite.submitter, nil).Once()
	suite.mockConverter.On("ConvertToBase", ctx, req.Amount, "EUR").Return(decimal.NewFromFloat(110.00), nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, suite.submitter.UserID, domain.AuditCreate, "Expense", mock.AnythingOfType("string"), mock.Anything).Return(&domain.AuditLog{}, nil).Once()

	created, err := suite.service.CreateExpense(ctx, req, suite.submitter.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.ExpenseID)
	suite.Equal(domain.ExpenseDraft, created.Status)
	suite.Equal(suite.department.DepartmentID, created.DepartmentID)
	suite.True(created.BaseAmount.Equal(decimal.NewFromFloat(110.00)))
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		ExpenseDate:  time.Now(),
		Vendor:       "Cloud Hosting Inc",
		Description:  "Monthly hosting",
		Amount:       decimal.Zero,
		CurrencyCode: "EUR",
	}

	_, err := suite.service.CreateExpense(ctx, req, suite.submitter.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense")
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_SubmitterWithoutDepartment() {
	ctx := context.Background()
	loner := suite.submitter
	loner.DepartmentID = ""

	suite.mockUserRepo.On("FindUserByID", ctx, loner.UserID).Return(&loner, nil).Once()

	_, err := suite.service.CreateExpense(ctx, dto.CreateExpenseRequest{
		ExpenseDate:  time.Now(),
		Vendor:       "Cloud Hosting Inc",
		Description:  "Monthly hosting",
		Amount:       decimal.NewFromInt(5),
		CurrencyCode: "EUR",
	}, loner.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateExpense ---

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_NotDraft() {
	ctx := context.Background()
	expense := suite.draftExpense()
	expense.Status = domain.ExpenseSubmitted

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, expense.ExpenseID).Return(expense, nil).Once()

	vendor := "New Vendor"
	_, err := suite.service.UpdateExpense(ctx, expense.ExpenseID, dto.UpdateExpenseRequest{Vendor: &vendor}, suite.submitter.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpense")
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_NotSubmitter() {
	ctx := context.Background()
	expense := suite.draftExpense()
	stranger := uuid.NewString()

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, expense.ExpenseID).Return(expense, nil).Once()

	vendor := "New Vendor"
	_, err := suite.service.UpdateExpense(ctx, expense.ExpenseID, dto.UpdateExpenseRequest{Vendor: &vendor}, stranger)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_AmountChangeRecomputesAllocations() {
	ctx := context.Background()
	expense := suite.draftExpense()
	segmentID := uuid.NewString()
	expense.Allocations = []domain.SegmentAllocation{
		{
			AllocationID: uuid.NewString(),
			ExpenseID:    expense.ExpenseID,
			SegmentID:    segmentID,
			Percentage:   decimal.NewFromInt(100),
			Amount:       expense.BaseAmount,
		},
	}

	newAmount := decimal.NewFromInt(200)
	newBase := decimal.NewFromFloat(220.00)

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockConverter.On("ConvertToBase", ctx, newAmount, "EUR").Return(newBase, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()
	suite.mockExpenseRepo.On("ReplaceAllocations", ctx, expense.ExpenseID, mock.AnythingOfType("[]domain.SegmentAllocation"), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, suite.submitter.UserID, domain.AuditUpdate, "Expense", expense.ExpenseID, mock.Anything).Return(&domain.AuditLog{}, nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, expense.ExpenseID, dto.UpdateExpenseRequest{Amount: &newAmount}, suite.submitter.UserID)

	suite.Require().NoError(err)
	suite.True(updated.BaseAmount.Equal(newBase))
	suite.Require().Len(updated.Allocations, 1)
	suite.True(updated.Allocations[0].Amount.Equal(newBase), "allocation amount should track the new base amount")
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

// --- ReplaceAllocations ---

func (suite *ExpenseServiceTestSuite) TestReplaceAllocations_Success() {
	ctx := context.Background()
	expense := suite.draftExpense()
	segA := uuid.NewString()
	segB := uuid.NewString()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockSegmentRepo.On("FindSegmentsByIDs", ctx, []string{segA, segB}).Return(map[string]domain.Segment{
		segA: {SegmentID: segA, Name: "Travel", IsActive: true},
		segB: {SegmentID: segB, Name: "Software", IsActive: true},
	}, nil).Once()
	suite.mockExpenseRepo.On("ReplaceAllocations", ctx, expense.ExpenseID, mock.AnythingOfType("[]domain.SegmentAllocation"), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	req := dto.ReplaceAllocationsRequest{Allocations: []dto.AllocationInput{
		{SegmentID: segA, Percentage: decimal.NewFromInt(30)},
		{SegmentID: segB, Percentage: decimal.NewFromInt(70)},
	}}

	updated, err := suite.service.ReplaceAllocations(ctx, expense.ExpenseID, req, suite.submitter.UserID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.Allocations, 2)
	// 30% and 70% of the 110.00 base
	suite.True(updated.Allocations[0].Amount.Equal(decimal.NewFromFloat(33.00)))
	suite.True(updated.Allocations[1].Amount.Equal(decimal.NewFromFloat(77.00)))
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestReplaceAllocations_SumNot100() {
	ctx := context.Background()
	expense := suite.draftExpense()
	segA := uuid.NewString()
	segB := uuid.NewString()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	req := dto.ReplaceAllocationsRequest{Allocations: []dto.AllocationInput{
		{SegmentID: segA, Percentage: decimal.NewFromInt(30)},
		{SegmentID: segB, Percentage: decimal.NewFromInt(60)},
	}}

	_, err := suite.service.ReplaceAllocations(ctx, expense.ExpenseID, req, suite.submitter.UserID)

	suite.Require().Error(err)
	var sumErr *apperrors.AllocationSumError
	suite.Require().ErrorAs(err, &sumErr)
	suite.True(sumErr.ActualSum.Equal(decimal.NewFromInt(90)))
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ReplaceAllocations")
}

func (suite *ExpenseServiceTestSuite) TestReplaceAllocations_DuplicateSegment() {
	ctx := context.Background()
	expense := suite.draftExpense()
	segA := uuid.NewString()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	req := dto.ReplaceAllocationsRequest{Allocations: []dto.AllocationInput{
		{SegmentID: segA, Percentage: decimal.NewFromInt(50)},
		{SegmentID: segA, Percentage: decimal.NewFromInt(50)},
	}}

	_, err := suite.service.ReplaceAllocations(ctx, expense.ExpenseID, req, suite.submitter.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestReplaceAllocations_EmptyClearsSplit() {
	ctx := context.Background()
	expense := suite.draftExpense()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("ReplaceAllocations", ctx, expense.ExpenseID, mock.AnythingOfType("[]domain.SegmentAllocation"), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	updated, err := suite.service.ReplaceAllocations(ctx, expense.ExpenseID, dto.ReplaceAllocationsRequest{Allocations: []dto.AllocationInput{}}, suite.submitter.UserID)

	suite.Require().NoError(err)
	suite.Empty(updated.Allocations)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

// --- SubmitExpense ---

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_SingleLevel() {
	ctx := context.Background()
	expense := suite.draftExpense()

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, suite.department.DepartmentID).Return(&suite.department, nil).Once()
	suite.mockExpenseRepo.On("SubmitExpense", ctx, mock.AnythingOfType("domain.Expense"), mock.AnythingOfType("[]domain.Approval"), mock.AnythingOfType("domain.AuditLog")).
		Run(func(args mock.Arguments) {
			approvals := args.Get(2).([]domain.Approval)
			suite.Require().Len(approvals, 1)
			suite.Equal(domain.ApprovalLevelManager, approvals[0].Level)
			suite.Equal(suite.managerID, approvals[0].ApproverID)
			suite.Equal(domain.ApprovalPending, approvals[0].Decision)
		}).
		Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, suite.managerID, domain.NotifyExpenseSubmitted, mock.Anything, mock.Anything, expense.ExpenseID).Once()

	submitted, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.submitter.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseSubmitted, submitted.Status)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_TwoLevels() {
	ctx := context.Background()
	expense := suite.draftExpense()
	expense.RequiresFinanceApproval = true
	financeAdmin := domain.User{UserID: uuid.NewString(), Role: domain.RoleFinanceAdmin, IsActive: true}

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, suite.department.DepartmentID).Return(&suite.department, nil).Once()
	suite.mockUserRepo.On("FindFirstActiveByRole", ctx, domain.RoleFinanceAdmin).Return(&financeAdmin, nil).Once()
	suite.mockExpenseRepo.On("SubmitExpense", ctx, mock.AnythingOfType("domain.Expense"), mock.AnythingOfType("[]domain.Approval"), mock.AnythingOfType("domain.AuditLog")).
		Run(func(args mock.Arguments) {
			approvals := args.Get(2).([]domain.Approval)
			suite.Require().Len(approvals, 2)
			suite.Equal(domain.ApprovalLevelManager, approvals[0].Level)
			suite.Equal(domain.ApprovalLevelFinance, approvals[1].Level)
			suite.Equal(financeAdmin.UserID, approvals[1].ApproverID)
		}).
		Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, suite.managerID, domain.NotifyExpenseSubmitted, mock.Anything, mock.Anything, expense.ExpenseID).Once()

	_, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.submitter.UserID)

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_NotDraft() {
	ctx := context.Background()
	expense := suite.draftExpense()
	expense.Status = domain.ExpenseApproved

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.submitter.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SubmitExpense")
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_NoDepartmentManager() {
	ctx := context.Background()
	expense := suite.draftExpense()
	orphanDept := suite.department
	orphanDept.ManagerID = ""

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, suite.department.DepartmentID).Return(&orphanDept, nil).Once()

	_, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.submitter.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_NoFinanceAdmin() {
	ctx := context.Background()
	expense := suite.draftExpense()
	expense.RequiresFinanceApproval = true

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, suite.department.DepartmentID).Return(&suite.department, nil).Once()
	suite.mockUserRepo.On("FindFirstActiveByRole", ctx, domain.RoleFinanceAdmin).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.submitter.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Visibility ---

func (suite *ExpenseServiceTestSuite) TestGetExpenseByID_EmployeeCannotSeeOthers() {
	ctx := context.Background()
	expense := suite.draftExpense()
	otherEmployee := domain.User{UserID: uuid.NewString(), Role: domain.RoleEmployee, IsActive: true}

	suite.mockExpenseRepo.On("FindExpenseWithAllocations", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, otherEmployee.UserID).Return(&otherEmployee, nil).Once()

	_, err := suite.service.GetExpenseByID(ctx, expense.ExpenseID, otherEmployee.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_EmployeeFilterForced() {
	ctx := context.Background()
	employee := suite.submitter

	suite.mockUserRepo.On("FindUserByID", ctx, employee.UserID).Return(&employee, nil).Once()
	suite.mockExpenseRepo.On("ListExpenses", ctx, mock.MatchedBy(func(f portsrepo.ExpenseListFilter) bool {
		return f.SubmitterID == employee.UserID
	}), 20, (*string)(nil)).Return([]domain.Expense{}, nil, nil).Once()

	// The employee asks for someone else's expenses; the filter is overridden.
	filter := portsrepo.ExpenseListFilter{SubmitterID: uuid.NewString()}
	_, _, err := suite.service.ListExpenses(ctx, filter, employee.UserID, 0, nil)

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_Draft() {
	ctx := context.Background()
	expense := suite.draftExpense()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("DeleteExpense", ctx, expense.ExpenseID).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, suite.submitter.UserID, domain.AuditDelete, "Expense", expense.ExpenseID, mock.Anything).Return(&domain.AuditLog{}, nil).Once()

	err := suite.service.DeleteExpense(ctx, expense.ExpenseID, suite.submitter.UserID)

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_AuditFailureIsFatal() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		ExpenseDate:  time.Now(),
		Vendor:       "Cloud Hosting Inc",
		Description:  "Monthly hosting",
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "EUR",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.submitter.UserID).Return(&suite.submitter, nil).Once()
	suite.mockConverter.On("ConvertToBase", ctx, req.Amount, "EUR").Return(decimal.NewFromFloat(110.00), nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, suite.submitter.UserID, domain.AuditCreate, "Expense", mock.AnythingOfType("string"), mock.Anything).Return(nil, errors.New("audit store down")).Once()

	_, err := suite.service.CreateExpense(ctx, req, suite.submitter.UserID)

	suite.Require().Error(err)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
