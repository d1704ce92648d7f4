package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
	"github.com/aakritisaxena/ExpenseManagement/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter, requestingUserID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, filter, requestingUserID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var tok *string
	if args.Get(1) != nil {
		tok = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Expense), tok, args.Error(2)
}
func (m *MockExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, submitterID string) (*domain.Expense, error) {
	args := m.Called(ctx, req, submitterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error {
	args := m.Called(ctx, expenseID, requestingUserID)
	return args.Error(0)
}
func (m *MockExpenseService) ReplaceAllocations(ctx context.Context, expenseID string, req dto.ReplaceAllocationsRequest, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) SubmitExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock ApprovalService ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) GetApprovalsForExpense(ctx context.Context, expenseID string) ([]domain.Approval, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}
func (m *MockApprovalService) ListPendingApprovals(ctx context.Context, approverID string) ([]domain.Approval, error) {
	args := m.Called(ctx, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}
func (m *MockApprovalService) Decide(ctx context.Context, expenseID string, approverID string, req dto.DecideApprovalRequest) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, approverID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

var _ portssvc.ApprovalSvcFacade = (*MockApprovalService)(nil)

// --- Mock CommentService ---
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListComments(ctx context.Context, expenseID string) ([]domain.Comment, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}
func (m *MockCommentService) AddComment(ctx context.Context, expenseID string, authorUserID string, body string) (*domain.Comment, error) {
	args := m.Called(ctx, expenseID, authorUserID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

var _ portssvc.CommentSvcFacade = (*MockCommentService)(nil)

// --- Test Suite ---
type ExpenseHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockExpenseService  *MockExpenseService
	mockApprovalService *MockApprovalService
	mockCommentService  *MockCommentService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ExpenseHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "expman-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockExpenseService = new(MockExpenseService)
	suite.mockApprovalService = new(MockApprovalService)
	suite.mockCommentService = new(MockCommentService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	registerExpenseRoutes(v1, suite.mockExpenseService, suite.mockApprovalService, suite.mockCommentService)
}

func (suite *ExpenseHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_Success() {
	submitterID := uuid.NewString()
	req := dto.CreateExpenseRequest{
		ExpenseDate:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Vendor:       "Acme Travel",
		Description:  "Flights for the Q3 onsite",
		Amount:       decimal.NewFromFloat(412.50),
		CurrencyCode: "EUR",
	}
	created := &domain.Expense{
		ExpenseID:    uuid.NewString(),
		SubmitterID:  submitterID,
		DepartmentID: uuid.NewString(),
		ExpenseDate:  req.ExpenseDate,
		Vendor:       req.Vendor,
		Description:  req.Description,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		BaseAmount:   decimal.NewFromFloat(453.75),
		Status:       domain.ExpenseDraft,
	}

	suite.mockExpenseService.On("CreateExpense",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateExpenseRequest) bool {
			return r.Vendor == req.Vendor && r.CurrencyCode == "EUR" && r.Amount.Equal(req.Amount)
		}),
		submitterID,
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", submitterID, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExpenseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ExpenseID, resp.ExpenseID)
	suite.Equal(string(domain.ExpenseDraft), resp.Status)
	suite.True(resp.BaseAmount.Equal(created.BaseAmount))
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_MissingFields() {
	submitterID := uuid.NewString()

	// no vendor, no amount
	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", submitterID, map[string]any{
		"description": "incomplete",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "CreateExpense")
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_NotFound() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("GetExpenseByID", mock.Anything, expenseID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses/"+expenseID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_Forbidden() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("GetExpenseByID", mock.Anything, expenseID, userID).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses/"+expenseID, userID, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ExpenseHandlerTestSuite) TestListExpenses_PassesFilter() {
	userID := uuid.NewString()
	departmentID := uuid.NewString()
	next := "tok-2"

	expenses := []domain.Expense{
		{ExpenseID: uuid.NewString(), SubmitterID: userID, Status: domain.ExpenseSubmitted},
	}

	suite.mockExpenseService.On("ListExpenses",
		mock.Anything,
		mock.MatchedBy(func(f portsrepo.ExpenseListFilter) bool {
			return f.DepartmentID == departmentID && f.Status == domain.ExpenseSubmitted
		}),
		userID,
		10,
		(*string)(nil),
	).Return(expenses, &next, nil).Once()

	url := fmt.Sprintf("/api/v1/expenses?departmentID=%s&status=SUBMITTED&limit=10", departmentID)
	w := suite.doRequest(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListExpensesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Expenses, 1)
	suite.NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *ExpenseHandlerTestSuite) TestListExpenses_BadDateFilter() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses?dateFrom=yesterday", userID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "ListExpenses")
}

func (suite *ExpenseHandlerTestSuite) TestSubmitExpense_NotDraft() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("SubmitExpense", mock.Anything, expenseID, userID).
		Return(nil, fmt.Errorf("%w: expense %s is not in DRAFT", apperrors.ErrInvalidTransition, expenseID)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/expenses/"+expenseID+"/submit", userID, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ExpenseHandlerTestSuite) TestReplaceAllocations_BadSum() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()
	req := dto.ReplaceAllocationsRequest{
		Allocations: []dto.AllocationInput{
			{SegmentID: uuid.NewString(), Percentage: decimal.NewFromInt(60)},
			{SegmentID: uuid.NewString(), Percentage: decimal.NewFromInt(30)},
		},
	}

	suite.mockExpenseService.On("ReplaceAllocations", mock.Anything, expenseID, mock.Anything, userID).
		Return(nil, &apperrors.AllocationSumError{ActualSum: decimal.NewFromInt(90)}).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/expenses/"+expenseID+"/allocations", userID, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	var body map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Contains(body["error"], "sum to 100")
}

func (suite *ExpenseHandlerTestSuite) TestDeleteExpense_Success() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("DeleteExpense", mock.Anything, expenseID, userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/expenses/"+expenseID, userID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *ExpenseHandlerTestSuite) TestRequest_NoToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "ListExpenses")
}

// --- Run Test Suite ---
func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
