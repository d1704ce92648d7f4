package dto

import (
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to create a draft expense.
type CreateExpenseRequest struct {
	ExpenseDate             time.Time       `json:"expenseDate" binding:"required"`
	Vendor                  string          `json:"vendor" binding:"required,max=200"`
	Description             string          `json:"description" binding:"required"`
	Amount                  decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode            string          `json:"currencyCode" binding:"required,uppercase,len=3"`
	RequiresFinanceApproval bool            `json:"requiresFinanceApproval"`
	ReceiptURL              string          `json:"receiptURL" binding:"omitempty,url"`
	Notes                   string          `json:"notes"`
}

// UpdateExpenseRequest defines the fields a submitter may change while the
// expense is still a draft.
type UpdateExpenseRequest struct {
	ExpenseDate             *time.Time       `json:"expenseDate"`
	Vendor                  *string          `json:"vendor" binding:"omitempty,max=200"`
	Description             *string          `json:"description"`
	Amount                  *decimal.Decimal `json:"amount"`
	CurrencyCode            *string          `json:"currencyCode" binding:"omitempty,uppercase,len=3"`
	RequiresFinanceApproval *bool            `json:"requiresFinanceApproval"`
	ReceiptURL              *string          `json:"receiptURL" binding:"omitempty,url"`
	Notes                   *string          `json:"notes"`
}

// AllocationInput is one segment split in a replace-allocations request.
type AllocationInput struct {
	SegmentID  string          `json:"segmentID" binding:"required,uuid"`
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
	Notes      string          `json:"notes"`
}

// ReplaceAllocationsRequest swaps an expense's whole allocation set. The set
// is validated as a whole; an empty set clears the split.
type ReplaceAllocationsRequest struct {
	Allocations []AllocationInput `json:"allocations" binding:"required,dive"`
}

// AllocationResponse defines the data returned for one allocation.
type AllocationResponse struct {
	AllocationID string          `json:"allocationID"`
	SegmentID    string          `json:"segmentID"`
	Percentage   decimal.Decimal `json:"percentage"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        string          `json:"notes,omitempty"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID               string               `json:"expenseID"`
	SubmitterID             string               `json:"submitterID"`
	DepartmentID            string               `json:"departmentID"`
	ExpenseDate             time.Time            `json:"expenseDate"`
	Vendor                  string               `json:"vendor"`
	Description             string               `json:"description"`
	Amount                  decimal.Decimal      `json:"amount"`
	CurrencyCode            string               `json:"currencyCode"`
	BaseAmount              decimal.Decimal      `json:"baseAmount"`
	Status                  string               `json:"status"`
	RequiresFinanceApproval bool                 `json:"requiresFinanceApproval"`
	ReceiptURL              string               `json:"receiptURL,omitempty"`
	Notes                   string               `json:"notes,omitempty"`
	Allocations             []AllocationResponse `json:"allocations,omitempty"`
	CreatedAt               time.Time            `json:"createdAt"`
	LastUpdatedAt           time.Time            `json:"lastUpdatedAt"`
}

// ListExpensesResponse wraps a page of expenses with its pagination token.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToAllocationResponse converts a domain.SegmentAllocation to its DTO
func ToAllocationResponse(a *domain.SegmentAllocation) AllocationResponse {
	return AllocationResponse{
		AllocationID: a.AllocationID,
		SegmentID:    a.SegmentID,
		Percentage:   a.Percentage,
		Amount:       a.Amount,
		Notes:        a.Notes,
	}
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ExpenseID:               e.ExpenseID,
		SubmitterID:             e.SubmitterID,
		DepartmentID:            e.DepartmentID,
		ExpenseDate:             e.ExpenseDate,
		Vendor:                  e.Vendor,
		Description:             e.Description,
		Amount:                  e.Amount,
		CurrencyCode:            e.CurrencyCode,
		BaseAmount:              e.BaseAmount,
		Status:                  string(e.Status),
		RequiresFinanceApproval: e.RequiresFinanceApproval,
		ReceiptURL:              e.ReceiptURL,
		Notes:                   e.Notes,
		CreatedAt:               e.CreatedAt,
		LastUpdatedAt:           e.LastUpdatedAt,
	}
	if len(e.Allocations) > 0 {
		resp.Allocations = make([]AllocationResponse, len(e.Allocations))
		for i := range e.Allocations {
			resp.Allocations[i] = ToAllocationResponse(&e.Allocations[i])
		}
	}
	return resp
}

// ToListExpenseResponse converts domain Expenses to DTOs
func ToListExpenseResponse(es []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(es))
	for i := range es {
		res[i] = ToExpenseResponse(&es[i])
	}
	return res
}
