package mapping

import (
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:               d.ExpenseID,
		SubmitterID:             d.SubmitterID,
		DepartmentID:            d.DepartmentID,
		ExpenseDate:             d.ExpenseDate,
		Vendor:                  d.Vendor,
		Description:             d.Description,
		Amount:                  d.Amount,
		CurrencyCode:            d.CurrencyCode,
		BaseAmount:              d.BaseAmount,
		Status:                  string(d.Status),
		RequiresFinanceApproval: d.RequiresFinanceApproval,
		ReceiptURL:              nilIfEmpty(d.ReceiptURL),
		Notes:                   d.Notes,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:               m.ExpenseID,
		SubmitterID:             m.SubmitterID,
		DepartmentID:            m.DepartmentID,
		ExpenseDate:             m.ExpenseDate,
		Vendor:                  m.Vendor,
		Description:             m.Description,
		Amount:                  m.Amount,
		CurrencyCode:            m.CurrencyCode,
		BaseAmount:              m.BaseAmount,
		Status:                  domain.ExpenseStatus(m.Status),
		RequiresFinanceApproval: m.RequiresFinanceApproval,
		ReceiptURL:              derefOrEmpty(m.ReceiptURL),
		Notes:                   m.Notes,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToModelSegmentAllocation converts a domain SegmentAllocation to its model
func ToModelSegmentAllocation(d domain.SegmentAllocation) models.SegmentAllocation {
	return models.SegmentAllocation{
		AllocationID: d.AllocationID,
		ExpenseID:    d.ExpenseID,
		SegmentID:    d.SegmentID,
		Percentage:   d.Percentage,
		Amount:       d.Amount,
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSegmentAllocation converts a model SegmentAllocation to its domain form
func ToDomainSegmentAllocation(m models.SegmentAllocation) domain.SegmentAllocation {
	return domain.SegmentAllocation{
		AllocationID: m.AllocationID,
		ExpenseID:    m.ExpenseID,
		SegmentID:    m.SegmentID,
		Percentage:   m.Percentage,
		Amount:       m.Amount,
		Notes:        m.Notes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSegmentAllocationSlice converts model allocations to domain allocations
func ToDomainSegmentAllocationSlice(ms []models.SegmentAllocation) []domain.SegmentAllocation {
	ds := make([]domain.SegmentAllocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSegmentAllocation(m)
	}
	return ds
}
