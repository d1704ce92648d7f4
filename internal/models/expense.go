package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the persistence model for expenses.
type Expense struct {
	ExpenseID               string          `db:"expense_id"`
	SubmitterID             string          `db:"submitter_id"`
	DepartmentID            string          `db:"department_id"`
	ExpenseDate             time.Time       `db:"expense_date"`
	Vendor                  string          `db:"vendor"`
	Description             string          `db:"description"`
	Amount                  decimal.Decimal `db:"amount"`
	CurrencyCode            string          `db:"currency_code"`
	BaseAmount              decimal.Decimal `db:"base_amount"`
	Status                  string          `db:"status"`
	RequiresFinanceApproval bool            `db:"requires_finance_approval"`
	ReceiptURL              *string         `db:"receipt_url"`
	Notes                   string          `db:"notes"`
	AuditFields
}

// SegmentAllocation is the persistence model for expense segment splits.
type SegmentAllocation struct {
	AllocationID string          `db:"allocation_id"`
	ExpenseID    string          `db:"expense_id"`
	SegmentID    string          `db:"segment_id"`
	Percentage   decimal.Decimal `db:"percentage"`
	Amount       decimal.Decimal `db:"amount"`
	Notes        string          `db:"notes"`
	AuditFields
}
