package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus tracks an expense through the approval workflow.
// DRAFT -> SUBMITTED -> {APPROVED, REJECTED}; the last two are terminal.
type ExpenseStatus string

const (
	ExpenseDraft     ExpenseStatus = "DRAFT"
	ExpenseSubmitted ExpenseStatus = "SUBMITTED"
	ExpenseApproved  ExpenseStatus = "APPROVED"
	ExpenseRejected  ExpenseStatus = "REJECTED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s ExpenseStatus) IsTerminal() bool {
	return s == ExpenseApproved || s == ExpenseRejected
}

// Expense is a submitted cost, owned by its submitter. Only the submitter may
// mutate it, and only while it is in DRAFT; approvers change status only.
type Expense struct {
	ExpenseID    string          `json:"expenseID"`    // Primary Key (UUID)
	SubmitterID  string          `json:"submitterID"`  // FK -> User (Not Null)
	DepartmentID string          `json:"departmentID"` // FK -> Department (Not Null)
	ExpenseDate  time.Time       `json:"expenseDate"`  // Date the cost was incurred
	Vendor       string          `json:"vendor"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`       // In CurrencyCode; positive
	CurrencyCode string          `json:"currencyCode"` // FK -> Currency
	BaseAmount   decimal.Decimal `json:"baseAmount"`   // Amount converted to the base currency, 2 dp
	Status       ExpenseStatus   `json:"status"`
	// RequiresFinanceApproval adds a second (finance admin) approval level.
	RequiresFinanceApproval bool   `json:"requiresFinanceApproval"`
	ReceiptURL              string `json:"receiptURL"` // Nullable
	Notes                   string `json:"notes"`      // Nullable
	Allocations             []SegmentAllocation `json:"allocations,omitempty"`
	AuditFields
}

// SegmentAllocation assigns a percentage portion of one expense to one segment.
// For a given expense, the percentages of all its allocations must sum to
// exactly 100 whenever any allocation exists.
type SegmentAllocation struct {
	AllocationID string          `json:"allocationID"` // Primary Key (UUID)
	ExpenseID    string          `json:"expenseID"`    // FK -> Expense (Not Null)
	SegmentID    string          `json:"segmentID"`    // FK -> Segment (Not Null)
	Percentage   decimal.Decimal `json:"percentage"`   // In (0, 100]
	Amount       decimal.Decimal `json:"amount"`       // Derived: baseAmount * percentage / 100, 2 dp
	Notes        string          `json:"notes"`        // Nullable
	AuditFields
}
