package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriodType describes the cadence a budget covers.
type BudgetPeriodType string

const (
	PeriodMonthly   BudgetPeriodType = "MONTHLY"
	PeriodQuarterly BudgetPeriodType = "QUARTERLY"
	PeriodYearly    BudgetPeriodType = "YEARLY"
)

// Budget is a spending limit scoped to either a segment or a department
// (mutually exclusive) for a date period. The spent amount is always derived
// from approved expenses, never stored.
type Budget struct {
	BudgetID     string           `json:"budgetID"`               // Primary Key (UUID)
	SegmentID    string           `json:"segmentID,omitempty"`    // FK -> Segment; empty for department scope
	DepartmentID string           `json:"departmentID,omitempty"` // FK -> Department; empty for segment scope
	PeriodType   BudgetPeriodType `json:"periodType"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      time.Time        `json:"endDate"`
	LimitAmount  decimal.Decimal  `json:"limitAmount"`
	// AlertThreshold is the spent/limit fraction above which the budget alerts.
	AlertThreshold decimal.Decimal `json:"alertThreshold"` // Default 0.8
	AuditFields
}

// IsSegmentScoped reports whether the budget applies to a segment rather than
// a department.
func (b *Budget) IsSegmentScoped() bool {
	return b.SegmentID != ""
}

// BudgetStatus is the derived consumption view of a budget.
type BudgetStatus struct {
	Budget         Budget          `json:"budget"`
	SpentAmount    decimal.Decimal `json:"spentAmount"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"` // 0 when the limit is zero
	AlertTriggered bool            `json:"alertTriggered"`
}
