package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the persistence model for budgets. Exactly one of SegmentID and
// DepartmentID is non-NULL (enforced by a table check constraint).
type Budget struct {
	BudgetID       string          `db:"budget_id"`
	SegmentID      *string         `db:"segment_id"`
	DepartmentID   *string         `db:"department_id"`
	PeriodType     string          `db:"period_type"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        time.Time       `db:"end_date"`
	LimitAmount    decimal.Decimal `db:"limit_amount"`
	AlertThreshold decimal.Decimal `db:"alert_threshold"`
	AuditFields
}
