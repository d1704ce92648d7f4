package mapping

import (
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:       d.BudgetID,
		SegmentID:      nilIfEmpty(d.SegmentID),
		DepartmentID:   nilIfEmpty(d.DepartmentID),
		PeriodType:     string(d.PeriodType),
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		LimitAmount:    d.LimitAmount,
		AlertThreshold: d.AlertThreshold,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:       m.BudgetID,
		SegmentID:      derefOrEmpty(m.SegmentID),
		DepartmentID:   derefOrEmpty(m.DepartmentID),
		PeriodType:     domain.BudgetPeriodType(m.PeriodType),
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		LimitAmount:    m.LimitAmount,
		AlertThreshold: m.AlertThreshold,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetSlice converts model Budgets to domain Budgets
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
