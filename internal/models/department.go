package models

// Department is the persistence model for cost centers.
type Department struct {
	DepartmentID string  `db:"department_id"`
	Name         string  `db:"name"`
	Code         string  `db:"code"`
	Description  string  `db:"description"`
	ManagerID    *string `db:"manager_id"` // NULL when no manager assigned
	IsActive     bool    `db:"is_active"`
	AuditFields
}
