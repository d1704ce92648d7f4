package domain

// Department represents a cost center that users belong to and budgets can scope to.
type Department struct {
	DepartmentID string `json:"departmentID"` // Primary Key (UUID)
	Name         string `json:"name"`         // Unique
	Code         string `json:"code"`         // Short unique code (e.g., ENG, MKT)
	Description  string `json:"description"`
	ManagerID    string `json:"managerID"` // FK -> User, empty when no manager assigned
	IsActive     bool   `json:"isActive"`
	AuditFields
}
