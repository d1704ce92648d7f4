package dto

import (
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// CreateDepartmentRequest defines the data needed to create a department.
type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=20"`
	Description string `json:"description"`
	ManagerID   string `json:"managerID" binding:"omitempty,uuid"`
}

// UpdateDepartmentRequest defines the mutable fields of a department.
type UpdateDepartmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	ManagerID   *string `json:"managerID" binding:"omitempty,uuid"`
	IsActive    *bool   `json:"isActive"`
}

// DepartmentResponse defines the data returned for a department.
type DepartmentResponse struct {
	DepartmentID string    `json:"departmentID"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Description  string    `json:"description,omitempty"`
	ManagerID    string    `json:"managerID,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToDepartmentResponse converts a domain.Department to DepartmentResponse DTO
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID: d.DepartmentID,
		Name:         d.Name,
		Code:         d.Code,
		Description:  d.Description,
		ManagerID:    d.ManagerID,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
	}
}

// ToListDepartmentResponse converts domain Departments to DTOs
func ToListDepartmentResponse(ds []domain.Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(ds))
	for i := range ds {
		res[i] = ToDepartmentResponse(&ds[i])
	}
	return res
}
