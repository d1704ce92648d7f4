package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
	"github.com/aakritisaxena/ExpenseManagement/internal/dto"
)

// departmentService provides department management.
type departmentService struct {
	departmentRepo portsrepo.DepartmentRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(departmentRepo portsrepo.DepartmentRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.DepartmentSvcFacade {
	return &departmentService{
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
	}
}

var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	department, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return department, nil
}

func (s *departmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	departments, err := s.departmentRepo.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	if departments == nil {
		departments = []domain.Department{}
	}
	return departments, nil
}

func (s *departmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error) {
	if req.ManagerID != "" {
		if err := s.ensureManager(ctx, req.ManagerID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	department := domain.Department{
		DepartmentID: uuid.NewString(),
		Name:         req.Name,
		Code:         req.Code,
		Description:  req.Description,
		ManagerID:    req.ManagerID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.departmentRepo.SaveDepartment(ctx, department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return &department, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest, requestingUserID string) (*domain.Department, error) {
	department, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find department for update: %w", err)
	}

	if req.Name != nil {
		department.Name = *req.Name
	}
	if req.Description != nil {
		department.Description = *req.Description
	}
	if req.ManagerID != nil {
		if *req.ManagerID != "" {
			if err := s.ensureManager(ctx, *req.ManagerID); err != nil {
				return nil, err
			}
		}
		department.ManagerID = *req.ManagerID
	}
	if req.IsActive != nil {
		department.IsActive = *req.IsActive
	}
	department.LastUpdatedAt = time.Now()
	department.LastUpdatedBy = requestingUserID

	if err := s.departmentRepo.UpdateDepartment(ctx, *department); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	return department, nil
}

// ensureManager verifies the referenced user exists and holds the manager role.
func (s *departmentService) ensureManager(ctx context.Context, managerID string) error {
	manager, err := s.userRepo.FindUserByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: manager %s not found", apperrors.ErrValidation, managerID)
		}
		return fmt.Errorf("failed to validate manager: %w", err)
	}
	if !manager.IsManager() {
		return fmt.Errorf("%w: user %s does not hold the manager role", apperrors.ErrValidation, managerID)
	}
	return nil
}
