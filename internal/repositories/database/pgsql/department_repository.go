package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDepartmentRepository struct {
	db *pgxpool.Pool
}

func newPgxDepartmentRepository(db *pgxpool.Pool) portsrepo.DepartmentRepositoryFacade {
	return &PgxDepartmentRepository{db: db}
}

// Ensure PgxDepartmentRepository implements portsrepo.DepartmentRepositoryFacade
var _ portsrepo.DepartmentRepositoryFacade = (*PgxDepartmentRepository)(nil)

const departmentColumns = `department_id, name, code, description, manager_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanDepartmentRow(row pgx.Row) (models.Department, error) {
	var m models.Department
	err := row.Scan(
		&m.DepartmentID,
		&m.Name,
		&m.Code,
		&m.Description,
		&m.ManagerID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	modelDept := mapping.ToModelDepartment(department)
	query := `
		INSERT INTO departments (` + departmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		modelDept.DepartmentID,
		modelDept.Name,
		modelDept.Code,
		modelDept.Description,
		modelDept.ManagerID,
		modelDept.IsActive,
		modelDept.CreatedAt,
		modelDept.CreatedBy,
		modelDept.LastUpdatedAt,
		modelDept.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: department with code %s already exists", apperrors.ErrDuplicate, department.Code)
		}
		return fmt.Errorf("failed to save department: %w", err)
	}
	return nil
}

func (r *PgxDepartmentRepository) UpdateDepartment(ctx context.Context, department domain.Department) error {
	modelDept := mapping.ToModelDepartment(department)
	query := `
		UPDATE departments SET
			name = $2,
			code = $3,
			description = $4,
			manager_id = $5,
			is_active = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE department_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		modelDept.DepartmentID,
		modelDept.Name,
		modelDept.Code,
		modelDept.Description,
		modelDept.ManagerID,
		modelDept.IsActive,
		modelDept.LastUpdatedAt,
		modelDept.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update department %s: %w", department.DepartmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE department_id = $1;`
	modelDept, err := scanDepartmentRow(r.db.QueryRow(ctx, query, departmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department by ID %s: %w", departmentID, err)
	}
	domainDept := mapping.ToDomainDepartment(modelDept)
	return &domainDept, nil
}

func (r *PgxDepartmentRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments ORDER BY name;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []models.Department{}
	for rows.Next() {
		m, err := scanDepartmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}
	return mapping.ToDomainDepartmentSlice(departments), nil
}
