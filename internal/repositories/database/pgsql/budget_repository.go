package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBudgetRepository struct {
	db *pgxpool.Pool
}

func newPgxBudgetRepository(db *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{db: db}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, segment_id, department_id, period_type, start_date, end_date, limit_amount, alert_threshold, created_at, created_by, last_updated_at, last_updated_by`

func scanBudgetRow(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.SegmentID,
		&m.DepartmentID,
		&m.PeriodType,
		&m.StartDate,
		&m.EndDate,
		&m.LimitAmount,
		&m.AlertThreshold,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		modelBudget.BudgetID,
		modelBudget.SegmentID,
		modelBudget.DepartmentID,
		modelBudget.PeriodType,
		modelBudget.StartDate,
		modelBudget.EndDate,
		modelBudget.LimitAmount,
		modelBudget.AlertThreshold,
		modelBudget.CreatedAt,
		modelBudget.CreatedBy,
		modelBudget.LastUpdatedAt,
		modelBudget.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget %s: %w", budget.BudgetID, err)
	}
	return nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets SET
			period_type = $2,
			start_date = $3,
			end_date = $4,
			limit_amount = $5,
			alert_threshold = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE budget_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		modelBudget.BudgetID,
		modelBudget.PeriodType,
		modelBudget.StartDate,
		modelBudget.EndDate,
		modelBudget.LimitAmount,
		modelBudget.AlertThreshold,
		modelBudget.LastUpdatedAt,
		modelBudget.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", budget.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	modelBudget, err := scanBudgetRow(r.db.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}
	domainBudget := mapping.ToDomainBudget(modelBudget)
	return &domainBudget, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets ORDER BY start_date DESC, budget_id;`
	return r.queryBudgets(ctx, query)
}

func (r *PgxBudgetRepository) FindBudgetsForSegment(ctx context.Context, segmentID string, at time.Time) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE segment_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date;
	`
	return r.queryBudgets(ctx, query, segmentID, at)
}

func (r *PgxBudgetRepository) FindBudgetsForDepartment(ctx context.Context, departmentID string, at time.Time) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE department_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date;
	`
	return r.queryBudgets(ctx, query, departmentID, at)
}

func (r *PgxBudgetRepository) queryBudgets(ctx context.Context, query string, args ...interface{}) ([]domain.Budget, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		m, err := scanBudgetRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}
	return mapping.ToDomainBudgetSlice(budgets), nil
}

// SumSegmentAllocations totals allocation amounts for a segment over approved
// expenses dated within the period. Only APPROVED expenses count toward spend.
func (r *PgxBudgetRepository) SumSegmentAllocations(ctx context.Context, segmentID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(sa.amount), 0)
		FROM segment_allocations sa
		JOIN expenses e ON sa.expense_id = e.expense_id
		WHERE sa.segment_id = $1
		  AND e.status = $2
		  AND e.expense_date >= $3 AND e.expense_date <= $4;
	`
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, query, segmentID, string(domain.ExpenseApproved), from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum allocations for segment %s: %w", segmentID, err)
	}
	return total, nil
}

// SumDepartmentExpenses totals base amounts of approved expenses for a
// department dated within the period.
func (r *PgxBudgetRepository) SumDepartmentExpenses(ctx context.Context, departmentID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(base_amount), 0)
		FROM expenses
		WHERE department_id = $1
		  AND status = $2
		  AND expense_date >= $3 AND expense_date <= $4;
	`
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, query, departmentID, string(domain.ExpenseApproved), from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses for department %s: %w", departmentID, err)
	}
	return total, nil
}
