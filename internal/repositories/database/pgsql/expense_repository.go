package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/mapping"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense and allocation data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryWithTx {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryWithTx
var _ portsrepo.ExpenseRepositoryWithTx = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, submitter_id, department_id, expense_date, vendor, description, amount, currency_code, base_amount, status, requires_finance_approval, receipt_url, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanExpenseRow(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.SubmitterID,
		&m.DepartmentID,
		&m.ExpenseDate,
		&m.Vendor,
		&m.Description,
		&m.Amount,
		&m.CurrencyCode,
		&m.BaseAmount,
		&m.Status,
		&m.RequiresFinanceApproval,
		&m.ReceiptURL,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	modelExpense := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelExpense.ExpenseID,
		modelExpense.SubmitterID,
		modelExpense.DepartmentID,
		modelExpense.ExpenseDate,
		modelExpense.Vendor,
		modelExpense.Description,
		modelExpense.Amount,
		modelExpense.CurrencyCode,
		modelExpense.BaseAmount,
		modelExpense.Status,
		modelExpense.RequiresFinanceApproval,
		modelExpense.ReceiptURL,
		modelExpense.Notes,
		modelExpense.CreatedAt,
		modelExpense.CreatedBy,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	modelExpense := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses SET
			expense_date = $2,
			vendor = $3,
			description = $4,
			amount = $5,
			currency_code = $6,
			base_amount = $7,
			status = $8,
			requires_finance_approval = $9,
			receipt_url = $10,
			notes = $11,
			last_updated_at = $12,
			last_updated_by = $13
		WHERE expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelExpense.ExpenseID,
		modelExpense.ExpenseDate,
		modelExpense.Vendor,
		modelExpense.Description,
		modelExpense.Amount,
		modelExpense.CurrencyCode,
		modelExpense.BaseAmount,
		modelExpense.Status,
		modelExpense.RequiresFinanceApproval,
		modelExpense.ReceiptURL,
		modelExpense.Notes,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpense removes a draft expense and its allocations in one transaction.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM segment_allocations WHERE expense_id = $1;`, expenseID); err != nil {
		return apperrors.NewAppError(500, "failed to delete allocations for expense "+expenseID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	modelExpense, err := scanExpenseRow(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	domainExpense := mapping.ToDomainExpense(modelExpense)
	return &domainExpense, nil
}

func (r *PgxExpenseRepository) FindExpenseWithAllocations(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := r.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	allocations, err := r.FindAllocationsByExpenseID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Allocations = allocations
	return expense, nil
}

const allocationColumns = `allocation_id, expense_id, segment_id, percentage, amount, notes, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxExpenseRepository) FindAllocationsByExpenseID(ctx context.Context, expenseID string) ([]domain.SegmentAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM segment_allocations
		WHERE expense_id = $1
		ORDER BY created_at, allocation_id;
	`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	allocations := []models.SegmentAllocation{}
	for rows.Next() {
		var m models.SegmentAllocation
		err := rows.Scan(
			&m.AllocationID,
			&m.ExpenseID,
			&m.SegmentID,
			&m.Percentage,
			&m.Amount,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row for expense %s: %w", expenseID, err)
		}
		allocations = append(allocations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows for expense %s: %w", expenseID, err)
	}
	return mapping.ToDomainSegmentAllocationSlice(allocations), nil
}

// ListExpenses retrieves expenses matching the filter with token-based keyset
// pagination, ordered by expense_date DESC with created_at DESC as tie-breaker.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to decide whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += " AND " + clause + "$" + strconv.Itoa(len(args))
	}

	if filter.SubmitterID != "" {
		addArg("submitter_id = ", filter.SubmitterID)
	}
	if filter.DepartmentID != "" {
		addArg("department_id = ", filter.DepartmentID)
	}
	if filter.Status != "" {
		addArg("status = ", string(filter.Status))
	}
	if filter.DateFrom != nil {
		addArg("expense_date >= ", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg("expense_date <= ", *filter.DateTo)
	}

	if nextToken != nil && *nextToken != "" {
		lastExpenseDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastExpenseDate, lastCreatedAt)
		query += " AND (expense_date, created_at) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY expense_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0, fetchLimit)
	for rows.Next() {
		m, err := scanExpenseRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	var nextTokenVal *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[limit-1]
		token := pagination.EncodeToken(last.ExpenseDate, last.CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainExpenseSlice(expenses), nextTokenVal, nil
}

const allocationInsertQuery = `
	INSERT INTO segment_allocations (allocation_id, expense_id, segment_id, percentage, amount, notes, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// ReplaceAllocations swaps the entire allocation set of one expense within a
// DB transaction. The expense row is locked first so concurrent replacements
// for the same expense serialize, and the audit entry lands atomically with
// the new split.
func (r *PgxExpenseRepository) ReplaceAllocations(ctx context.Context, expenseID string, allocations []domain.SegmentAllocation, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the parent expense row for the duration of the swap.
	var lockedID string
	err = tx.QueryRow(ctx, `SELECT expense_id FROM expenses WHERE expense_id = $1 FOR UPDATE;`, expenseID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock expense "+expenseID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM segment_allocations WHERE expense_id = $1;`, expenseID); err != nil {
		return apperrors.NewAppError(500, "failed to clear allocations for expense "+expenseID, err)
	}

	if len(allocations) > 0 {
		batch := &pgx.Batch{}
		for _, alloc := range allocations {
			modelAlloc := mapping.ToModelSegmentAllocation(alloc)
			batch.Queue(allocationInsertQuery,
				modelAlloc.AllocationID,
				modelAlloc.ExpenseID,
				modelAlloc.SegmentID,
				modelAlloc.Percentage,
				modelAlloc.Amount,
				modelAlloc.Notes,
				modelAlloc.CreatedAt,
				modelAlloc.CreatedBy,
				modelAlloc.LastUpdatedAt,
				modelAlloc.LastUpdatedBy,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert allocations for expense "+expenseID, err)
		}
	}

	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SubmitExpense moves an expense from DRAFT to SUBMITTED and creates its
// approval chain in one transaction. The status change is guarded so only a
// still-DRAFT expense transitions; a concurrent submit loses the guard and
// fails with ErrInvalidTransition.
func (r *PgxExpenseRepository) SubmitExpense(ctx context.Context, expense domain.Expense, approvals []domain.Approval, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelExpense := mapping.ToModelExpense(expense)
	statusQuery := `
		UPDATE expenses SET
			status = $2,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE expense_id = $1 AND status = $5;
	`
	tag, err := tx.Exec(ctx, statusQuery,
		modelExpense.ExpenseID,
		modelExpense.Status,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
		string(domain.ExpenseDraft),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to submit expense "+expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s is not in DRAFT", apperrors.ErrInvalidTransition, expense.ExpenseID)
	}

	approvalQuery := `
		INSERT INTO approvals (approval_id, expense_id, approver_id, level, decision, comments, decided_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, approval := range approvals {
		modelApproval := mapping.ToModelApproval(approval)
		batch.Queue(approvalQuery,
			modelApproval.ApprovalID,
			modelApproval.ExpenseID,
			modelApproval.ApproverID,
			modelApproval.Level,
			modelApproval.Decision,
			modelApproval.Comments,
			modelApproval.DecidedAt,
			modelApproval.CreatedAt,
			modelApproval.CreatedBy,
			modelApproval.LastUpdatedAt,
			modelApproval.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert approval chain for expense "+expense.ExpenseID, err)
	}

	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
