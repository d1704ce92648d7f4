package pgsql

import (
	"context"
	"fmt"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxApprovalRepository struct {
	BaseRepository
}

func newPgxApprovalRepository(pool *pgxpool.Pool) portsrepo.ApprovalRepositoryWithTx {
	return &PgxApprovalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxApprovalRepository implements portsrepo.ApprovalRepositoryWithTx
var _ portsrepo.ApprovalRepositoryWithTx = (*PgxApprovalRepository)(nil)

const approvalColumns = `approval_id, expense_id, approver_id, level, decision, comments, decided_at, created_at, created_by, last_updated_at, last_updated_by`

func scanApprovalRow(row pgx.Row) (models.Approval, error) {
	var m models.Approval
	err := row.Scan(
		&m.ApprovalID,
		&m.ExpenseID,
		&m.ApproverID,
		&m.Level,
		&m.Decision,
		&m.Comments,
		&m.DecidedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxApprovalRepository) FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error) {
	query := `
		SELECT ` + approvalColumns + `
		FROM approvals
		WHERE expense_id = $1
		ORDER BY level;
	`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	approvals := []models.Approval{}
	for rows.Next() {
		m, err := scanApprovalRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval row for expense %s: %w", expenseID, err)
		}
		approvals = append(approvals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approval rows for expense %s: %w", expenseID, err)
	}
	return mapping.ToDomainApprovalSlice(approvals), nil
}

// ListPendingApprovalsForApprover returns pending steps that are currently
// actionable: the expense must still be SUBMITTED and no lower level may be
// undecided ahead of this one.
func (r *PgxApprovalRepository) ListPendingApprovalsForApprover(ctx context.Context, approverID string) ([]domain.Approval, error) {
	query := `
		SELECT a.approval_id, a.expense_id, a.approver_id, a.level, a.decision, a.comments, a.decided_at, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM approvals a
		JOIN expenses e ON a.expense_id = e.expense_id
		WHERE a.approver_id = $1
		  AND a.decision = $2
		  AND e.status = $3
		  AND NOT EXISTS (
			SELECT 1 FROM approvals lower
			WHERE lower.expense_id = a.expense_id
			  AND lower.level < a.level
			  AND lower.decision = $2
		  )
		ORDER BY a.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, approverID, string(domain.ApprovalPending), string(domain.ExpenseSubmitted))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending approvals for approver %s: %w", approverID, err)
	}
	defer rows.Close()

	approvals := []models.Approval{}
	for rows.Next() {
		m, err := scanApprovalRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending approval row: %w", err)
		}
		approvals = append(approvals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending approval rows: %w", err)
	}
	return mapping.ToDomainApprovalSlice(approvals), nil
}

// RecordDecision persists one approval decision, the resulting expense status
// and the audit entry atomically. Both UPDATEs are guarded on the prior state,
// so two concurrent decisions at the same level produce exactly one winner:
// the loser's guard matches zero rows and the whole transaction rolls back
// with ErrInvalidTransition.
func (r *PgxApprovalRepository) RecordDecision(ctx context.Context, approval domain.Approval, newStatus domain.ExpenseStatus, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelApproval := mapping.ToModelApproval(approval)
	approvalQuery := `
		UPDATE approvals SET
			decision = $2,
			comments = $3,
			decided_at = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE approval_id = $1 AND decision = $7;
	`
	tag, err := tx.Exec(ctx, approvalQuery,
		modelApproval.ApprovalID,
		modelApproval.Decision,
		modelApproval.Comments,
		modelApproval.DecidedAt,
		modelApproval.LastUpdatedAt,
		modelApproval.LastUpdatedBy,
		string(domain.ApprovalPending),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record decision for approval "+approval.ApprovalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: approval %s is already decided", apperrors.ErrInvalidTransition, approval.ApprovalID)
	}

	expenseQuery := `
		UPDATE expenses SET
			status = $2,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE expense_id = $1 AND status = $5;
	`
	tag, err = tx.Exec(ctx, expenseQuery,
		modelApproval.ExpenseID,
		string(newStatus),
		modelApproval.LastUpdatedAt,
		modelApproval.LastUpdatedBy,
		string(domain.ExpenseSubmitted),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for expense "+approval.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s is not in SUBMITTED", apperrors.ErrInvalidTransition, approval.ExpenseID)
	}

	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
