package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// insertAuditLogTx appends one audit trail entry inside an open transaction.
// Workflow writes (submit, decide, allocation replacement) use it so the
// state change and its audit record land atomically.
func insertAuditLogTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLog) error {
	modelEntry, err := mapping.ToModelAuditLog(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to serialize audit changes for entry "+entry.AuditLogID, err)
	}
	query := `
		INSERT INTO audit_logs (audit_log_id, actor_id, action, entity_type, entity_id, changes, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, query,
		modelEntry.AuditLogID,
		modelEntry.ActorID,
		modelEntry.Action,
		modelEntry.EntityType,
		modelEntry.EntityID,
		modelEntry.Changes,
		modelEntry.Timestamp,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log "+modelEntry.AuditLogID, err)
	}
	return nil
}
