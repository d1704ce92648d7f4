package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/mapping"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditLogRepository persists the append-only audit trail. There are no
// UPDATE or DELETE statements here on purpose.
type PgxAuditLogRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditLogRepository(db *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{db: db}
}

// Ensure PgxAuditLogRepository implements portsrepo.AuditLogRepositoryFacade
var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	modelEntry, err := mapping.ToModelAuditLog(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize audit changes for entry %s: %w", entry.AuditLogID, err)
	}
	query := `
		INSERT INTO audit_logs (audit_log_id, actor_id, action, entity_type, entity_id, changes, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.db.Exec(ctx, query,
		modelEntry.AuditLogID,
		modelEntry.ActorID,
		modelEntry.Action,
		modelEntry.EntityType,
		modelEntry.EntityID,
		modelEntry.Changes,
		modelEntry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log %s: %w", entry.AuditLogID, err)
	}
	return nil
}

// ListAuditLogs reads the trail in timestamp ascending order with token-based
// keyset pagination. Ascending order is the canonical read order for audits:
// the trail replays oldest first.
func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, filter portsrepo.AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `
		SELECT audit_log_id, actor_id, action, entity_type, entity_id, changes, timestamp
		FROM audit_logs
		WHERE 1=1`
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += " AND " + clause + "$" + strconv.Itoa(len(args))
	}

	if filter.ActorID != "" {
		addArg("actor_id = ", filter.ActorID)
	}
	if filter.EntityType != "" {
		addArg("entity_type = ", filter.EntityType)
	}
	if filter.EntityID != "" {
		addArg("entity_id = ", filter.EntityID)
	}
	if filter.From != nil {
		addArg("timestamp >= ", *filter.From)
	}
	if filter.To != nil {
		addArg("timestamp <= ", *filter.To)
	}

	if nextToken != nil && *nextToken != "" {
		lastTimestamp, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		addArg("timestamp > ", lastTimestamp)
	}

	args = append(args, fetchLimit)
	query += " ORDER BY timestamp, audit_log_id LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	entries := make([]models.AuditLog, 0, fetchLimit)
	for rows.Next() {
		var m models.AuditLog
		err := rows.Scan(
			&m.AuditLogID,
			&m.ActorID,
			&m.Action,
			&m.EntityType,
			&m.EntityID,
			&m.Changes,
			&m.Timestamp,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating audit log rows: %w", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := pagination.EncodeDateBasedToken(entries[limit-1].Timestamp)
		nextTokenVal = &token
	}

	return mapping.ToDomainAuditLogSlice(entries), nextTokenVal, nil
}
