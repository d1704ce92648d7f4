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

type PgxSegmentRepository struct {
	db *pgxpool.Pool
}

func newPgxSegmentRepository(db *pgxpool.Pool) portsrepo.SegmentRepositoryFacade {
	return &PgxSegmentRepository{db: db}
}

// Ensure PgxSegmentRepository implements portsrepo.SegmentRepositoryFacade
var _ portsrepo.SegmentRepositoryFacade = (*PgxSegmentRepository)(nil)

const segmentColumns = `segment_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanSegmentRow(row pgx.Row) (models.Segment, error) {
	var m models.Segment
	err := row.Scan(
		&m.SegmentID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSegmentRepository) SaveSegment(ctx context.Context, segment domain.Segment) error {
	modelSegment := mapping.ToModelSegment(segment)
	query := `
		INSERT INTO segments (` + segmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		modelSegment.SegmentID,
		modelSegment.Name,
		modelSegment.Description,
		modelSegment.IsActive,
		modelSegment.CreatedAt,
		modelSegment.CreatedBy,
		modelSegment.LastUpdatedAt,
		modelSegment.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: segment named %s already exists", apperrors.ErrDuplicate, segment.Name)
		}
		return fmt.Errorf("failed to save segment: %w", err)
	}
	return nil
}

func (r *PgxSegmentRepository) UpdateSegment(ctx context.Context, segment domain.Segment) error {
	modelSegment := mapping.ToModelSegment(segment)
	query := `
		UPDATE segments SET
			name = $2,
			description = $3,
			is_active = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE segment_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		modelSegment.SegmentID,
		modelSegment.Name,
		modelSegment.Description,
		modelSegment.IsActive,
		modelSegment.LastUpdatedAt,
		modelSegment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update segment %s: %w", segment.SegmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSegmentRepository) FindSegmentByID(ctx context.Context, segmentID string) (*domain.Segment, error) {
	query := `SELECT ` + segmentColumns + ` FROM segments WHERE segment_id = $1;`
	modelSegment, err := scanSegmentRow(r.db.QueryRow(ctx, query, segmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find segment by ID %s: %w", segmentID, err)
	}
	domainSegment := mapping.ToDomainSegment(modelSegment)
	return &domainSegment, nil
}

func (r *PgxSegmentRepository) FindSegmentsByIDs(ctx context.Context, segmentIDs []string) (map[string]domain.Segment, error) {
	if len(segmentIDs) == 0 {
		return map[string]domain.Segment{}, nil
	}
	query := `SELECT ` + segmentColumns + ` FROM segments WHERE segment_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, segmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments by IDs: %w", err)
	}
	defer rows.Close()

	segments := make(map[string]domain.Segment, len(segmentIDs))
	for rows.Next() {
		m, err := scanSegmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment row: %w", err)
		}
		segments[m.SegmentID] = mapping.ToDomainSegment(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segment rows: %w", err)
	}
	return segments, nil
}

func (r *PgxSegmentRepository) ListSegments(ctx context.Context, activeOnly bool) ([]domain.Segment, error) {
	query := `SELECT ` + segmentColumns + ` FROM segments`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	segments := []models.Segment{}
	for rows.Next() {
		m, err := scanSegmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment row: %w", err)
		}
		segments = append(segments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segment rows: %w", err)
	}
	return mapping.ToDomainSegmentSlice(segments), nil
}

func (r *PgxSegmentRepository) CountAllocationsForSegment(ctx context.Context, segmentID string) (int, error) {
	query := `SELECT COUNT(*) FROM segment_allocations WHERE segment_id = $1;`
	var count int
	if err := r.db.QueryRow(ctx, query, segmentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count allocations for segment %s: %w", segmentID, err)
	}
	return count, nil
}
