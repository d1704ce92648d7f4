package pgsql

import (
	"context"
	"fmt"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCommentRepository struct {
	db *pgxpool.Pool
}

func newPgxCommentRepository(db *pgxpool.Pool) portsrepo.CommentRepositoryFacade {
	return &PgxCommentRepository{db: db}
}

// Ensure PgxCommentRepository implements portsrepo.CommentRepositoryFacade
var _ portsrepo.CommentRepositoryFacade = (*PgxCommentRepository)(nil)

func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	modelComment := mapping.ToModelComment(comment)
	query := `
		INSERT INTO comments (comment_id, expense_id, author_id, text, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		modelComment.CommentID,
		modelComment.ExpenseID,
		modelComment.AuthorID,
		modelComment.Text,
		modelComment.CreatedAt,
		modelComment.CreatedBy,
		modelComment.LastUpdatedAt,
		modelComment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save comment %s: %w", comment.CommentID, err)
	}
	return nil
}

func (r *PgxCommentRepository) ListCommentsByExpenseID(ctx context.Context, expenseID string) ([]domain.Comment, error) {
	query := `
		SELECT comment_id, expense_id, author_id, text, created_at, created_by, last_updated_at, last_updated_by
		FROM comments
		WHERE expense_id = $1
		ORDER BY created_at, comment_id;
	`
	rows, err := r.db.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var m models.Comment
		err := rows.Scan(
			&m.CommentID,
			&m.ExpenseID,
			&m.AuthorID,
			&m.Text,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row for expense %s: %w", expenseID, err)
		}
		comments = append(comments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows for expense %s: %w", expenseID, err)
	}
	return mapping.ToDomainCommentSlice(comments), nil
}
