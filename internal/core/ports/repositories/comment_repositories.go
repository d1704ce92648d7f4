package repositories

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// CommentReader defines read operations for expense comments.
type CommentReader interface {
	// ListCommentsByExpenseID retrieves an expense's comments, oldest first.
	ListCommentsByExpenseID(ctx context.Context, expenseID string) ([]domain.Comment, error)
}

// CommentWriter defines write operations for expense comments.
type CommentWriter interface {
	// SaveComment persists a new comment.
	SaveComment(ctx context.Context, comment domain.Comment) error
}

// CommentRepositoryFacade combines all comment repository interfaces
type CommentRepositoryFacade interface {
	CommentReader
	CommentWriter
}
