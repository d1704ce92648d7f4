package services

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// CommentReaderSvc defines read operations for expense comments
type CommentReaderSvc interface {
	// ListComments retrieves comments on an expense, oldest first.
	ListComments(ctx context.Context, expenseID string) ([]domain.Comment, error)
}

// CommentWriterSvc defines write operations for expense comments
type CommentWriterSvc interface {
	// AddComment appends a comment to an expense and notifies the submitter.
	AddComment(ctx context.Context, expenseID string, authorUserID string, body string) (*domain.Comment, error)
}

// CommentSvcFacade combines all comment-related service interfaces
type CommentSvcFacade interface {
	CommentReaderSvc
	CommentWriterSvc
}
