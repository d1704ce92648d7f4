package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	portssvc "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/services"
)

// commentService manages free-form discussion on expenses.
type commentService struct {
	commentRepo portsrepo.CommentRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
	notifier    portssvc.NotifierSvc
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo portsrepo.CommentRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, notifier portssvc.NotifierSvc) portssvc.CommentSvcFacade {
	return &commentService{
		commentRepo: commentRepo,
		expenseRepo: expenseRepo,
		notifier:    notifier,
	}
}

var _ portssvc.CommentSvcFacade = (*commentService)(nil)

func (s *commentService) ListComments(ctx context.Context, expenseID string) ([]domain.Comment, error) {
	comments, err := s.commentRepo.ListCommentsByExpenseID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

func (s *commentService) AddComment(ctx context.Context, expenseID string, authorUserID string, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: comment text cannot be empty", apperrors.ErrValidation)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for comment: %w", err)
	}

	now := time.Now()
	comment := domain.Comment{
		CommentID: uuid.NewString(),
		ExpenseID: expenseID,
		AuthorID:  authorUserID,
		Text:      body,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: authorUserID,
		},
	}

	if err := s.commentRepo.SaveComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	if expense.SubmitterID != authorUserID {
		s.notifier.Notify(ctx, expense.SubmitterID, domain.NotifyCommentAdded,
			"New comment on your expense",
			fmt.Sprintf("A comment was added to your expense from %s.", expense.Vendor),
			expenseID,
		)
	}

	return &comment, nil
}
