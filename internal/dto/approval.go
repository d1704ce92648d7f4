package dto

import (
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// DecideApprovalRequest records an approver's decision on an expense.
type DecideApprovalRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comments string `json:"comments"`
}

// ApprovalResponse defines the data returned for one approval step.
type ApprovalResponse struct {
	ApprovalID string     `json:"approvalID"`
	ExpenseID  string     `json:"expenseID"`
	ApproverID string     `json:"approverID"`
	Level      int        `json:"level"`
	Decision   string     `json:"decision"`
	Comments   string     `json:"comments,omitempty"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToApprovalResponse converts a domain.Approval to ApprovalResponse DTO
func ToApprovalResponse(a *domain.Approval) ApprovalResponse {
	return ApprovalResponse{
		ApprovalID: a.ApprovalID,
		ExpenseID:  a.ExpenseID,
		ApproverID: a.ApproverID,
		Level:      a.Level,
		Decision:   string(a.Decision),
		Comments:   a.Comments,
		DecidedAt:  a.DecidedAt,
		CreatedAt:  a.CreatedAt,
	}
}

// ToListApprovalResponse converts domain Approvals to DTOs
func ToListApprovalResponse(as []domain.Approval) []ApprovalResponse {
	res := make([]ApprovalResponse, len(as))
	for i := range as {
		res[i] = ToApprovalResponse(&as[i])
	}
	return res
}

// CreateCommentRequest adds a discussion comment to an expense.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse defines the data returned for one comment.
type CommentResponse struct {
	CommentID string    `json:"commentID"`
	ExpenseID string    `json:"expenseID"`
	AuthorID  string    `json:"authorID"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCommentResponse converts a domain.Comment to CommentResponse DTO
func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID: c.CommentID,
		ExpenseID: c.ExpenseID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

// ToListCommentResponse converts domain Comments to DTOs
func ToListCommentResponse(cs []domain.Comment) []CommentResponse {
	res := make([]CommentResponse, len(cs))
	for i := range cs {
		res[i] = ToCommentResponse(&cs[i])
	}
	return res
}
