package mapping

import (
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
)

// ToModelApproval converts a domain Approval to a model Approval
func ToModelApproval(d domain.Approval) models.Approval {
	return models.Approval{
		ApprovalID:  d.ApprovalID,
		ExpenseID:   d.ExpenseID,
		ApproverID:  d.ApproverID,
		Level:       d.Level,
		Decision:    string(d.Decision),
		Comments:    d.Comments,
		DecidedAt:   d.DecidedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApproval converts a model Approval to a domain Approval
func ToDomainApproval(m models.Approval) domain.Approval {
	return domain.Approval{
		ApprovalID:  m.ApprovalID,
		ExpenseID:   m.ExpenseID,
		ApproverID:  m.ApproverID,
		Level:       m.Level,
		Decision:    domain.ApprovalDecision(m.Decision),
		Comments:    m.Comments,
		DecidedAt:   m.DecidedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApprovalSlice converts model Approvals to domain Approvals
func ToDomainApprovalSlice(ms []models.Approval) []domain.Approval {
	ds := make([]domain.Approval, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApproval(m)
	}
	return ds
}

// ToModelComment converts a domain Comment to a model Comment
func ToModelComment(d domain.Comment) models.Comment {
	return models.Comment{
		CommentID:   d.CommentID,
		ExpenseID:   d.ExpenseID,
		AuthorID:    d.AuthorID,
		Text:        d.Text,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainComment converts a model Comment to a domain Comment
func ToDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		CommentID:   m.CommentID,
		ExpenseID:   m.ExpenseID,
		AuthorID:    m.AuthorID,
		Text:        m.Text,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCommentSlice converts model Comments to domain Comments
func ToDomainCommentSlice(ms []models.Comment) []domain.Comment {
	ds := make([]domain.Comment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainComment(m)
	}
	return ds
}
