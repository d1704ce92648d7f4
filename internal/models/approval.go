package models

import "time"

// Approval is the persistence model for approval steps. Unique per
// (expense_id, level).
type Approval struct {
	ApprovalID string     `db:"approval_id"`
	ExpenseID  string     `db:"expense_id"`
	ApproverID string     `db:"approver_id"`
	Level      int        `db:"level"`
	Decision   string     `db:"decision"`
	Comments   string     `db:"comments"`
	DecidedAt  *time.Time `db:"decided_at"`
	AuditFields
}

// Comment is the persistence model for expense discussion entries.
type Comment struct {
	CommentID string `db:"comment_id"`
	ExpenseID string `db:"expense_id"`
	AuthorID  string `db:"author_id"`
	Text      string `db:"text"`
	AuditFields
}
