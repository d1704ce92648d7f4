package domain

import "time"

// ApprovalDecision is the state of a single approval step.
type ApprovalDecision string

const (
	ApprovalPending  ApprovalDecision = "PENDING"
	ApprovalApproved ApprovalDecision = "APPROVED"
	ApprovalRejected ApprovalDecision = "REJECTED"
)

// Approval levels in the hierarchy. The manager always decides first; a
// finance admin decides second when the expense requires finance approval.
const (
	ApprovalLevelManager = 1
	ApprovalLevelFinance = 2
)

// Approval is one step of an expense's approval chain. At most one approval
// exists per (expense, level).
type Approval struct {
	ApprovalID string           `json:"approvalID"` // Primary Key (UUID)
	ExpenseID  string           `json:"expenseID"`  // FK -> Expense (Not Null)
	ApproverID string           `json:"approverID"` // FK -> User (Not Null)
	Level      int              `json:"level"`      // 1 = manager, 2 = finance
	Decision   ApprovalDecision `json:"decision"`
	Comments   string           `json:"comments"`  // Nullable
	DecidedAt  *time.Time       `json:"decidedAt"` // Set when the decision is recorded
	AuditFields
}

// Comment is a free-form discussion entry on an expense.
type Comment struct {
	CommentID string `json:"commentID"` // Primary Key (UUID)
	ExpenseID string `json:"expenseID"` // FK -> Expense (Not Null)
	AuthorID  string `json:"authorID"`  // FK -> User (Not Null)
	Text      string `json:"text"`
	AuditFields
}
