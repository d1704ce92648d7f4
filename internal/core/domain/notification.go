package domain

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotifyExpenseSubmitted NotificationType = "EXPENSE_SUBMITTED"
	NotifyExpenseApproved  NotificationType = "EXPENSE_APPROVED"
	NotifyExpenseRejected  NotificationType = "EXPENSE_REJECTED"
	NotifyBudgetAlert      NotificationType = "BUDGET_ALERT"
	NotifyCommentAdded     NotificationType = "COMMENT_ADDED"
)

// Notification is an in-app message for one user. Delivery is best-effort:
// a failed notification never fails the workflow transition that emitted it.
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	UserID         string           `json:"userID"`         // FK -> User (recipient)
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	ExpenseID      string           `json:"expenseID,omitempty"` // Related expense, empty for budget alerts
	IsRead         bool             `json:"isRead"`
	AuditFields
}
