package models

// Notification is the persistence model for in-app notifications.
type Notification struct {
	NotificationID string  `db:"notification_id"`
	UserID         string  `db:"user_id"`
	Type           string  `db:"type"`
	Title          string  `db:"title"`
	Message        string  `db:"message"`
	ExpenseID      *string `db:"expense_id"` // NULL for budget alerts without an expense
	IsRead         bool    `db:"is_read"`
	AuditFields
}
