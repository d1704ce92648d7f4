package services

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// NotifierSvc delivers in-app notifications. Delivery is fire-and-forget:
// implementations log failures but never propagate them, so a failed
// notification cannot fail a workflow transition.
type NotifierSvc interface {
	Notify(ctx context.Context, userID string, notifType domain.NotificationType, title, message, expenseID string)
}

// NotificationReaderSvc reads a user's notifications.
type NotificationReaderSvc interface {
	// ListNotifications retrieves the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error)

	// MarkRead flags one of the user's notifications as read.
	MarkRead(ctx context.Context, userID, notificationID string) error
}

// NotificationSvcFacade combines all notification service interfaces
type NotificationSvcFacade interface {
	NotifierSvc
	NotificationReaderSvc
}
