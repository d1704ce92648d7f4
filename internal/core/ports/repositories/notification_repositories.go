package repositories

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// NotificationReader defines read operations for notification data
type NotificationReader interface {
	// ListNotificationsForUser retrieves a user's notifications, newest
	// first, optionally unread only.
	ListNotificationsForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notification data
type NotificationWriter interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// MarkNotificationRead flags one of a user's notifications as read.
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
}

// NotificationRepositoryFacade combines all notification repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
