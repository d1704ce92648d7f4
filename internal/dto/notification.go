package dto

import (
	"time"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// NotificationResponse defines the data returned for one notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	ExpenseID      string    `json:"expenseID,omitempty"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToNotificationResponse converts a domain.Notification to its DTO
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		ExpenseID:      n.ExpenseID,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// ToListNotificationResponse converts domain Notifications to DTOs
func ToListNotificationResponse(ns []domain.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(ns))
	for i := range ns {
		res[i] = ToNotificationResponse(&ns[i])
	}
	return res
}
