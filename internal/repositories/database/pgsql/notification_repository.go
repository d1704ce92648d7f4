package pgsql

import (
	"context"
	"fmt"

	"github.com/aakritisaxena/ExpenseManagement/internal/apperrors"
	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
	portsrepo "github.com/aakritisaxena/ExpenseManagement/internal/core/ports/repositories"
	"github.com/aakritisaxena/ExpenseManagement/internal/models"
	"github.com/aakritisaxena/ExpenseManagement/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	db *pgxpool.Pool
}

func newPgxNotificationRepository(db *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{db: db}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const notificationColumns = `notification_id, user_id, type, title, message, expense_id, is_read, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	modelNotification := mapping.ToModelNotification(notification)
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		modelNotification.NotificationID,
		modelNotification.UserID,
		modelNotification.Type,
		modelNotification.Title,
		modelNotification.Message,
		modelNotification.ExpenseID,
		modelNotification.IsRead,
		modelNotification.CreatedAt,
		modelNotification.CreatedBy,
		modelNotification.LastUpdatedAt,
		modelNotification.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", notification.NotificationID, err)
	}
	return nil
}

func (r *PgxNotificationRepository) ListNotificationsForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3;`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications for user %s: %w", userID, err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(
			&m.NotificationID,
			&m.UserID,
			&m.Type,
			&m.Title,
			&m.Message,
			&m.ExpenseID,
			&m.IsRead,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return mapping.ToDomainNotificationSlice(notifications), nil
}

// MarkNotificationRead flips the read flag. Scoped by user_id so one user
// cannot mark another user's notifications.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	query := `
		UPDATE notifications SET is_read = TRUE, last_updated_at = NOW(), last_updated_by = $1
		WHERE notification_id = $2 AND user_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, userID, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
