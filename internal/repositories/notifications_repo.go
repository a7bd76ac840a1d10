package repositories

import (
	"context"

	"github.com/kenancosic/eRents-sub000/internal/models"

	"github.com/google/uuid"
)

type NotificationsRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

type notificationsRepo struct {
	db Database
}

func NewNotificationsRepo(db Database) NotificationsRepository {
	return &notificationsRepo{db: db}
}

func (r *notificationsRepo) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, type, reference_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
	`
	_, err := r.db.Exec(ctx, query, notification.ID, notification.UserID, notification.Title,
		notification.Message, notification.Type, notification.ReferenceID)
	return err
}

func (r *notificationsRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, reference_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		notification := &models.Notification{}
		if err := rows.Scan(&notification.ID, &notification.UserID, &notification.Title, &notification.Message,
			&notification.Type, &notification.ReferenceID, &notification.IsRead, &notification.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func (r *notificationsRepo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}
