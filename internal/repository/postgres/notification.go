package postgres

import (
	"context"
	"database/sql"
	"time"

	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (user_id, type, message, is_read, created_on)
	          VALUES ($1, $2, $3, FALSE, now()) RETURNING id, created_on`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, n.UserID, n.Type, n.Message).Scan(&n.ID, &createdOn)
	if err != nil {
		return err
	}
	n.CreatedOn = formatTime(createdOn)
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Notification, error) {
	query := `SELECT id, user_id, type, message, is_read, created_on
	          FROM notifications WHERE user_id = $1 ORDER BY created_on DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var createdOn time.Time
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.IsRead, &createdOn); err != nil {
			return nil, err
		}
		n.CreatedOn = formatTime(createdOn)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int32) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
