package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Insert(ctx context.Context, recipientID int64, ntype, message string, link *string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if recipientID <= 0 || message == "" {
		return fmt.Errorf("invalid notification payload")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO notifications (
	recipient_id,
	type,
	message,
	link,
	read,
	created_at
) VALUES ($1, $2, $3, $4, FALSE, NOW())
`, recipientID, ntype, message, link); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

func (r *NotificationRepo) ListUnread(ctx context.Context, recipientID int64, limit int) ([]model.Notification, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if recipientID <= 0 {
		return nil, fmt.Errorf("invalid recipient id")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, recipient_id, type, message, link, read, created_at
FROM notifications
WHERE recipient_id = $1 AND read = FALSE
ORDER BY created_at DESC, id DESC
LIMIT $2
`, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if scanErr := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Message, &n.Link, &n.Read, &n.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("scan notification row: %w", scanErr)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}

	return notifications, nil
}

// MarkRead flips the read flag only when the row belongs to recipientID, so
// one user can never consume another's notification.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, recipientID int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 || recipientID <= 0 {
		return false, fmt.Errorf("invalid notification reference")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE notifications
SET read = TRUE
WHERE id = $1 AND recipient_id = $2
`, id, recipientID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, recipientID int64) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if recipientID <= 0 {
		return 0, fmt.Errorf("invalid recipient id")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM notifications
WHERE recipient_id = $1 AND read = FALSE
`, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}
