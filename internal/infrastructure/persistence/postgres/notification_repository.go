package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/database"
	"github.com/rocker1166/skilllink/internal/domain/notification"
)

type NotificationRepository struct {
	db database.DB
}

func NewNotificationRepository(db database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n notification.Notification) error {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO notifications (id, user_id, type, title, message, data, is_read)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, data, n.IsRead,
	)
	return err
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, title, message, data, is_read, created_at
		 FROM notifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		var data []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, err
			}
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notification.ErrNotFound
	}
	return nil
}
