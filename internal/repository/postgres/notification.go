package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ostelo999925/uniket-sub002/internal/domain"
	"github.com/Ostelo999925/uniket-sub002/pkg/database"
	apperrors "github.com/Ostelo999925/uniket-sub002/pkg/errors"
)

// NotificationRepository implements repository.NotificationRepository using PostgreSQL.
type NotificationRepository struct {
	pool database.DBTX
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool database.DBTX) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create inserts a new notification into the database.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	metadataJSON, err := json.Marshal(n.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		INSERT INTO notifications (id, user_id, type, message, metadata, read, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.pool.Exec(ctx, query,
		n.ID,
		n.UserID,
		n.Type,
		n.Message,
		metadataJSON,
		n.Read,
		n.ReadAt,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

// ListByUser returns notifications for the given user, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, page, perPage int) ([]domain.Notification, int, error) {
	query := `
		SELECT id, user_id, type, message, metadata, read, read_at, created_at,
			   count(*) OVER() AS total_count
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	limit := perPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var (
		notifications []domain.Notification
		totalCount    int
	)

	for rows.Next() {
		var (
			n            domain.Notification
			metadataJSON []byte
		)
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Message,
			&metadataJSON,
			&n.Read,
			&n.ReadAt,
			&n.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan notification row: %w", err)
		}

		if metadataJSON != nil {
			if err := json.Unmarshal(metadataJSON, &n.Metadata); err != nil {
				return nil, 0, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate notification rows: %w", err)
	}

	if notifications == nil {
		notifications = []domain.Notification{}
	}

	return notifications, totalCount, nil
}

// MarkRead sets the read flag and read timestamp on a notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	query := `UPDATE notifications SET read = true, read_at = $1 WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("notification", id)
	}

	return nil
}
