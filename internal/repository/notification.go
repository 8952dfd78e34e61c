package repository

import (
	"context"
	"fmt"

	"github.com/iIonel/EventReport/internal/models"
	"github.com/iIonel/EventReport/internal/webhook"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) webhook.DeliveryRecorder {
	return &NotificationRepository{db: db}
}

// SaveNotification сохраняет результат доставки уведомления в бд
func (r *NotificationRepository) SaveNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (event_id, admin_id, channel, status, attempts, error, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		n.EventID,
		n.AdminID,
		n.Channel,
		n.Status,
		n.Attempts,
		n.Error,
		n.SentAt,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}
