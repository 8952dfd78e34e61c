package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	webhookQueueKey = "webhook_events"
)

// NewEventNotification - уведомление администраторов о новом событии
type NewEventNotification struct {
	EventID     uuid.UUID        `json:"event_id"`
	AlertCode   models.AlertCode `json:"alert_code"`
	Urgent      bool             `json:"urgent"`
	Description string           `json:"description"`
	Longitude   float64          `json:"longitude"`
	Latitude    float64          `json:"latitude"`
	Address     string           `json:"address,omitempty"`
	Tags        []string         `json:"tags"`
	ReporterID  string           `json:"reporter_id"`
	ReportedAt  time.Time        `json:"reported_at"`
}

// NotificationFromEvent собирает уведомление из сохраненного события
func NotificationFromEvent(e *models.Event) NewEventNotification {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return NewEventNotification{
		EventID:     e.ID,
		AlertCode:   e.AlertCode,
		Urgent:      e.AlertCode.IsUrgent(),
		Description: e.Description,
		Longitude:   e.Location.Longitude(),
		Latitude:    e.Location.Latitude(),
		Address:     e.Location.Address,
		Tags:        tags,
		ReporterID:  e.ReporterID,
		ReportedAt:  e.ReportedAt,
	}
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, notification NewEventNotification) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish ставит уведомление в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, notification NewEventNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook notification: %w", err)
	}

	// LPUSH в левую часть списка, воркер забирает справа
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook notification to Redis: %w", err)
	}
	return nil
}
