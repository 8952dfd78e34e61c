package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"

	ChannelWebhook = "webhook"
	ChannelEmail   = "email"
	ChannelSMS     = "sms"
)

// Notification представляет запись о попытке уведомить администраторов о новом событии.
// AdminID пуст для вебхука, который отправляется один раз на событие.
type Notification struct {
	ID        int64      `json:"id"`
	EventID   uuid.UUID  `json:"event_id"`
	AdminID   *uuid.UUID `json:"admin_id,omitempty"`
	Channel   string     `json:"channel"`
	Status    string     `json:"status"`
	Attempts  int        `json:"attempts"`
	Error     string     `json:"error,omitempty"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
