package webhook

import (
	"context"
	"errors"

	"github.com/iIonel/EventReport/internal/models"
)

// ErrChannelDisabled - у канала нет учетных данных, повторять отправку бессмысленно
var ErrChannelDisabled = errors.New("notification channel is not configured")

// Channel доставляет уведомление одному администратору
type Channel interface {
	Name() string
	Send(ctx context.Context, admin models.Admin, notification NewEventNotification) error
}

// AdminLister отдает администраторов, которых нужно уведомить
type AdminLister interface {
	ListAdmins(ctx context.Context) ([]models.Admin, error)
}
