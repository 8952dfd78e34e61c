package webhook

import (
	"context"
	"fmt"
	"strings"

	"github.com/iIonel/EventReport/internal/config"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const smsDescriptionLimit = 100

// SMSSender - часть REST API Twilio, которой пользуется канал
type SMSSender interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type SMSChannel struct {
	sender     SMSSender
	fromNumber string
}

func NewSMSChannel(sender SMSSender, fromNumber string) *SMSChannel {
	return &SMSChannel{
		sender:     sender,
		fromNumber: fromNumber,
	}
}

// NewTwilioSMSChannel создает канал; без учетных данных Twilio он отвечает ErrChannelDisabled
func NewTwilioSMSChannel(cfg *config.Config) *SMSChannel {
	var sender SMSSender
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
		sender = client.Api
	}
	return NewSMSChannel(sender, cfg.TwilioFromNumber)
}

func (c *SMSChannel) Name() string {
	return models.ChannelSMS
}

func (c *SMSChannel) Send(_ context.Context, admin models.Admin, n NewEventNotification) error {
	if c.sender == nil || c.fromNumber == "" {
		return ErrChannelDisabled
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(NormalizePhone(admin.Phone))
	params.SetFrom(c.fromNumber)
	params.SetBody(SMSText(n))

	if _, err := c.sender.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}
	return nil
}

// SMSText - короткое текстовое уведомление, описание обрезается до 100 символов
func SMSText(n NewEventNotification) string {
	description := []rune(n.Description)
	if len(description) > smsDescriptionLimit {
		description = description[:smsDescriptionLimit]
	}
	return fmt.Sprintf("[EventReport - %s]\n%s\nLocation: %.4f, %.4f",
		n.AlertCode, string(description), n.Latitude, n.Longitude)
}

// NormalizePhone приводит номер к формату E.164. Номера, начинающиеся с 0,
// считаются румынскими: 07xx -> +407xx.
func NormalizePhone(phone string) string {
	phone = strings.Join(strings.Fields(phone), "")
	switch {
	case phone == "", strings.HasPrefix(phone, "+"):
		return phone
	case strings.HasPrefix(phone, "0"):
		return "+4" + phone
	default:
		return "+" + phone
	}
}
