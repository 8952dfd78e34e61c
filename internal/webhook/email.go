package webhook

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/iIonel/EventReport/internal/config"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var alertColors = map[models.AlertCode]string{
	models.AlertGreen:  "#28a745",
	models.AlertYellow: "#ffc107",
	models.AlertOrange: "#fd7e14",
	models.AlertRed:    "#dc3545",
}

var emailTemplate = template.Must(template.New("event").Parse(`<!DOCTYPE html>
<html>
<body>
<h2>New Event Reported - EventReport</h2>
<p>Hello {{.AdminName}},</p>
<p>A new event has been reported in the system that requires your attention.</p>
<div style="border:1px solid #ddd;border-radius:8px;padding:20px;background-color:#f9f9f9">
<p><strong>Alert Level:</strong> <span style="background-color:{{.Color}};color:white;padding:5px 15px;border-radius:4px;font-weight:bold">{{.AlertCode}}</span></p>
<p><strong>Description:</strong> {{.Description}}</p>
<p><strong>Location:</strong> {{.Address}}</p>
<p><strong>Coordinates:</strong> {{.Longitude}}, {{.Latitude}}</p>
<p><strong>Tags:</strong> {{.Tags}}</p>
<p><strong>Reported at:</strong> {{.ReportedAt}}</p>
<p><strong>Reporter:</strong> {{.ReporterID}}</p>
</div>
<p>Please review this event and take appropriate action.</p>
<p>Best regards,<br>EventReport System</p>
</body>
</html>`))

// EmailSender - часть клиента SendGrid, которой пользуется канал
type EmailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type EmailChannel struct {
	sender      EmailSender
	fromName    string
	fromAddress string
}

func NewEmailChannel(sender EmailSender, fromName, fromAddress string) *EmailChannel {
	return &EmailChannel{
		sender:      sender,
		fromName:    fromName,
		fromAddress: fromAddress,
	}
}

// NewSendGridEmailChannel создает канал; без SENDGRID_API_KEY он отвечает ErrChannelDisabled
func NewSendGridEmailChannel(cfg *config.Config) *EmailChannel {
	var sender EmailSender
	if cfg.SendGridAPIKey != "" {
		sender = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	return NewEmailChannel(sender, cfg.MailFromName, cfg.MailFrom)
}

func (c *EmailChannel) Name() string {
	return models.ChannelEmail
}

func (c *EmailChannel) Send(ctx context.Context, admin models.Admin, n NewEventNotification) error {
	if c.sender == nil || c.fromAddress == "" {
		return ErrChannelDisabled
	}

	html, err := RenderEmail(admin, n)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("[%s] New Event Reported - EventReport", n.AlertCode)
	message := mail.NewSingleEmail(
		mail.NewEmail(c.fromName, c.fromAddress),
		subject,
		mail.NewEmail(admin.FullName(), admin.Email),
		SMSText(n),
		html,
	)

	resp, err := c.sender.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
	}
	return nil
}

// RenderEmail собирает HTML-письмо о новом событии
func RenderEmail(admin models.Admin, n NewEventNotification) (string, error) {
	color, ok := alertColors[n.AlertCode]
	if !ok {
		color = "#6c757d"
	}
	address := n.Address
	if address == "" {
		address = "Unknown location"
	}

	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, map[string]any{
		"AdminName":   admin.FullName(),
		"Color":       color,
		"AlertCode":   string(n.AlertCode),
		"Description": n.Description,
		"Address":     address,
		"Longitude":   n.Longitude,
		"Latitude":    n.Latitude,
		"Tags":        strings.Join(n.Tags, ", "),
		"ReportedAt":  n.ReportedAt.Format("2006-01-02 15:04:05 MST"),
		"ReporterID":  n.ReporterID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}
