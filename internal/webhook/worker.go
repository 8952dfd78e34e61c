package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/config"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	SignatureHeader = "X-Webhook-Signature"

	popTimeout = time.Second
)

// DeliveryRecorder сохраняет результат каждой доставки
type DeliveryRecorder interface {
	SaveNotification(ctx context.Context, notification *models.Notification) error
}

// DeliveryObserver получает статус доставки (для метрик)
type DeliveryObserver func(status string)

// WebhookWorker - структура для обработки и отправки вебхуков
type WebhookWorker struct {
	redisClient *redis.Client
	recorder    DeliveryRecorder
	observe     DeliveryObserver
	admins      AdminLister
	channels    []Channel
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
	done        chan struct{}
}

func NewWebhookWorker(redisClient *redis.Client, recorder DeliveryRecorder, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	return &WebhookWorker{
		redisClient: redisClient,
		recorder:    recorder,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		done: make(chan struct{}),
	}
}

// SetObserver подключает наблюдателя за результатами доставки
func (w *WebhookWorker) SetObserver(observe DeliveryObserver) {
	w.observe = observe
}

// SetAdminChannels включает рассылку администраторам по перечисленным каналам
func (w *WebhookWorker) SetAdminChannels(admins AdminLister, channels ...Channel) {
	w.admins = admins
	w.channels = channels
}

// Start запускает горутину для обработки очереди вебхуков
func (w *WebhookWorker) Start(ctx context.Context) {
	w.logger.Info("Starting webhook worker...")
	go func() {
		defer close(w.done)
		for {
			if ctx.Err() != nil {
				w.logger.Info("Stopping webhook worker.")
				return
			}

			// BRPOP с таймаутом, чтобы регулярно проверять отмену контекста
			result, err := w.redisClient.BRPop(ctx, popTimeout, webhookQueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || ctx.Err() != nil {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop webhook notification from Redis")
				w.sleep(ctx, w.cfg.WebhookTimeout)
				continue
			}

			// result[0] - ключ, result[1] - значение
			payload := result[1]
			var notification NewEventNotification
			if err := json.Unmarshal([]byte(payload), &notification); err != nil {
				w.logger.WithError(err).Error("Failed to unmarshal webhook notification from Redis")
				continue
			}

			w.processNotification(ctx, notification, payload)
		}
	}()
}

// Done закрывается после остановки воркера
func (w *WebhookWorker) Done() <-chan struct{} {
	return w.done
}

func (w *WebhookWorker) processNotification(ctx context.Context, notification NewEventNotification, rawPayload string) {
	log := w.logger.WithField("event_id", notification.EventID).WithField("alert_code", notification.AlertCode)
	log.Debug("Processing notification...")

	if w.cfg.WebhookURL == "" {
		log.Debug("Webhook URL is not configured. Skipping webhook delivery.")
	} else {
		webhookLog := log.WithField("channel", models.ChannelWebhook)
		attempts, err := w.withRetry(ctx, webhookLog, func() error { return w.send(ctx, rawPayload) })
		w.record(ctx, webhookLog, notification, nil, models.ChannelWebhook, attempts, err)
	}

	w.notifyAdmins(ctx, log, notification)
}

// notifyAdmins отправляет уведомление каждому администратору по каждому каналу
// и сохраняет отдельную запись на пару (администратор, канал)
func (w *WebhookWorker) notifyAdmins(ctx context.Context, log *logrus.Entry, notification NewEventNotification) {
	if w.admins == nil || len(w.channels) == 0 {
		return
	}

	admins, err := w.admins.ListAdmins(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load admins")
		return
	}
	if len(admins) == 0 {
		log.Info("No admins configured, skipping notifications")
		return
	}

	for _, admin := range admins {
		adminID := admin.ID
		for _, ch := range w.channels {
			chLog := log.WithFields(logrus.Fields{"admin_id": adminID, "channel": ch.Name()})
			attempts, err := w.withRetry(ctx, chLog, func() error { return ch.Send(ctx, admin, notification) })
			w.record(ctx, chLog, notification, &adminID, ch.Name(), attempts, err)
		}
	}
	log.WithField("admins", len(admins)).Info("Admin notifications completed")
}

// withRetry повторяет send с экспоненциальной задержкой. ErrChannelDisabled не повторяется.
func (w *WebhookWorker) withRetry(ctx context.Context, log *logrus.Entry, send func() error) (int, error) {
	maxRetries := w.cfg.WebhookMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	delay := w.cfg.WebhookBaseDelay

	var lastErr error
	attempts := 0
	for i := 0; i < maxRetries; i++ {
		attempts++
		lastErr = send()
		if lastErr == nil {
			log.Info("Notification delivered successfully.")
			return attempts, nil
		}
		if errors.Is(lastErr, ErrChannelDisabled) || i == maxRetries-1 {
			break
		}

		log.WithError(lastErr).Warnf("Delivery failed. Retrying in %v. Retries left: %d", delay, maxRetries-1-i)
		if !w.sleep(ctx, delay) {
			break
		}
		delay *= 2 // Экспоненциальная задержка
	}

	log.WithError(lastErr).Errorf("Failed to deliver notification after %d attempts.", attempts)
	return attempts, lastErr
}

func (w *WebhookWorker) send(ctx context.Context, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set(SignatureHeader, generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint responded with status %d", resp.StatusCode)
	}
	return nil
}

func (w *WebhookWorker) record(ctx context.Context, log *logrus.Entry, notification NewEventNotification,
	adminID *uuid.UUID, channel string, attempts int, deliveryErr error) {
	n := &models.Notification{
		EventID:  notification.EventID,
		AdminID:  adminID,
		Channel:  channel,
		Status:   models.NotificationSent,
		Attempts: attempts,
	}
	if deliveryErr != nil {
		n.Status = models.NotificationFailed
		n.Error = deliveryErr.Error()
	} else {
		now := time.Now().UTC()
		n.SentAt = &now
	}

	if w.observe != nil {
		w.observe(n.Status)
	}
	if w.recorder == nil {
		return
	}
	// запись результата не должна зависеть от отмены контекста воркера
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := w.recorder.SaveNotification(saveCtx, n); err != nil {
		log.WithError(err).Error("Failed to save notification record")
	}
}

func (w *WebhookWorker) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
