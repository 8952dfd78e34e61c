package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	MessageTypeNewEvent = "new_event"

	feedPath          = "/ws/events"
	feedBaseDelay     = 500 * time.Millisecond
	feedMaxDelay      = 30 * time.Second
	feedHandshakeTime = 10 * time.Second
)

// FeedMessage - сообщение push-канала
type FeedMessage struct {
	Type  string        `json:"type"`
	Event *models.Event `json:"event,omitempty"`
}

// Feed подписывается на WebSocket-канал новых событий
type Feed struct {
	url         string
	dialer      *websocket.Dialer
	credentials CredentialProvider
	logger      *logrus.Logger
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// NewFeed строит адрес канала из базового адреса REST API (http -> ws, https -> wss)
func NewFeed(baseURL string, credentials CredentialProvider, logger *logrus.Logger) (*Feed, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	u.Path += feedPath

	return &Feed{
		url:         u.String(),
		dialer:      &websocket.Dialer{HandshakeTimeout: feedHandshakeTime},
		credentials: credentials,
		logger:      logger,
		baseDelay:   feedBaseDelay,
		maxDelay:    feedMaxDelay,
	}, nil
}

func (f *Feed) URL() string {
	return f.url
}

// Run читает канал и передает каждое новое событие в handler.
// После обрыва соединения переподключается с экспоненциальной задержкой;
// возвращается только при отмене контекста.
func (f *Feed) Run(ctx context.Context, handler func(models.Event)) error {
	log := f.logger.WithFields(logrus.Fields{"component": "feed", "url": f.url})
	delay := f.baseDelay

	for {
		connected, err := f.consume(ctx, handler)
		if ctx.Err() != nil {
			log.Info("Stopping event feed.")
			return ctx.Err()
		}
		if connected {
			delay = f.baseDelay
		}
		log.WithError(err).Warnf("Event feed disconnected. Reconnecting in %v", delay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > f.maxDelay {
			delay = f.maxDelay
		}
	}
}

func (f *Feed) consume(ctx context.Context, handler func(models.Event)) (bool, error) {
	header := http.Header{}
	if f.credentials != nil {
		if token, ok := f.credentials.Token(); ok {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, _, err := f.dialer.DialContext(ctx, f.url, header)
	if err != nil {
		return false, fmt.Errorf("dial event feed: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			conn.Close()
		case <-done:
		}
	}()

	f.logger.WithField("url", f.url).Info("Event feed connected")
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return true, fmt.Errorf("read event feed: %w", err)
		}

		var msg FeedMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			f.logger.WithError(err).Warn("Failed to decode feed message")
			continue
		}
		if msg.Type != MessageTypeNewEvent || msg.Event == nil {
			continue
		}
		handler(*msg.Event)
	}
}
