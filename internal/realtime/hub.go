package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// NewEventChannel - канал Redis, через который экземпляры сервера обмениваются событиями
	NewEventChannel     = "events:new"
	MessageTypeNewEvent = "new_event"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

// Message - сообщение, которое получают подключенные клиенты
type Message struct {
	Type  string        `json:"type"`
	Event *models.Event `json:"event,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub хранит подключения и рассылает им новые события.
// Публикация идет через Redis, чтобы событие получили клиенты всех экземпляров.
type Hub struct {
	redis   *redis.Client
	logger  *logrus.Logger
	mu      sync.Mutex
	clients map[*client]struct{}
	observe func(connected int)
}

func NewHub(redisClient *redis.Client, logger *logrus.Logger) *Hub {
	return &Hub{
		redis:   redisClient,
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// SetClientObserver вызывается при каждом изменении числа подключений
func (h *Hub) SetClientObserver(observe func(connected int)) {
	h.mu.Lock()
	h.observe = observe
	h.mu.Unlock()
}

// Start подписывается на канал Redis и возвращает управление после подтверждения подписки
func (h *Hub) Start(ctx context.Context) error {
	pubsub := h.redis.Subscribe(ctx, NewEventChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("realtime: could not subscribe to %s: %w", NewEventChannel, err)
	}
	h.logger.WithField("channel", NewEventChannel).Info("Realtime hub subscribed")

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				h.closeAll()
				h.logger.Info("Stopping realtime hub.")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				h.broadcastLocal([]byte(msg.Payload))
			}
		}
	}()
	return nil
}

// BroadcastNewEvent публикует {type:"new_event", event} для всех экземпляров
func (h *Hub) BroadcastNewEvent(ctx context.Context, event models.Event) error {
	payload, err := json.Marshal(Message{Type: MessageTypeNewEvent, Event: &event})
	if err != nil {
		return fmt.Errorf("realtime: could not marshal message: %w", err)
	}
	if err := h.redis.Publish(ctx, NewEventChannel, payload).Err(); err != nil {
		return fmt.Errorf("realtime: could not publish message: %w", err)
	}
	return nil
}

// HandleWebSocket переводит запрос в WebSocket-соединение
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}

	cl := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	h.register(cl)

	go cl.writePump()
	go cl.readPump()
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.WithField("clients", n).Debug("Websocket client connected")
	h.notify(n)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.WithField("clients", n).Debug("Websocket client disconnected")
	h.notify(n)
}

// broadcastLocal отправляет сообщение клиентам этого экземпляра; медленные клиенты отключаются
func (h *Hub) broadcastLocal(message []byte) {
	h.mu.Lock()
	dropped := 0
	for c := range h.clients {
		select {
		case c.send <- message:
		default:
			delete(h.clients, c)
			close(c.send)
			dropped++
		}
	}
	n := len(h.clients)
	h.mu.Unlock()

	if dropped > 0 {
		h.logger.WithField("dropped", dropped).Warn("Dropped slow websocket clients")
		h.notify(n)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	h.notify(0)
}

func (h *Hub) notify(n int) {
	h.mu.Lock()
	observe := h.observe
	h.mu.Unlock()
	if observe != nil {
		observe(n)
	}
}

// readPump нужен только для обработки pong и обнаружения закрытия соединения
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.hub.logger.WithError(err).Debug("Websocket read error")
			}
			return
		}
	}
}

// writePump отправляет по одному сообщению на кадр
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
