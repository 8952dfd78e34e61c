package realtime

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	hub := NewHub(rdb, logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, hub.Start(ctx))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws/events", hub.HandleWebSocket)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastNewEvent(t *testing.T) {
	hub, srv := newTestHub(t)
	first := dial(t, srv)
	second := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	event := models.Event{
		ID:         uuid.New(),
		ReportedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Location:   models.NewPoint(26.1, 44.4, ""),
		AlertCode:  models.AlertOrange,
	}
	require.NoError(t, hub.BroadcastNewEvent(context.Background(), event))

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, MessageTypeNewEvent, msg.Type)
		require.NotNil(t, msg.Event)
		assert.Equal(t, event.ID, msg.Event.ID)
		assert.Equal(t, models.AlertOrange, msg.Event.AlertCode)
	}
}

func TestHub_UnregistersClosedClient(t *testing.T) {
	hub, srv := newTestHub(t)
	var counts []int
	countCh := make(chan int, 8)
	hub.SetClientObserver(func(n int) { countCh <- n })

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return len(countCh) == 2 }, 2*time.Second, 10*time.Millisecond)

	counts = append(counts, <-countCh, <-countCh)
	assert.Equal(t, []int{1, 0}, counts)
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub, _ := newTestHub(t)
	slow := &client{hub: hub, send: make(chan []byte, 1)}
	hub.register(slow)

	hub.broadcastLocal([]byte(`{"type":"new_event"}`))
	assert.Equal(t, 1, hub.ClientCount())

	// буфер заполнен, следующее сообщение отключает клиента
	hub.broadcastLocal([]byte(`{"type":"new_event"}`))
	assert.Equal(t, 0, hub.ClientCount())

	_, ok := <-slow.send
	assert.True(t, ok)
	_, ok = <-slow.send
	assert.False(t, ok)
}
