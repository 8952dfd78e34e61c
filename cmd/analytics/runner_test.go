package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/analytics"
	"github.com/iIonel/EventReport/internal/client"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func recentEvent(code models.AlertCode, ago time.Duration) models.Event {
	return models.Event{
		ID:         uuid.New(),
		ReportedAt: time.Now().UTC().Add(-ago),
		Location:   models.NewPoint(26.1, 44.4, ""),
		AlertCode:  code,
		Tags:       []string{"flood"},
	}
}

// newEventsServer отдает events на первой странице и пустые страницы дальше
func newEventsServer(t *testing.T, events []models.Event) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/events", r.URL.Path)
		page := events
		if r.URL.Query().Get("skip") != "0" {
			page = []models.Event{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRunner(t *testing.T, baseURL, format string, out *bytes.Buffer) *runner {
	t.Helper()
	log := newTestLogger()
	api := client.New(baseURL, client.WithLogger(log), client.WithTimeout(5*time.Second))
	fetcher := analytics.NewFetcher(api, log)
	loader := analytics.NewLoader(fetcher, log, analytics.WithLocation(time.UTC))

	r, err := newRunner(fetcher, loader, analytics.Range30Days, format, out, log)
	require.NoError(t, err)
	return r
}

func TestRunner_PrintsAnalyticsReport(t *testing.T) {
	// Подготовка
	srv := newEventsServer(t, []models.Event{
		recentEvent(models.AlertRed, 24*time.Hour),
		recentEvent(models.AlertGreen, 48*time.Hour),
		recentEvent(models.AlertYellow, 60*24*time.Hour), // вне окна 30d
	})
	out := &bytes.Buffer{}
	r := newTestRunner(t, srv.URL+"/api/v1", FormatJSON, out)

	// Действие
	err := r.runOnce(context.Background())

	// Проверки
	require.NoError(t, err)
	var report analytics.AnalyticsData
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, analytics.Range30Days, report.Range)
	assert.Equal(t, 2, report.Stats.Total)
	assert.Equal(t, 50.0, report.Stats.UrgentPercent)
}

type renderedMap struct {
	Type     string            `json:"type"`
	Zoom     int               `json:"zoom"`
	Features []json.RawMessage `json:"features"`
}

func decodeMaps(t *testing.T, out *bytes.Buffer) []renderedMap {
	t.Helper()
	var maps []renderedMap
	dec := json.NewDecoder(bytes.NewReader(out.Bytes()))
	for dec.More() {
		var m renderedMap
		require.NoError(t, dec.Decode(&m))
		maps = append(maps, m)
	}
	return maps
}

func TestRunner_RendersMapAndAppliesPush(t *testing.T) {
	// Подготовка
	srv := newEventsServer(t, []models.Event{
		recentEvent(models.AlertOrange, time.Hour),
		recentEvent(models.AlertGreen, 2*time.Hour),
	})
	out := &bytes.Buffer{}
	r := newTestRunner(t, srv.URL+"/api/v1", FormatGeoJSON, out)
	ctx := context.Background()

	// Действие
	require.NoError(t, r.runOnce(ctx))
	r.onPush(ctx, recentEvent(models.AlertRed, 0))

	// Проверки
	maps := decodeMaps(t, out)
	require.Len(t, maps, 2)
	assert.Equal(t, "FeatureCollection", maps[0].Type)
	assert.Len(t, maps[0].Features, 2)
	assert.Len(t, maps[1].Features, 3)
	assert.Equal(t, 3, r.store.Len())
}

func TestRunner_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "internal server error"}`))
	}))
	defer srv.Close()
	out := &bytes.Buffer{}
	r := newTestRunner(t, srv.URL+"/api/v1", FormatJSON, out)

	err := r.runOnce(context.Background())

	assert.Error(t, err)
	assert.NotEmpty(t, client.UserMessage(err))
	assert.Empty(t, out.String())
}

func TestNewRunner_UnsupportedFormat(t *testing.T) {
	_, err := newRunner(nil, nil, analytics.Range30Days, "csv", &bytes.Buffer{}, newTestLogger())
	assert.Error(t, err)
}
