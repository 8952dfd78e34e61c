package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/analytics"
	"github.com/iIonel/EventReport/internal/config"
	"github.com/iIonel/EventReport/internal/mapview"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/iIonel/EventReport/internal/service"
	"github.com/iIonel/EventReport/internal/service/mocks"
	"github.com/iIonel/EventReport/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stubFeed отвечает вместо WebSocket-хаба
type stubFeed struct {
	calls int
}

func (f *stubFeed) HandleWebSocket(c *gin.Context) {
	f.calls++
	c.String(http.StatusOK, "feed")
}

var authHeader = map[string]string{"X-API-Key": "test-api-key"}

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*stubFeed, *mocks.MockEventService, *gin.Engine) {
	feed, mockService, _, router := newTestHandlers(t)
	return feed, mockService, router
}

func newTestHandlers(t *testing.T) (*stubFeed, *mocks.MockEventService, *mocks.MockAdminService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockEventService(ctrl)
	mockAdmins := mocks.NewMockAdminService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:      map[string]string{"test-api-key": "alice"},
		MaxImageSize: 1024,
	}

	feed := &stubFeed{}
	handler := NewHandler(mockService, mockAdmins, feed, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return feed, mockService, mockAdmins, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// multipartBody собирает форму с одним файлом в поле "file"
func multipartBody(t *testing.T, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="photo.png"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func sampleEvent() *models.Event {
	return &models.Event{
		ID:          uuid.New(),
		ReportedAt:  time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Location:    models.NewPoint(26.1, 44.4, "Bucharest"),
		AlertCode:   models.AlertRed,
		Description: "Fire on the roof",
		Tags:        []string{"fire"},
		ReporterID:  "alice",
		CreatedAt:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateEvent_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expected := sampleEvent()
	reqBody := CreateEventRequest{
		Location:    LocationRequest{Type: "Point", Coordinates: []float64{26.1, 44.4}, Address: "Bucharest"},
		AlertCode:   "RED",
		Description: "Fire on the roof",
		Tags:        []string{"fire"},
	}

	mockService.EXPECT().
		CreateEvent(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, in models.EventCreate) (*models.Event, error) {
			assert.Equal(t, models.AlertRed, in.AlertCode)
			assert.Equal(t, []float64{26.1, 44.4}, in.Location.Coordinates)
			assert.Equal(t, "Bucharest", in.Location.Address)
			assert.Equal(t, []string{"fire"}, in.Tags)
			return expected, nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBuffer(bodyBytes), authHeader)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, expected.ID, resp.ID)
	assert.Equal(t, "RED", resp.AlertCode)
	assert.Equal(t, "Point", resp.Location.Type)
	assert.Equal(t, []float64{26.1, 44.4}, resp.Location.Coordinates)
}

func TestCreateEvent_Unauthorized(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBufferString(`{}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestCreateEvent_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBufferString(`{"alert_code": "RED"`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateEvent_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateEventRequest{ // Неизвестный уровень срочности
		Location:  LocationRequest{Coordinates: []float64{26.1, 44.4}},
		AlertCode: "PURPLE",
	}

	mockService.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBuffer(bodyBytes), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'AlertCode' failed on the 'oneof' tag")
}

func TestCreateEvent_ServiceValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateEventRequest{
		Location:  LocationRequest{Coordinates: []float64{200, 44.4}},
		AlertCode: "GREEN",
	}

	mockService.EXPECT().
		CreateEvent(gomock.Any(), "alice", gomock.Any()).
		Return(nil, fmt.Errorf("%w: longitude 200 out of range", service.ErrValidation)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBuffer(bodyBytes), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "longitude 200 out of range")
}

func TestCreateEvent_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CreateEventRequest{
		Location:  LocationRequest{Coordinates: []float64{26.1, 44.4}},
		AlertCode: "GREEN",
	}

	mockService.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBuffer(bodyBytes), authHeader)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestGetEvent_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expected := sampleEvent()

	mockService.EXPECT().GetEvent(gomock.Any(), expected.ID).Return(expected, nil).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/events/%s", expected.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, expected.ID, resp.ID)
	assert.Equal(t, expected.Description, resp.Description)
	assert.Nil(t, resp.ImageID)
}

func TestGetEvent_InvalidID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetEvent(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/events/invalid-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid event ID")
}

func TestGetEvent_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().
		GetEvent(gomock.Any(), id).
		Return(nil, fmt.Errorf("service: could not get event: %w", service.ErrEventNotFound)).
		Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/events/%s", id), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "event not found")
}

func TestGetEvent_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().GetEvent(gomock.Any(), id).Return(nil, errors.New("database error")).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/events/%s", id), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestListEvents_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	events := []models.Event{*sampleEvent(), *sampleEvent()}
	events[1].Tags = nil

	expectedFilter := models.EventFilter{
		AlertCode: models.AlertRed,
		Tags:      []string{"fire", "smoke"},
		Skip:      10,
		Limit:     5,
	}
	mockService.EXPECT().ListEvents(gomock.Any(), expectedFilter).Return(events, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/events?skip=10&limit=5&alert_code=RED&tags=fire,smoke", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, events[0].ID, resp[0].ID)
	assert.Equal(t, []string{}, resp[1].Tags)
}

func TestListEvents_Defaults(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().ListEvents(gomock.Any(), models.EventFilter{}).Return([]models.Event{}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/events", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListEvents_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"unknown alert code", "alert_code=PURPLE"},
		{"negative skip", "skip=-1"},
		{"non numeric limit", "limit=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockService, router := newTestHandler(t)
			mockService.EXPECT().ListEvents(gomock.Any(), gomock.Any()).Times(0)

			w := makeRequest(router, "GET", "/api/v1/events?"+tt.query, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestEventsGeoJSON_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	collection := mapview.FeatureCollectionFromEvents([]models.Event{*sampleEvent()})

	mockService.EXPECT().MapEvents(gomock.Any(), 10).Return(collection, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/events/geojson?limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp mapview.FeatureCollection
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "FeatureCollection", resp.Type)
	assert.Len(t, resp.Features, 1)
}

func TestEventsGeoJSON_InvalidLimit(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().MapEvents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/events/geojson?limit=-3", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid limit")
}

func TestNearbyEvents_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	events := []models.Event{*sampleEvent()}

	expectedQuery := models.NearbyQuery{Longitude: 26.1, Latitude: 44.4, MaxDistance: 1000, Limit: 3}
	mockService.EXPECT().NearbyEvents(gomock.Any(), expectedQuery).Return(events, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/events/nearby?lon=26.1&lat=44.4&max_distance=1000&limit=3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestNearbyEvents_ZeroCoordinates(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	expectedQuery := models.NearbyQuery{Longitude: 0, Latitude: 0}
	mockService.EXPECT().NearbyEvents(gomock.Any(), expectedQuery).Return([]models.Event{}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/events/nearby?lon=0&lat=0", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNearbyEvents_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing latitude", "lon=26.1"},
		{"latitude out of range", "lon=26.1&lat=95"},
		{"non numeric longitude", "lon=east&lat=44.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockService, router := newTestHandler(t)
			mockService.EXPECT().NearbyEvents(gomock.Any(), gomock.Any()).Times(0)

			w := makeRequest(router, "GET", "/api/v1/events/nearby?"+tt.query, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestEventAnalytics_DefaultRange(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	report := &analytics.AnalyticsData{Range: analytics.Range30Days, Stats: analytics.Stats{Total: 7}}

	mockService.EXPECT().Analytics(gomock.Any(), analytics.Range30Days).Return(report, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/events/analytics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp analytics.AnalyticsData
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, analytics.Range30Days, resp.Range)
	assert.Equal(t, 7, resp.Stats.Total)
}

func TestEventAnalytics_ExplicitRange(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		Analytics(gomock.Any(), analytics.RangeAll).
		Return(&analytics.AnalyticsData{Range: analytics.RangeAll}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/events/analytics?range=all", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEventAnalytics_InvalidRange(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Analytics(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/events/analytics?range=2w", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateEvent_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	updated := sampleEvent()
	updated.Description = "Fire is out"

	mockService.EXPECT().
		UpdateEvent(gomock.Any(), updated.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, u models.EventUpdate) (*models.Event, error) {
			require.NotNil(t, u.Description)
			assert.Equal(t, "Fire is out", *u.Description)
			assert.Nil(t, u.Location)
			assert.Nil(t, u.AlertCode)
			assert.Nil(t, u.Tags)
			return updated, nil
		}).Times(1)

	w := makeRequest(router, "PUT", fmt.Sprintf("/api/v1/events/%s", updated.ID),
		bytes.NewBufferString(`{"description": "Fire is out"}`), authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "Fire is out", resp.Description)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().
		UpdateEvent(gomock.Any(), id, gomock.Any()).
		Return(nil, service.ErrEventNotFound).
		Times(1)

	w := makeRequest(router, "PUT", fmt.Sprintf("/api/v1/events/%s", id),
		bytes.NewBufferString(`{"alert_code": "YELLOW"}`), authHeader)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateEvent_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().UpdateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PUT", fmt.Sprintf("/api/v1/events/%s", uuid.New()),
		bytes.NewBufferString(`{"alert_code": "BLUE"}`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteEvent_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().DeleteEvent(gomock.Any(), id).Return(nil).Times(1)

	w := makeRequest(router, "DELETE", fmt.Sprintf("/api/v1/events/%s", id), nil,
		map[string]string{"Authorization": "Bearer test-api-key"})

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().DeleteEvent(gomock.Any(), id).Return(service.ErrEventNotFound).Times(1)

	w := makeRequest(router, "DELETE", fmt.Sprintf("/api/v1/events/%s", id), nil, authHeader)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadImage_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	eventID := uuid.New()
	imageID := uuid.New()
	content := []byte("\x89PNG fake image")

	mockService.EXPECT().
		AttachImage(gomock.Any(), eventID, gomock.Any(), int64(len(content)), "image/png").
		DoAndReturn(func(_ context.Context, _ uuid.UUID, r io.Reader, _ int64, _ string) (uuid.UUID, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, content, data)
			return imageID, nil
		}).Times(1)

	body, contentType := multipartBody(t, "image/png", content)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/events/%s/image", eventID), body,
		authHeader, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ImageUploadResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, imageID, resp.ImageID)
}

func TestUploadImage_TooLarge(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().AttachImage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	body, contentType := multipartBody(t, "image/png", bytes.Repeat([]byte("a"), 2048))
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/events/%s/image", uuid.New()), body,
		authHeader, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestUploadImage_MissingFile(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().AttachImage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/events/%s/image", uuid.New()),
		bytes.NewBufferString(`{}`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file is required")
}

func TestUploadImage_InvalidType(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	eventID := uuid.New()

	mockService.EXPECT().
		AttachImage(gomock.Any(), eventID, gomock.Any(), gomock.Any(), "application/pdf").
		Return(uuid.Nil, service.ErrInvalidImageType).
		Times(1)

	body, contentType := multipartBody(t, "application/pdf", []byte("%PDF"))
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/events/%s/image", eventID), body,
		authHeader, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid image type")
}

func TestGetImage_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	eventID := uuid.New()
	content := []byte("jpeg bytes")

	mockService.EXPECT().
		OpenImage(gomock.Any(), eventID).
		Return(&storage.Image{
			Body:        io.NopCloser(bytes.NewReader(content)),
			ContentType: "image/jpeg",
			Size:        int64(len(content)),
		}, nil).
		Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/events/%s/image", eventID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, content, w.Body.Bytes())
}

func TestGetImage_NoImage(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	eventID := uuid.New()

	mockService.EXPECT().OpenImage(gomock.Any(), eventID).Return(nil, service.ErrNoImage).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/events/%s/image", eventID), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "image not found")
}

func TestEventsWebSocket_DelegatesToFeed(t *testing.T) {
	feed, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/ws/events", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "feed", w.Body.String())
	assert.Equal(t, 1, feed.calls)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func newAuthRouter() *gin.Engine {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{APIKeys: map[string]string{
		"valid-key": "bob",
		"anon-key":  config.AnonymousReporter,
	}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, reporterID(c))
	})
	return router
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	router := newAuthRouter()

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "valid-key"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", w.Body.String())
}

func TestAPIKeyAuthMiddleware_Bearer(t *testing.T) {
	router := newAuthRouter()

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"Authorization": "Bearer anon-key"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.AnonymousReporter, w.Body.String())
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	router := newAuthRouter()

	w := makeRequest(router, "GET", "/test", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	router := newAuthRouter()

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}
