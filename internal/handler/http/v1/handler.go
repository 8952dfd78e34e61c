package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/analytics"
	"github.com/iIonel/EventReport/internal/config"
	"github.com/iIonel/EventReport/internal/service"
	"github.com/iIonel/EventReport/internal/storage"
	"github.com/sirupsen/logrus"
)

// EventFeed обслуживает WebSocket-подписки на новые события
type EventFeed interface {
	HandleWebSocket(c *gin.Context)
}

type Handler struct {
	eventService service.EventService
	adminService service.AdminService
	feed         EventFeed
	logger       *logrus.Logger
	validate     *validator.Validate
	cfg          *config.Config
}

func NewHandler(eventService service.EventService, adminService service.AdminService, feed EventFeed,
	logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		eventService: eventService,
		adminService: adminService,
		feed:         feed,
		logger:       logger,
		validate:     validator.New(),
		cfg:          cfg,
	}
}

// respondError переводит ошибки сервиса в HTTP-ответ, не раскрывая внутренние детали
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		log.WithError(err).Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, service.ErrAdminNotFound):
		log.WithError(err).Warn("Admin not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
	case errors.Is(err, service.ErrAdminExists):
		log.WithError(err).Warn("Duplicate admin email")
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrAdminExists.Error()})
	case errors.Is(err, service.ErrNoImage), errors.Is(err, storage.ErrImageNotFound):
		log.WithError(err).Warn("Image not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
	case errors.Is(err, service.ErrInvalidImageType):
		log.WithError(err).Warn("Invalid image type")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Create a new event
// @Description Report a new event. Requires API key.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param event body CreateEventRequest true "Event creation request"
// @Success 201 {object} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events [post]
func (h *Handler) createEvent(c *gin.Context) {
	var input CreateEventRequest
	log := h.logger.WithField("method", "createEvent")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), reporterID(c), DTOToEventCreate(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToEventResponse(event))
}

// @Summary Get a list of events
// @Description Get events sorted from newest to oldest
// @Tags Events
// @Produce json
// @Param skip query int false "Number of events to skip" default(0)
// @Param limit query int false "Page size (max 100)" default(50)
// @Param alert_code query string false "Alert code filter" Enums(GREEN, YELLOW, ORANGE, RED)
// @Param tags query string false "Comma separated tags, any of them matches"
// @Success 200 {array} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events [get]
func (h *Handler) listEvents(c *gin.Context) {
	log := h.logger.WithField("method", "listEvents")

	var query ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), QueryToEventFilter(query))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToEventResponses(events))
}

// @Summary Get events as GeoJSON
// @Description Latest events as a GeoJSON FeatureCollection for map clients
// @Tags Events
// @Produce json
// @Param limit query int false "Number of events (max 500)" default(100)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Invalid limit"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/geojson [get]
func (h *Handler) eventsGeoJSON(c *gin.Context) {
	log := h.logger.WithField("method", "eventsGeoJSON")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = v
	}

	collection, err := h.eventService.MapEvents(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, collection)
}

// @Summary Find nearby events
// @Description Events within max_distance meters of a point, nearest first
// @Tags Events
// @Produce json
// @Param lon query number true "Longitude"
// @Param lat query number true "Latitude"
// @Param max_distance query int false "Radius in meters (100..50000)" default(5000)
// @Param limit query int false "Number of events (max 100)" default(20)
// @Success 200 {array} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/nearby [get]
func (h *Handler) nearbyEvents(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyEvents")

	var query NearbyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.eventService.NearbyEvents(c.Request.Context(), QueryToNearby(query))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToEventResponses(events))
}

// @Summary Get analytics report
// @Description Aggregated statistics over all events inside the time range
// @Tags Analytics
// @Produce json
// @Param range query string false "Time range" Enums(7d, 30d, 90d, all) default(30d)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Invalid range"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/analytics [get]
func (h *Handler) eventAnalytics(c *gin.Context) {
	log := h.logger.WithField("method", "eventAnalytics")

	r, err := analytics.ParseTimeRange(c.DefaultQuery("range", string(analytics.Range30Days)))
	if err != nil {
		log.WithError(err).Warn("Invalid analytics range")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.eventService.Analytics(c.Request.Context(), r)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Get event by ID
// @Description Get a single event by its ID
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid event ID"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (h *Handler) getEvent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getEvent").WithField("id", id)

	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEventResponse(event))
}

// @Summary Update an existing event
// @Description Partially update an event by ID. Requires API key.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Event ID"
// @Param event body UpdateEventRequest true "Event update request"
// @Success 200 {object} EventResponse
// @Failure 400 {object} ErrorResponse "Invalid event ID or request body"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/{id} [put]
func (h *Handler) updateEvent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateEvent").WithField("id", id)

	var input UpdateEventRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), id, DTOToEventUpdate(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEventResponse(event))
}

// @Summary Delete an event
// @Description Delete an event and its image by ID. Requires API key.
// @Tags Events
// @Security ApiKeyAuth
// @Param id path string true "Event ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid event ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/{id} [delete]
func (h *Handler) deleteEvent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteEvent").WithField("id", id)

	if err := h.eventService.DeleteEvent(c.Request.Context(), id); err != nil {
		h.respondError(c, log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Upload event image
// @Description Attach a photo to an event, replacing the previous one. Requires API key.
// @Tags Events
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Event ID"
// @Param file formData file true "JPEG, PNG, GIF or WEBP image"
// @Success 200 {object} ImageUploadResponse
// @Failure 400 {object} ErrorResponse "Invalid event ID, missing file or unsupported type"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Failure 413 {object} ErrorResponse "Image too large"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/{id}/image [post]
func (h *Handler) uploadImage(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "uploadImage").WithField("id", id)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.WithError(err).Warn("Image file missing from form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if h.cfg.MaxImageSize > 0 && fileHeader.Size > h.cfg.MaxImageSize {
		log.WithField("size", fileHeader.Size).Warn("Image too large")
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.WithError(err).Error("Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	imageID, err := h.eventService.AttachImage(c.Request.Context(), id, file, fileHeader.Size, contentType)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ImageUploadResponse{Message: "Image uploaded successfully", ImageID: imageID})
}

// @Summary Get event image
// @Description Stream the photo attached to an event
// @Tags Events
// @Produce image/jpeg,image/png,image/gif,image/webp
// @Param id path string true "Event ID"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Invalid event ID"
// @Failure 404 {object} ErrorResponse "Event or image not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /events/{id}/image [get]
func (h *Handler) getImage(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getImage").WithField("id", id)

	img, err := h.eventService.OpenImage(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	defer img.Body.Close()

	c.DataFromReader(http.StatusOK, img.Size, img.ContentType, img.Body, nil)
}

// @Summary Subscribe to new events
// @Description WebSocket stream of {"type":"new_event","event":{...}} messages
// @Tags Events
// @Success 101 "Switching Protocols"
// @Router /ws/events [get]
func (h *Handler) eventsWebSocket(c *gin.Context) {
	h.feed.HandleWebSocket(c)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
