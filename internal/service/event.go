package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/analytics"
	"github.com/iIonel/EventReport/internal/config"
	"github.com/iIonel/EventReport/internal/mapview"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/iIonel/EventReport/internal/storage"
	"github.com/iIonel/EventReport/internal/webhook"
	"github.com/sirupsen/logrus"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidImageType = errors.New("invalid image type, allowed: jpeg, png, gif, webp")
	ErrNoImage          = errors.New("event has no image")
	ErrValidation       = errors.New("validation failed")
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100

	DefaultMapLimit = 100
	MaxMapLimit     = 500

	DefaultNearbyDistance = 5000
	MinNearbyDistance     = 100
	MaxNearbyDistance     = 50000
	DefaultNearbyLimit    = 20
	MaxNearbyLimit        = 100
)

// EventRepository определяет контракт для работы с бд событий
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Nearby(ctx context.Context, query models.NearbyQuery) ([]models.Event, error)
	SetImage(ctx context.Context, id uuid.UUID, imageID *uuid.UUID) error

	GetEventFromCache(ctx context.Context, id uuid.UUID) (*models.Event, error)
	SetEventCache(ctx context.Context, event *models.Event) error
	InvalidateEventCache(ctx context.Context, id uuid.UUID) error
}

// ImageStore - хранилище изображений событий
type ImageStore interface {
	Put(ctx context.Context, id uuid.UUID, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, id uuid.UUID) (*storage.Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Broadcaster рассылает новые события подключенным клиентам
type Broadcaster interface {
	BroadcastNewEvent(ctx context.Context, event models.Event) error
}

// EventService определяет контракт бизнес-логики событий
type EventService interface {
	CreateEvent(ctx context.Context, reporterID string, in models.EventCreate) (*models.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	MapEvents(ctx context.Context, limit int) (mapview.FeatureCollection, error)
	NearbyEvents(ctx context.Context, query models.NearbyQuery) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, update models.EventUpdate) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	AttachImage(ctx context.Context, id uuid.UUID, r io.Reader, size int64, contentType string) (uuid.UUID, error)
	OpenImage(ctx context.Context, id uuid.UUID) (*storage.Image, error)
	Analytics(ctx context.Context, r analytics.TimeRange) (*analytics.AnalyticsData, error)
}

type Option func(*eventService)

// WithCreatedObserver получает уровень срочности каждого созданного события
func WithCreatedObserver(observe func(alertCode string)) Option {
	return func(s *eventService) { s.onCreated = observe }
}

// WithCacheObserver получает результат каждого обращения к кэшу
func WithCacheObserver(observe func(hit bool)) Option {
	return func(s *eventService) { s.onCache = observe }
}

type eventService struct {
	repo        EventRepository
	images      ImageStore
	broadcaster Broadcaster
	webhook     webhook.WebhookPublisher
	logger      *logrus.Logger
	loc         *time.Location
	now         func() time.Time
	onCreated   func(alertCode string)
	onCache     func(hit bool)
}

func NewEventService(repo EventRepository, images ImageStore, broadcaster Broadcaster, publisher webhook.WebhookPublisher,
	logger *logrus.Logger, cfg *config.Config, opts ...Option) EventService {
	loc, err := config.LoadLocation(cfg.AnalyticsTimezone)
	if err != nil {
		logger.WithError(err).Warn("Falling back to local timezone for analytics")
		loc = time.Local
	}

	s := &eventService{
		repo:        repo,
		images:      images,
		broadcaster: broadcaster,
		webhook:     publisher,
		logger:      logger,
		loc:         loc,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEvent сохраняет событие, рассылает его подписчикам и ставит уведомление администраторам
func (s *eventService) CreateEvent(ctx context.Context, reporterID string, in models.EventCreate) (*models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "event",
		"method":      "CreateEvent",
		"reporter_id": reporterID,
		"alert_code":  in.AlertCode,
	})
	log.Info("Attempting to create a new event")

	in.Normalize()
	if err := in.Validate(); err != nil {
		log.WithError(err).Warn("Rejected invalid event")
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := s.now().UTC()
	event := &models.Event{
		ID:          uuid.New(),
		ReportedAt:  now,
		Location:    in.Location,
		AlertCode:   in.AlertCode,
		Description: in.Description,
		Tags:        in.Tags,
		ReporterID:  reporterID,
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		log.WithError(err).Error("Failed to create event in repository")
		return nil, fmt.Errorf("service: could not create event: %w", err)
	}
	log = log.WithField("event_id", event.ID)
	log.Info("Event created successfully")

	if s.onCreated != nil {
		s.onCreated(string(event.AlertCode))
	}

	// рассылка и уведомление не влияют на результат запроса
	if err := s.broadcaster.BroadcastNewEvent(ctx, *event); err != nil {
		log.WithError(err).Error("Failed to broadcast new event")
	}
	if err := s.webhook.Publish(ctx, webhook.NotificationFromEvent(event)); err != nil {
		log.WithError(err).Error("Failed to enqueue admin notification")
	}
	return event, nil
}

// GetEvent получает событие по ID, сначала из кэша
func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "event",
		"method":   "GetEvent",
		"event_id": id,
	})
	log.Debug("Fetching event by ID")

	cached, err := s.repo.GetEventFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read event from cache")
	}
	if cached != nil {
		s.observeCache(true)
		log.Debug("Event served from cache")
		return cached, nil
	}
	s.observeCache(false)

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			log.Info("Event not found")
			return nil, err
		}
		log.WithError(err).Error("Failed to get event in repository")
		return nil, fmt.Errorf("service: could not get event: %w", err)
	}

	if err := s.repo.SetEventCache(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to cache event")
	}
	return event, nil
}

// ListEvents возвращает события от новых к старым
func (s *eventService) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	if filter.AlertCode != "" && !filter.AlertCode.Valid() {
		return nil, fmt.Errorf("%w: unknown alert code %q", ErrValidation, filter.AlertCode)
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	filter.Limit = clampLimit(filter.Limit, DefaultListLimit, MaxListLimit)
	filter.Tags = models.NormalizeTags(filter.Tags)

	log := s.logger.WithFields(logrus.Fields{
		"service": "event",
		"method":  "ListEvents",
		"skip":    filter.Skip,
		"limit":   filter.Limit,
	})
	log.Debug("Listing events")

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list events from repository")
		return nil, fmt.Errorf("service: could not list events: %w", err)
	}

	log.WithField("count", len(events)).Debug("Events listed successfully")
	return events, nil
}

// MapEvents - последние события в виде GeoJSON для карты
func (s *eventService) MapEvents(ctx context.Context, limit int) (mapview.FeatureCollection, error) {
	filter := models.EventFilter{Limit: clampLimit(limit, DefaultMapLimit, MaxMapLimit)}
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"service": "event", "method": "MapEvents"}).
			WithError(err).Error("Failed to list events for map")
		return mapview.FeatureCollection{}, fmt.Errorf("service: could not list events for map: %w", err)
	}
	return mapview.FeatureCollectionFromEvents(events), nil
}

// NearbyEvents находит события в радиусе от точки, ближайшие первыми
func (s *eventService) NearbyEvents(ctx context.Context, query models.NearbyQuery) ([]models.Event, error) {
	if err := models.NewPoint(query.Longitude, query.Latitude, "").Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if query.MaxDistance == 0 {
		query.MaxDistance = DefaultNearbyDistance
	}
	if query.MaxDistance < MinNearbyDistance || query.MaxDistance > MaxNearbyDistance {
		return nil, fmt.Errorf("%w: max_distance must be between %d and %d meters",
			ErrValidation, MinNearbyDistance, MaxNearbyDistance)
	}
	query.Limit = clampLimit(query.Limit, DefaultNearbyLimit, MaxNearbyLimit)

	log := s.logger.WithFields(logrus.Fields{
		"service":      "event",
		"method":       "NearbyEvents",
		"longitude":    query.Longitude,
		"latitude":     query.Latitude,
		"max_distance": query.MaxDistance,
	})
	log.Debug("Searching nearby events")

	events, err := s.repo.Nearby(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to find nearby events")
		return nil, fmt.Errorf("service: could not find nearby events: %w", err)
	}
	return events, nil
}

// UpdateEvent применяет частичное обновление
func (s *eventService) UpdateEvent(ctx context.Context, id uuid.UUID, update models.EventUpdate) (*models.Event, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "event",
		"method":   "UpdateEvent",
		"event_id": id,
	})
	log.Info("Attempting to update event")

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			log.Warn("Attempted to update a non-existent event")
			return nil, err
		}
		log.WithError(err).Error("Failed to get event in repository")
		return nil, fmt.Errorf("service: could not get event for update: %w", err)
	}

	if err := update.Apply(existing); err != nil {
		log.WithError(err).Warn("Rejected invalid event update")
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update event in repository")
		return nil, fmt.Errorf("service: could not update event: %w", err)
	}
	s.invalidate(ctx, log, id)

	log.Info("Event updated successfully")
	return existing, nil
}

// DeleteEvent удаляет событие вместе с изображением
func (s *eventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "event",
		"method":   "DeleteEvent",
		"event_id": id,
	})
	log.Info("Attempting to delete event")

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			log.Warn("Attempted to delete a non-existent event")
			return err
		}
		log.WithError(err).Error("Failed to get event in repository")
		return fmt.Errorf("service: could not get event for delete: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete event in repository")
		return fmt.Errorf("service: could not delete event: %w", err)
	}
	s.invalidate(ctx, log, id)

	if existing.HasImage() {
		if err := s.images.Delete(ctx, *existing.ImageID); err != nil {
			log.WithError(err).Warn("Failed to delete event image")
		}
	}

	log.Info("Event deleted successfully")
	return nil
}

// AttachImage загружает изображение события; предыдущее изображение заменяется
func (s *eventService) AttachImage(ctx context.Context, id uuid.UUID, r io.Reader, size int64, contentType string) (uuid.UUID, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "event",
		"method":       "AttachImage",
		"event_id":     id,
		"content_type": contentType,
	})

	if !storage.IsAllowedContentType(contentType) {
		log.Warn("Rejected image with unsupported content type")
		return uuid.Nil, ErrInvalidImageType
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return uuid.Nil, err
		}
		log.WithError(err).Error("Failed to get event in repository")
		return uuid.Nil, fmt.Errorf("service: could not get event for image: %w", err)
	}

	imageID := uuid.New()
	if err := s.images.Put(ctx, imageID, r, size, contentType); err != nil {
		log.WithError(err).Error("Failed to store image")
		return uuid.Nil, fmt.Errorf("service: could not store image: %w", err)
	}

	if err := s.repo.SetImage(ctx, id, &imageID); err != nil {
		log.WithError(err).Error("Failed to link image to event")
		if delErr := s.images.Delete(ctx, imageID); delErr != nil {
			log.WithError(delErr).Warn("Failed to remove orphaned image")
		}
		return uuid.Nil, fmt.Errorf("service: could not link image: %w", err)
	}
	s.invalidate(ctx, log, id)

	if existing.HasImage() {
		if err := s.images.Delete(ctx, *existing.ImageID); err != nil {
			log.WithError(err).Warn("Failed to delete previous image")
		}
	}

	log.WithField("image_id", imageID).Info("Image attached successfully")
	return imageID, nil
}

// OpenImage открывает изображение события, Body закрывает вызывающий
func (s *eventService) OpenImage(ctx context.Context, id uuid.UUID) (*storage.Image, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.HasImage() {
		return nil, ErrNoImage
	}

	img, err := s.images.Get(ctx, *event.ImageID)
	if err != nil {
		if errors.Is(err, storage.ErrImageNotFound) {
			return nil, ErrNoImage
		}
		return nil, fmt.Errorf("service: could not open image: %w", err)
	}
	return img, nil
}

// Analytics собирает все события постранично и строит отчет за период
func (s *eventService) Analytics(ctx context.Context, r analytics.TimeRange) (*analytics.AnalyticsData, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "event",
		"method":  "Analytics",
		"range":   r,
	})

	events, err := analytics.NewFetcher(repositoryPager{repo: s.repo}, s.logger).FetchAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to fetch events for analytics")
		return nil, fmt.Errorf("service: could not build analytics: %w", err)
	}

	data := analytics.Compute(events, r, s.now(), s.loc)
	log.WithFields(logrus.Fields{"total": data.Stats.Total, "skipped": data.Skipped}).Info("Analytics computed")
	return data, nil
}

func (s *eventService) invalidate(ctx context.Context, log *logrus.Entry, id uuid.UUID) {
	if err := s.repo.InvalidateEventCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate event cache")
	}
}

func (s *eventService) observeCache(hit bool) {
	if s.onCache != nil {
		s.onCache(hit)
	}
}

// repositoryPager отдает репозиторий сборщику аналитики как источник страниц
type repositoryPager struct {
	repo EventRepository
}

func (p repositoryPager) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	return p.repo.List(ctx, filter)
}

func clampLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
