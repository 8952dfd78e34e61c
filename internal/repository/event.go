package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/iIonel/EventReport/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL - срок жизни события в кэше
const DefaultCacheTTL = 5 * time.Minute

const eventColumns = `
	id,
	reported_at,
	ST_X(location::geometry) AS longitude,
	ST_Y(location::geometry) AS latitude,
	address,
	alert_code,
	description,
	image_id,
	tags,
	reporter_id,
	created_at`

type EventRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewEventRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.EventRepository {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &EventRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

const insertEventQuery = `
	INSERT INTO events (id, reported_at, location, address, alert_code, description, image_id, tags, reporter_id, created_at)
	VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5, $6, $7, $8, $9, $10, $11);
`

func insertEventArgs(event *models.Event) []any {
	return []any{
		event.ID,
		event.ReportedAt,
		event.Location.Longitude(),
		event.Location.Latitude(),
		event.Location.Address,
		string(event.AlertCode),
		event.Description,
		event.ImageID,
		nonNilTags(event.Tags),
		event.ReporterID,
		event.CreatedAt,
	}
}

// Create создает новую запись о событии в бд
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if _, err := r.db.Exec(ctx, insertEventQuery, insertEventArgs(event)...); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByID возвращает событие по его UUID
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1;`

	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event with id %s: %w", id, service.ErrEventNotFound)
		}
		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events SET
			location = ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			address = $3,
			alert_code = $4,
			description = $5,
			tags = $6
		WHERE id = $7;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		event.Location.Longitude(),
		event.Location.Latitude(),
		event.Location.Address,
		string(event.AlertCode),
		event.Description,
		nonNilTags(event.Tags),
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	// RowsAffected() == 0 означает, что события с таким id нет
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("event with id %s not found for update: %w", event.ID, service.ErrEventNotFound)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("event with id %s not found for delete: %w", id, service.ErrEventNotFound)
	}
	return nil
}

// SetImage привязывает изображение к событию (nil отвязывает)
func (r *EventRepository) SetImage(ctx context.Context, id uuid.UUID, imageID *uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE events SET image_id = $1 WHERE id = $2;`, imageID, id)
	if err != nil {
		return fmt.Errorf("failed to set event image: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("event with id %s not found for image: %w", id, service.ErrEventNotFound)
	}
	return nil
}

// List возвращает события от новых к старым с фильтрами и пагинацией
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	query, args := buildListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// Nearby находит события в радиусе MaxDistance метров, ближайшие первыми
func (r *EventRepository) Nearby(ctx context.Context, q models.NearbyQuery) ([]models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ST_DWithin(
			location,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		)
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography)
		LIMIT $4;
	`
	rows, err := r.db.Query(ctx, query, q.Longitude, q.Latitude, q.MaxDistance, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// buildListQuery собирает выборку; теги совпадают, если пересекается хотя бы один
func buildListQuery(filter models.EventFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.AlertCode != "" {
		args = append(args, string(filter.AlertCode))
		conditions = append(conditions, fmt.Sprintf("alert_code = $%d", len(args)))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		conditions = append(conditions, fmt.Sprintf("tags && $%d::text[]", len(args)))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(eventColumns)
	sb.WriteString("\n\t\tFROM events")
	if len(conditions) > 0 {
		sb.WriteString("\n\t\tWHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	args = append(args, filter.Limit, filter.Skip)
	fmt.Fprintf(&sb, "\n\t\tORDER BY reported_at DESC, id\n\t\tLIMIT $%d OFFSET $%d;", len(args)-1, len(args))
	return sb.String(), args
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var (
		event    models.Event
		lon, lat float64
		address  string
	)
	err := row.Scan(
		&event.ID,
		&event.ReportedAt,
		&lon,
		&lat,
		&address,
		&event.AlertCode,
		&event.Description,
		&event.ImageID,
		&event.Tags,
		&event.ReporterID,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	event.Location = models.NewPoint(lon, lat, address)
	event.ReportedAt = event.ReportedAt.UTC()
	event.CreatedAt = event.CreatedAt.UTC()
	return &event, nil
}

func collectEvents(rows pgx.Rows) ([]models.Event, error) {
	events := make([]models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return events, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("event:%s", id.String())
}

// GetEventFromCache пытается получить событие из Redis; промах возвращает (nil, nil)
func (r *EventRepository) GetEventFromCache(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	val, err := r.redisClient.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event from cache: %w", err)
	}

	event := &models.Event{}
	if err := json.Unmarshal(val, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event from cache: %w", err)
	}
	return event, nil
}

// SetEventCache сохраняет событие в Redis
func (r *EventRepository) SetEventCache(ctx context.Context, event *models.Event) error {
	val, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, cacheKey(event.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set event in cache: %w", err)
	}
	return nil
}

// InvalidateEventCache удаляет событие из Redis кэша
func (r *EventRepository) InvalidateEventCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate event cache: %w", err)
	}
	return nil
}
