package v1

import (
	"time"

	"github.com/google/uuid"
)

// LocationRequest DTO точки GeoJSON
// @Description Точка GeoJSON, координаты [longitude, latitude]
type LocationRequest struct {
	Type        string    `json:"type,omitempty" validate:"omitempty,eq=Point"`
	Coordinates []float64 `json:"coordinates" validate:"required,len=2"`
	Address     string    `json:"address,omitempty" validate:"max=500"`
}

// CreateEventRequest DTO для создания события
// @Description DTO для создания события
type CreateEventRequest struct {
	Location    LocationRequest `json:"location"`
	AlertCode   string          `json:"alert_code" validate:"required,oneof=GREEN YELLOW ORANGE RED"`
	Description string          `json:"description" validate:"max=2000"`
	Tags        []string        `json:"tags,omitempty" validate:"max=20,dive,max=50"`
}

// UpdateEventRequest DTO для частичного обновления события
// @Description Отсутствующие поля не изменяются
type UpdateEventRequest struct {
	Location    *LocationRequest `json:"location,omitempty"`
	AlertCode   *string          `json:"alert_code,omitempty" validate:"omitempty,oneof=GREEN YELLOW ORANGE RED"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Tags        []string         `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
}

// ListEventsQuery параметры выборки GET /events
type ListEventsQuery struct {
	Skip      int    `form:"skip" validate:"gte=0"`
	Limit     int    `form:"limit" validate:"gte=0"`
	AlertCode string `form:"alert_code" validate:"omitempty,oneof=GREEN YELLOW ORANGE RED"`
	Tags      string `form:"tags"`
}

// NearbyQuery параметры поиска GET /events/nearby
type NearbyQuery struct {
	Longitude   *float64 `form:"lon" validate:"required,longitude"`
	Latitude    *float64 `form:"lat" validate:"required,latitude"`
	MaxDistance int      `form:"max_distance" validate:"gte=0"`
	Limit       int      `form:"limit" validate:"gte=0"`
}

// LocationResponse DTO точки в ответе
type LocationResponse struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address,omitempty"`
}

// EventResponse DTO для ответа с информацией о событии
// @Description DTO для ответа с информацией о событии
type EventResponse struct {
	ID          uuid.UUID        `json:"id"`
	ReportedAt  time.Time        `json:"reported_at"`
	Location    LocationResponse `json:"location"`
	AlertCode   string           `json:"alert_code"`
	Description string           `json:"description"`
	ImageID     *uuid.UUID       `json:"image_id"`
	Tags        []string         `json:"tags"`
	ReporterID  string           `json:"reporter_id"`
	CreatedAt   time.Time        `json:"created_at"`
}

// CreateAdminRequest DTO для добавления получателя уведомлений
// @Description Администратор получает email и SMS о каждом новом событии
type CreateAdminRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=32"`
}

// AdminResponse DTO администратора в ответе
type AdminResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageUploadResponse DTO ответа на загрузку фото
type ImageUploadResponse struct {
	Message string    `json:"message"`
	ImageID uuid.UUID `json:"image_id"`
}

// ErrorResponse DTO ошибки
type ErrorResponse struct {
	Error string `json:"error"`
}
