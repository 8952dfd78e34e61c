package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AlertCode - уровень срочности инцидента
type AlertCode string

const (
	AlertGreen  AlertCode = "GREEN"
	AlertYellow AlertCode = "YELLOW"
	AlertOrange AlertCode = "ORANGE"
	AlertRed    AlertCode = "RED"
)

var alertCodes = []AlertCode{AlertGreen, AlertYellow, AlertOrange, AlertRed}

// ErrInvalidAlertCode возвращается для значений вне перечисления
var ErrInvalidAlertCode = errors.New("invalid alert code")

// AlertCodes возвращает все уровни от наименее к наиболее срочному
func AlertCodes() []AlertCode {
	out := make([]AlertCode, len(alertCodes))
	copy(out, alertCodes)
	return out
}

// ParseAlertCode разбирает код без учета регистра
func ParseAlertCode(s string) (AlertCode, error) {
	code := AlertCode(strings.ToUpper(strings.TrimSpace(s)))
	if !code.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAlertCode, s)
	}
	return code, nil
}

func (a AlertCode) Valid() bool {
	return a.Rank() >= 0
}

// Rank возвращает порядковый номер уровня (0 для GREEN) или -1
func (a AlertCode) Rank() int {
	for i, code := range alertCodes {
		if code == a {
			return i
		}
	}
	return -1
}

// IsUrgent - ORANGE и RED считаются срочными
func (a AlertCode) IsUrgent() bool {
	return a == AlertOrange || a == AlertRed
}

// Location - точка GeoJSON, координаты в порядке (longitude, latitude)
type Location struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address,omitempty"`
}

func NewPoint(lon, lat float64, address string) Location {
	return Location{
		Type:        "Point",
		Coordinates: []float64{lon, lat},
		Address:     address,
	}
}

func (l Location) Longitude() float64 {
	if len(l.Coordinates) < 2 {
		return 0
	}
	return l.Coordinates[0]
}

func (l Location) Latitude() float64 {
	if len(l.Coordinates) < 2 {
		return 0
	}
	return l.Coordinates[1]
}

// Validate проверяет, что координаты - пара конечных чисел в допустимых пределах
func (l Location) Validate() error {
	if l.Type != "" && l.Type != "Point" {
		return fmt.Errorf("unsupported location type %q", l.Type)
	}
	if len(l.Coordinates) != 2 {
		return fmt.Errorf("location must have exactly 2 coordinates, got %d", len(l.Coordinates))
	}
	lon, lat := l.Coordinates[0], l.Coordinates[1]
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errors.New("location coordinates must be finite")
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range", lon)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range", lat)
	}
	return nil
}

type Event struct {
	ID          uuid.UUID  `json:"id"`
	ReportedAt  time.Time  `json:"reported_at"`
	Location    Location   `json:"location"`
	AlertCode   AlertCode  `json:"alert_code"`
	Description string     `json:"description"`
	ImageID     *uuid.UUID `json:"image_id"`
	Tags        []string   `json:"tags"`
	ReporterID  string     `json:"reporter_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (e *Event) HasImage() bool {
	return e.ImageID != nil && *e.ImageID != uuid.Nil
}

// EventCreate - данные, которые клиент отправляет при создании события
type EventCreate struct {
	Location    Location  `json:"location"`
	AlertCode   AlertCode `json:"alert_code"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
}

// Normalize приводит теги к виду, в котором они хранятся: без пробелов по краям,
// без пустых значений и без повторов (с учетом регистра, сохраняется первое вхождение)
func (c *EventCreate) Normalize() {
	c.Tags = NormalizeTags(c.Tags)
	if c.Location.Type == "" {
		c.Location.Type = "Point"
	}
}

func (c *EventCreate) Validate() error {
	if !c.AlertCode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAlertCode, c.AlertCode)
	}
	if err := c.Location.Validate(); err != nil {
		return err
	}
	return nil
}

func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// EventUpdate - частичное обновление, nil-поля не изменяются
type EventUpdate struct {
	Location    *Location  `json:"location,omitempty"`
	AlertCode   *AlertCode `json:"alert_code,omitempty"`
	Description *string    `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// Apply применяет обновление к событию
func (u *EventUpdate) Apply(e *Event) error {
	if u.Location != nil {
		loc := *u.Location
		if loc.Type == "" {
			loc.Type = "Point"
		}
		if err := loc.Validate(); err != nil {
			return err
		}
		e.Location = loc
	}
	if u.AlertCode != nil {
		if !u.AlertCode.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidAlertCode, *u.AlertCode)
		}
		e.AlertCode = *u.AlertCode
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Tags != nil {
		e.Tags = NormalizeTags(u.Tags)
	}
	return nil
}

// EventFilter - параметры постраничной выборки событий
type EventFilter struct {
	AlertCode AlertCode
	Tags      []string
	Skip      int
	Limit     int
}

// NearbyQuery - поиск событий вокруг точки
type NearbyQuery struct {
	Longitude   float64
	Latitude    float64
	MaxDistance int
	Limit       int
}
