package mapview

import (
	"github.com/iIonel/EventReport/internal/models"
)

const (
	DefaultZoom = 12

	unknownColor = "#6c757d"
)

// DefaultCenter используется, когда на карте нет ни одного маркера (Бухарест)
var DefaultCenter = LatLng{Lat: 44.4268, Lng: 26.1025}

var alertColors = map[models.AlertCode]string{
	models.AlertGreen:  "#28a745",
	models.AlertYellow: "#ffc107",
	models.AlertOrange: "#fd7e14",
	models.AlertRed:    "#dc3545",
}

// AlertColor возвращает цвет маркера для уровня срочности
func AlertColor(code models.AlertCode) string {
	if c, ok := alertColors[code]; ok {
		return c
	}
	return unknownColor
}

func MarkersFromEvents(events []models.Event) []Marker {
	markers := make([]Marker, 0, len(events))
	for _, e := range events {
		if len(e.Location.Coordinates) < 2 {
			continue
		}
		title := e.Description
		if title == "" {
			title = string(e.AlertCode)
		}
		markers = append(markers, Marker{
			ID:       e.ID.String(),
			Position: LatLng{Lat: e.Location.Latitude(), Lng: e.Location.Longitude()},
			Color:    AlertColor(e.AlertCode),
			Title:    title,
		})
	}
	return markers
}

// CenterOf - среднее положение маркеров
func CenterOf(markers []Marker) LatLng {
	if len(markers) == 0 {
		return DefaultCenter
	}
	var lat, lng float64
	for _, m := range markers {
		lat += m.Position.Lat
		lng += m.Position.Lng
	}
	n := float64(len(markers))
	return LatLng{Lat: lat / n, Lng: lng / n}
}
