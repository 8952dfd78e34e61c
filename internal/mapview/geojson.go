package mapview

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/iIonel/EventReport/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// FeatureCollectionFromEvents строит GeoJSON для событий, координаты (lon, lat)
func FeatureCollectionFromEvents(events []models.Event) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(events))}
	for _, e := range events {
		if len(e.Location.Coordinates) < 2 {
			continue
		}
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{e.Location.Longitude(), e.Location.Latitude()},
			},
			Properties: map[string]any{
				"id":          e.ID.String(),
				"alert_code":  e.AlertCode,
				"description": e.Description,
				"tags":        tags,
				"reported_at": e.ReportedAt.UTC().Format(time.RFC3339),
				"color":       AlertColor(e.AlertCode),
			},
		})
	}
	return fc
}

func featureCollectionFromMarkers(markers []Marker) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(markers))}
	for _, m := range markers {
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{m.Position.Lng, m.Position.Lat},
			},
			Properties: map[string]any{
				"id":    m.ID,
				"title": m.Title,
				"color": m.Color,
			},
		})
	}
	return fc
}

type geoJSONView struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
	FeatureCollection
}

// GeoJSONRenderer выводит карту как GeoJSON FeatureCollection с центром и масштабом
type GeoJSONRenderer struct {
	TapDispatcher

	mu     sync.Mutex
	out    io.Writer
	indent bool
}

func NewGeoJSONRenderer(out io.Writer, indent bool) *GeoJSONRenderer {
	return &GeoJSONRenderer{out: out, indent: indent}
}

func (r *GeoJSONRenderer) Render(center LatLng, zoom int, markers []Marker) error {
	view := geoJSONView{Center: center, Zoom: zoom, FeatureCollection: featureCollectionFromMarkers(markers)}

	r.mu.Lock()
	defer r.mu.Unlock()
	enc := json.NewEncoder(r.out)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("mapview: could not render geojson: %w", err)
	}
	return nil
}

func (r *GeoJSONRenderer) OnTap(callback func(lat, lng float64)) Subscription {
	return r.Subscribe(callback)
}
