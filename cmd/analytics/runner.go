package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/iIonel/EventReport/internal/analytics"
	"github.com/iIonel/EventReport/internal/livefeed"
	"github.com/iIonel/EventReport/internal/mapview"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	FormatJSON    = "json"
	FormatGeoJSON = "geojson"
)

// runner выводит отчет аналитики или карту событий в out
type runner struct {
	fetcher   *analytics.Fetcher
	loader    *analytics.Loader
	store     *livefeed.Store
	renderer  *mapview.GeoJSONRenderer
	timeRange analytics.TimeRange
	format    string
	out       io.Writer
	outMu     sync.Mutex
	logger    *logrus.Logger
}

func newRunner(fetcher *analytics.Fetcher, loader *analytics.Loader, r analytics.TimeRange, format string,
	out io.Writer, logger *logrus.Logger) (*runner, error) {
	switch format {
	case FormatJSON, FormatGeoJSON:
	default:
		return nil, fmt.Errorf("unsupported format %q, want %s or %s", format, FormatJSON, FormatGeoJSON)
	}
	return &runner{
		fetcher:   fetcher,
		loader:    loader,
		store:     livefeed.NewStore(),
		renderer:  mapview.NewGeoJSONRenderer(out, true),
		timeRange: r,
		format:    format,
		out:       out,
		logger:    logger,
	}, nil
}

// runOnce перечитывает все события и печатает результат
func (r *runner) runOnce(ctx context.Context) error {
	if r.format == FormatGeoJSON {
		token := r.store.BeginSnapshot()
		events, err := r.fetcher.FetchAll(ctx)
		if err != nil {
			return err
		}
		if !r.store.ApplySnapshot(token, events) {
			r.logger.Debug("Discarding stale snapshot")
			return nil
		}
		return r.renderMap()
	}

	report, err := r.loader.Load(ctx, r.timeRange)
	if err != nil {
		if errors.Is(err, analytics.ErrSuperseded) {
			return nil
		}
		return err
	}
	return r.printReport(report)
}

// onPush применяет событие из push-канала и обновляет вывод
func (r *runner) onPush(ctx context.Context, event models.Event) {
	log := r.logger.WithFields(logrus.Fields{"event_id": event.ID, "alert_code": event.AlertCode})
	log.Info("New event received")

	r.store.ApplyPush(event)
	if r.format == FormatGeoJSON {
		if err := r.renderMap(); err != nil {
			log.WithError(err).Error("Failed to render map")
		}
		return
	}
	// отчет пересчитывается целиком, устаревшие загрузки отбрасывает Loader
	go func() {
		if err := r.runOnce(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("Failed to refresh analytics")
		}
	}()
}

func (r *runner) renderMap() error {
	markers := mapview.MarkersFromEvents(r.store.Events())
	return r.renderer.Render(mapview.CenterOf(markers), mapview.DefaultZoom, markers)
}

func (r *runner) printReport(report *analytics.AnalyticsData) error {
	r.outMu.Lock()
	defer r.outMu.Unlock()

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
