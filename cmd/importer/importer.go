package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iIonel/EventReport/internal/fema"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/sirupsen/logrus"
)

var errNoDisasters = errors.New("no data fetched from FEMA API")

type disasterSource interface {
	FetchDisasters(ctx context.Context, limit int) ([]fema.Disaster, error)
}

type eventStore interface {
	CreateBatch(ctx context.Context, events []models.Event) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type options struct {
	clear    bool
	yes      bool
	limit    int
	today    int
	tomorrow int
}

// importer загружает декларации FEMA, превращает их в события и пишет в базу
type importer struct {
	source      disasterSource
	store       eventStore
	transformer *fema.Transformer
	in          io.Reader
	out         io.Writer
	now         func() time.Time
	logger      *logrus.Logger
}

func (im *importer) run(ctx context.Context, opts options) (int, error) {
	disasters, err := im.source.FetchDisasters(ctx, opts.limit)
	if err != nil {
		if len(disasters) == 0 {
			return 0, err
		}
		im.logger.WithError(err).Warnf("FEMA fetch stopped early, importing %d disasters", len(disasters))
	}
	if len(disasters) == 0 {
		return 0, errNoDisasters
	}
	im.logger.WithField("count", len(disasters)).Info("FEMA disasters fetched")

	events := im.transformer.Events(disasters)
	today, tomorrow := im.transformer.SpreadDates(events, opts.today, opts.tomorrow)
	im.logger.WithFields(logrus.Fields{"today": today, "tomorrow": tomorrow}).Info("Moved random events to today and tomorrow")
	im.logSample(events[0])

	wipe, err := im.shouldClear(opts)
	if err != nil {
		return 0, err
	}
	if wipe {
		deleted, err := im.store.DeleteAll(ctx)
		if err != nil {
			return 0, err
		}
		im.logger.WithField("deleted", deleted).Info("Existing events cleared")
	}

	inserted, err := im.store.CreateBatch(ctx, events)
	if err != nil {
		return 0, err
	}
	im.logger.WithField("inserted", inserted).Info("FEMA events imported")
	im.logSummary(fema.Summarize(events, im.now()))
	return inserted, nil
}

// shouldClear: -clear удаляет без вопросов, -yes оставляет данные, иначе спрашиваем
func (im *importer) shouldClear(opts options) (bool, error) {
	if opts.clear {
		return true, nil
	}
	if opts.yes {
		return false, nil
	}
	fmt.Fprint(im.out, "Clear existing events before import? (y/N): ")
	answer, err := bufio.NewReader(im.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

func (im *importer) logSample(e models.Event) {
	desc := []rune(e.Description)
	if len(desc) > 80 {
		desc = append(desc[:80], []rune("...")...)
	}
	im.logger.WithFields(logrus.Fields{
		"description": string(desc),
		"alert_code":  e.AlertCode,
		"tags":        e.Tags,
		"address":     e.Location.Address,
		"coordinates": e.Location.Coordinates,
		"reported_at": e.ReportedAt,
	}).Info("Sample event")
}

func (im *importer) logSummary(s fema.Summary) {
	for _, c := range s.ByAlertCode {
		im.logger.WithFields(logrus.Fields{
			"alert_code": c.Code,
			"count":      c.Value,
			"percent":    c.Percent,
		}).Info("Events by alert code")
	}
	im.logger.WithFields(logrus.Fields{"today": s.Today, "tomorrow": s.Tomorrow}).Info("Events dated today and tomorrow")
}
