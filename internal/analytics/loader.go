package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrSuperseded возвращается загрузке, которую обогнала более новая
var ErrSuperseded = errors.New("analytics: load superseded by a newer request")

// Loader выполняет цикл fetch -> compute по запросу пользователя.
// Каждая загрузка получает номер поколения; результат публикуется, только если
// за время загрузки не был запущен более новый запрос, а предыдущий запрос отменяется.
type Loader struct {
	source EventSource
	loc    *time.Location
	now    func() time.Time
	logger *logrus.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	snapshot   *AnalyticsData
}

type LoaderOption func(*Loader)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) { l.now = now }
}

func WithLocation(loc *time.Location) LoaderOption {
	return func(l *Loader) { l.loc = loc }
}

func NewLoader(source EventSource, logger *logrus.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{
		source: source,
		loc:    time.Local,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load загружает все события и строит отчет для окна r.
// Ошибки не повторяются автоматически, последний опубликованный отчет сохраняется.
func (l *Loader) Load(ctx context.Context, r TimeRange) (*AnalyticsData, error) {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()
	defer cancel()

	log := l.logger.WithFields(logrus.Fields{
		"component":  "analytics",
		"method":     "Load",
		"range":      r,
		"generation": gen,
	})

	events, err := l.source.FetchAll(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		log.Debug("Discarding superseded analytics load")
		return nil, ErrSuperseded
	}
	l.cancel = nil
	if err != nil {
		log.WithError(err).Error("Failed to load analytics data")
		return nil, fmt.Errorf("analytics: could not load data: %w", err)
	}

	data := Compute(events, r, l.now(), l.loc)
	l.snapshot = data
	log.WithFields(logrus.Fields{"total": data.Stats.Total, "skipped": data.Skipped}).Info("Analytics data computed")
	return data, nil
}

// Snapshot возвращает последний опубликованный отчет или nil
func (l *Loader) Snapshot() *AnalyticsData {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot
}

// Generation - номер последнего запущенного запроса
func (l *Loader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}
