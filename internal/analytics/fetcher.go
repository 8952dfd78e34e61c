package analytics

import (
	"context"
	"fmt"

	"github.com/iIonel/EventReport/internal/models"
	"github.com/sirupsen/logrus"
)

// PageSize - размер страницы при полной выгрузке событий
const PageSize = 100

// EventPager - постраничный источник событий (HTTP-клиент или репозиторий)
type EventPager interface {
	ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
}

// EventSource отдает полный набор событий
type EventSource interface {
	FetchAll(ctx context.Context) ([]models.Event, error)
}

type Fetcher struct {
	pager  EventPager
	logger *logrus.Logger
}

func NewFetcher(pager EventPager, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		pager:  pager,
		logger: logger,
	}
}

// FetchAll последовательно запрашивает страницы по PageSize, начиная со смещения 0,
// пока очередная страница не окажется неполной. Ошибка любой страницы прерывает
// выгрузку, частичный результат отбрасывается.
func (f *Fetcher) FetchAll(ctx context.Context) ([]models.Event, error) {
	log := f.logger.WithFields(logrus.Fields{
		"component": "analytics",
		"method":    "FetchAll",
	})

	events := make([]models.Event, 0, PageSize)
	for skip := 0; ; skip += PageSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetch aborted at offset %d: %w", skip, err)
		}
		page, err := f.pager.ListEvents(ctx, models.EventFilter{Skip: skip, Limit: PageSize})
		if err != nil {
			log.WithError(err).WithField("skip", skip).Error("Failed to fetch events page")
			return nil, fmt.Errorf("fetch page at offset %d: %w", skip, err)
		}
		log.WithFields(logrus.Fields{"skip": skip, "count": len(page)}).Debug("Fetched events page")

		events = append(events, page...)
		if len(page) < PageSize {
			break
		}
	}

	log.WithField("total", len(events)).Info("All events fetched")
	return events, nil
}
