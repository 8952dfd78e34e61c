package fema

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// PageSize - максимальный $top, который принимает OpenFEMA
const PageSize = 1000

const defaultTimeout = 30 * time.Second

// Client постранично читает декларации катастроф
type Client struct {
	url      string
	pageSize int
	http     *resty.Client
	logger   *logrus.Logger
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithPageSize меняет размер страницы; значения вне (0, PageSize] игнорируются
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= PageSize {
			c.pageSize = n
		}
	}
}

func NewClient(url string, logger *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		url:      url,
		pageSize: PageSize,
		http:     resty.New(),
		logger:   logger,
	}
	c.http.SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json").
		SetLogger(logger)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type disasterPage struct {
	Disasters []Disaster `json:"FemaWebDisasterDeclarations"`
}

// FetchDisasters читает страницы до пустой или неполной. limit <= 0 означает все записи.
// При ошибке на середине возвращаются уже прочитанные декларации вместе с ошибкой.
func (c *Client) FetchDisasters(ctx context.Context, limit int) ([]Disaster, error) {
	var all []Disaster
	for skip := 0; ; skip += c.pageSize {
		top := c.pageSize
		if limit > 0 {
			top = min(top, limit-len(all))
		}

		log := c.logger.WithFields(logrus.Fields{"skip": skip, "top": top})
		log.Debug("Fetching FEMA page")

		page, err := c.fetchPage(ctx, skip, top)
		if err != nil {
			return all, err
		}
		all = append(all, page...)
		log.WithField("total", len(all)).Info("Fetched FEMA disasters")

		if len(page) < top || (limit > 0 && len(all) >= limit) {
			return all, nil
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, skip, top int) ([]Disaster, error) {
	var page disasterPage
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"$skip": strconv.Itoa(skip),
			"$top":  strconv.Itoa(top),
		}).
		SetResult(&page).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fema: could not fetch disasters at skip %d: %w", skip, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fema: api responded with status %d at skip %d", resp.StatusCode(), skip)
	}
	return page.Disasters, nil
}
