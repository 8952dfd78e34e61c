package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 15 * time.Second

// Client - обертка над REST API событий
type Client struct {
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	http        *resty.Client
	credentials CredentialProvider
	logger      *logrus.Logger
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithCredentials подключает провайдера токена ко всем запросам
func WithCredentials(p CredentialProvider) Option {
	return func(c *Client) { c.credentials = p }
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient != nil {
		c.http = resty.NewWithClient(c.httpClient)
	} else {
		c.http = resty.New()
	}
	c.http.SetBaseURL(c.baseURL).
		SetTimeout(c.timeout).
		SetHeader("Accept", "application/json").
		SetLogger(c.logger)
	c.http.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if c.credentials == nil {
			return nil
		}
		if token, ok := c.credentials.Token(); ok {
			r.SetAuthToken(token)
		}
		return nil
	})
	return c
}

// ListEvents запрашивает одну страницу GET /events
func (c *Client) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	params := map[string]string{
		"skip": strconv.Itoa(filter.Skip),
	}
	if filter.Limit > 0 {
		params["limit"] = strconv.Itoa(filter.Limit)
	}
	if filter.AlertCode != "" {
		params["alert_code"] = string(filter.AlertCode)
	}
	if len(filter.Tags) > 0 {
		params["tags"] = strings.Join(filter.Tags, ",")
	}

	var events []models.Event
	req := c.http.R().SetContext(ctx).SetQueryParams(params).SetResult(&events)
	if err := c.do(req, http.MethodGet, "/events"); err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event := &models.Event{}
	req := c.http.R().SetContext(ctx).SetPathParam("id", id.String()).SetResult(event)
	if err := c.do(req, http.MethodGet, "/events/{id}"); err != nil {
		return nil, err
	}
	return event, nil
}

// CreateEvent отправляет новое событие. Теги нормализуются до отправки,
// id и временные метки назначает сервер.
func (c *Client) CreateEvent(ctx context.Context, in models.EventCreate) (*models.Event, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}

	event := &models.Event{}
	req := c.http.R().SetContext(ctx).SetBody(in).SetResult(event)
	if err := c.do(req, http.MethodPost, "/events"); err != nil {
		return nil, err
	}
	return event, nil
}

type uploadImageResponse struct {
	Message string    `json:"message"`
	ImageID uuid.UUID `json:"image_id"`
}

// UploadImage прикрепляет фото к существующему событию
func (c *Client) UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, r io.Reader) (uuid.UUID, error) {
	result := &uploadImageResponse{}
	req := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id.String()).
		SetMultipartField("file", filename, contentType, r).
		SetResult(result)
	if err := c.do(req, http.MethodPost, "/events/{id}/image"); err != nil {
		return uuid.Nil, err
	}
	return result.ImageID, nil
}

// ImageURL - адрес изображения события
func (c *Client) ImageURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/events/%s/image", c.baseURL, id)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(req *resty.Request, method, path string) error {
	log := c.logger.WithFields(logrus.Fields{
		"component": "client",
		"method":    method,
		"path":      path,
	})

	req.SetError(&errorBody{})
	resp, err := req.Execute(method, path)
	if err != nil {
		log.WithError(err).Warn("Request failed")
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}

	if resp.IsError() {
		body, _ := resp.Error().(*errorBody)
		apiErr := &APIError{StatusCode: resp.StatusCode(), Detail: body.message()}
		if apiErr.StatusCode == http.StatusUnauthorized {
			if inv, ok := c.credentials.(Invalidator); ok {
				inv.Invalidate()
			}
		}
		log.WithField("status", apiErr.StatusCode).Warn("Request rejected by server")
		return fmt.Errorf("%s %s: %w", method, path, apiErr)
	}

	log.WithField("status", resp.StatusCode()).Debug("Request completed")
	return nil
}
