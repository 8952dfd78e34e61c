package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTransport    = errors.New("transport failure")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError - ответ сервера со статусом 4xx/5xx
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Detail)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// errorBody покрывает оба формата ошибок: {"error": ...} и {"detail": ...}
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (b *errorBody) message() string {
	if b == nil {
		return ""
	}
	if b.Error != "" {
		return b.Error
	}
	return b.Detail
}

// UserMessage переводит ошибку в текст, который можно показать пользователю
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "session expired, please sign in again"
	case errors.Is(err, ErrNotFound):
		return "the requested event no longer exists"
	}
	return "could not load data"
}
