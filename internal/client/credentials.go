package client

import (
	"errors"
	"strings"
	"sync"
)

// CredentialProvider отдает токен для исходящих запросов
type CredentialProvider interface {
	Token() (string, bool)
}

// Invalidator реализуют провайдеры, которые нужно сбросить после ответа 401
type Invalidator interface {
	Invalidate()
}

type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticated
)

func (s AuthState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

var ErrEmptyToken = errors.New("empty token")

// Session хранит токен в памяти: unauthenticated -> authenticated(token) -> unauthenticated
type Session struct {
	mu    sync.RWMutex
	token string
}

func NewSession() *Session {
	return &Session{}
}

// SignIn переводит сессию в состояние authenticated
func (s *Session) SignIn(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *Session) SignOut() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

func (s *Session) Invalidate() {
	s.SignOut()
}

func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Session) State() AuthState {
	if _, ok := s.Token(); ok {
		return Authenticated
	}
	return Unauthenticated
}
