package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Admin - получатель уведомлений о новых событиях
type Admin struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Admin) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

type AdminCreate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Normalize убирает пробелы по краям и приводит email к нижнему регистру
func (c *AdminCreate) Normalize() {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
}

func (c *AdminCreate) Validate() error {
	if c.FirstName == "" || c.LastName == "" {
		return errors.New("first_name and last_name are required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errors.New("email is invalid")
	}
	if c.Phone == "" {
		return errors.New("phone is required")
	}
	return nil
}
