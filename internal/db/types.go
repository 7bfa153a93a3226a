package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// User represents a user account row.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ShareLink is the public read-only access grant on a resume.
type ShareLink struct {
	ID        string     `json:"id"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Valid reports whether the link currently grants access.
func (l *ShareLink) Valid(now time.Time) bool {
	if l == nil || !l.Active {
		return false
	}
	if l.ExpiresAt != nil && now.After(*l.ExpiresAt) {
		return false
	}
	return true
}

// Resume represents a resume document row. Document is stored as a single
// JSONB column and replaced wholesale on write (last write wins).
type Resume struct {
	ID         uuid.UUID      `json:"id"`
	UserID     uuid.UUID      `json:"user_id"`
	Title      string         `json:"title"`
	TemplateID string         `json:"template"`
	Document   types.Document `json:"document"`
	ShareLink  *ShareLink     `json:"share_link,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
