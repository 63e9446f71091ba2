package session

import (
	"strings"
	"time"

	"terlab/domain/core"
	"terlab/internal/errors"
)

// MaxNameLength bounds session names
const MaxNameLength = 255

// Session groups the posts of one analysis scope. At most one session is active.
type Session struct {
	ID          core.SessionID `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description" db:"description"`
	IsActive    bool           `json:"is_active" db:"is_active"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.ValidationError("session name is required")
	}
	if len(name) > MaxNameLength {
		return "", errors.ValidationError("session name is too long")
	}
	return name, nil
}

// New creates an inactive session with a fresh identifier
func New(name, description string) (*Session, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Session{
		ID:          core.NewSessionID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Rename changes the session name under the same rules as New
func (s *Session) Rename(name string) error {
	name, err := validName(name)
	if err != nil {
		return err
	}
	s.Name = name
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Describe replaces the description
func (s *Session) Describe(description string) {
	s.Description = strings.TrimSpace(description)
	s.UpdatedAt = time.Now().UTC()
}
