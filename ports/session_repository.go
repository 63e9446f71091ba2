package ports

import (
	"context"

	"terlab/domain/core"
	"terlab/domain/session"
)

// SessionRepository defines the interface for analysis session storage
type SessionRepository interface {
	// Create stores a new session; names are unique
	Create(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id core.SessionID) (*session.Session, error)

	// List returns all sessions, newest first
	List(ctx context.Context) ([]*session.Session, error)

	// Activate marks one session active and deactivates all others
	Activate(ctx context.Context, id core.SessionID) error

	// GetActive returns the active session, NOT_FOUND when none is active
	GetActive(ctx context.Context) (*session.Session, error)

	// Update stores name and description; names stay unique
	Update(ctx context.Context, s *session.Session) error

	// Delete removes a session together with its posts
	Delete(ctx context.Context, id core.SessionID) error
}
