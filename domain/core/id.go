package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Falls back to v4 if v7 generation fails
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SessionID ID
	PostID    ID
)

func (id SessionID) String() string { return ID(id).String() }
func (id PostID) String() string    { return ID(id).String() }

// NewSessionID creates a time-ordered session identifier
func NewSessionID() SessionID { return SessionID(NewID()) }

// NewPostID creates a time-ordered post identifier
func NewPostID() PostID { return PostID(NewID()) }

// ParseSessionID parses a string into SessionID. Session IDs are UUIDs.
func ParseSessionID(s string) (SessionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid session ID %q: %w", s, err)
	}
	return SessionID(s), nil
}

// ParsePostID parses a string into PostID
func ParsePostID(s string) (PostID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("post ID cannot be empty")
	}
	return PostID(s), nil
}
