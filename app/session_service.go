package app

import (
	"context"
	"io"
	"log"
	"time"

	"terlab/domain/core"
	"terlab/domain/session"
	"terlab/internal/errors"
	"terlab/ports"
)

// SessionService manages analysis sessions and their post imports
type SessionService struct {
	sessions ports.SessionRepository
	posts    ports.PostRepository
	reader   ports.PostReader
}

// NewSessionService creates a session service
func NewSessionService(sessions ports.SessionRepository, posts ports.PostRepository, reader ports.PostReader) *SessionService {
	return &SessionService{
		sessions: sessions,
		posts:    posts,
		reader:   reader,
	}
}

// Create validates and stores a new session
func (s *SessionService) Create(ctx context.Context, name, description string) (*session.Session, error) {
	sess, err := session.New(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	log.Printf("[SessionService] Created session %s (%s)", sess.Name, sess.ID)
	return sess, nil
}

// List returns all sessions
func (s *SessionService) List(ctx context.Context) ([]*session.Session, error) {
	return s.sessions.List(ctx)
}

// Get returns one session
func (s *SessionService) Get(ctx context.Context, id core.SessionID) (*session.Session, error) {
	return s.sessions.Get(ctx, id)
}

// SessionUpdate edits a session's name or description. Nil fields are left unchanged.
type SessionUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Update renames or redescribes a session
func (s *SessionService) Update(ctx context.Context, id core.SessionID, upd SessionUpdate) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		if err := sess.Rename(*upd.Name); err != nil {
			return nil, err
		}
	}
	if upd.Description != nil {
		sess.Describe(*upd.Description)
	}
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Delete removes a session and all of its posts
func (s *SessionService) Delete(ctx context.Context, id core.SessionID) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[SessionService] Deleted session %s", id)
	return nil
}

// Activate makes id the only active session
func (s *SessionService) Activate(ctx context.Context, id core.SessionID) (*session.Session, error) {
	if err := s.sessions.Activate(ctx, id); err != nil {
		return nil, err
	}
	return s.sessions.Get(ctx, id)
}

// Active returns the active session
func (s *SessionService) Active(ctx context.Context) (*session.Session, error) {
	return s.sessions.GetActive(ctx)
}

// Import replaces the session's posts with the contents of an uploaded file
func (s *SessionService) Import(ctx context.Context, id core.SessionID, src io.Reader, filename string) (*ports.ImportResult, error) {
	if _, err := s.sessions.Get(ctx, id); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.reader.Read(src, filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", filename)
	}

	if err := s.posts.ReplaceSessionPosts(ctx, id, result.Posts); err != nil {
		return nil, err
	}

	log.Printf("[Importer] Imported %d posts into session %s (%d rows, %d skipped) in %v",
		len(result.Posts), id, result.Rows, result.Skipped, time.Since(start))
	return result, nil
}

// Seed imports a file into the named session, creating and activating it when
// no session of that name exists
func (s *SessionService) Seed(ctx context.Context, name string, src io.Reader, filename string) (*session.Session, *ports.ImportResult, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	var target *session.Session
	for _, sess := range sessions {
		if sess.Name == name {
			target = sess
			break
		}
	}
	if target == nil {
		if target, err = s.Create(ctx, name, "Seeded from "+filename); err != nil {
			return nil, nil, err
		}
	}

	result, err := s.Import(ctx, target.ID, src, filename)
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.sessions.GetActive(ctx); errors.GetCode(err) == errors.CodeNotFound {
		if err := s.sessions.Activate(ctx, target.ID); err != nil {
			return nil, nil, err
		}
		target.IsActive = true
	}

	return target, result, nil
}
