package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"terlab/domain/core"
	"terlab/domain/session"
	"terlab/internal/errors"
	"terlab/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// SessionRepositoryImpl implements SessionRepository for PostgreSQL
type SessionRepositoryImpl struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db *sqlx.DB) ports.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

const sessionColumns = `id, name, description, is_active, created_at, updated_at`

// Create inserts a new session
func (r *SessionRepositoryImpl) Create(ctx context.Context, s *session.Session) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO analysis_sessions (`+sessionColumns+`)
		VALUES (:id, :name, :description, :is_active, :created_at, :updated_at)
	`, s)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("session name already exists: " + s.Name)
		}
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to create session")
	}
	return nil
}

// Get retrieves a session by ID
func (r *SessionRepositoryImpl) Get(ctx context.Context, id core.SessionID) (*session.Session, error) {
	var s session.Session
	err := r.db.GetContext(ctx, &s, `
		SELECT `+sessionColumns+`
		FROM analysis_sessions
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, notFoundOr(err, "session", "failed to get session")
	}
	return &s, nil
}

// List returns all sessions, newest first
func (r *SessionRepositoryImpl) List(ctx context.Context) ([]*session.Session, error) {
	sessions := []*session.Session{}
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT `+sessionColumns+`
		FROM analysis_sessions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to list sessions")
	}
	return sessions, nil
}

// Activate deactivates every session and then activates id inside one transaction
func (r *SessionRepositoryImpl) Activate(ctx context.Context, id core.SessionID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to begin transaction")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		UPDATE analysis_sessions SET is_active = false, updated_at = $1 WHERE is_active
	`, now); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to deactivate sessions")
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE analysis_sessions SET is_active = true, updated_at = $2 WHERE id = $1
	`, id, now)
	if err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to activate session")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("session")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to commit activation")
	}
	return nil
}

// GetActive returns the active session
func (r *SessionRepositoryImpl) GetActive(ctx context.Context) (*session.Session, error) {
	var s session.Session
	err := r.db.GetContext(ctx, &s, `
		SELECT `+sessionColumns+`
		FROM analysis_sessions
		WHERE is_active
		LIMIT 1
	`)
	if err != nil {
		return nil, notFoundOr(err, "active session", "failed to get active session")
	}
	return &s, nil
}

// Update stores the session's name and description
func (r *SessionRepositoryImpl) Update(ctx context.Context, s *session.Session) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE analysis_sessions
		SET name = :name, description = :description, updated_at = :updated_at
		WHERE id = :id
	`, s)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("session name already exists: " + s.Name)
		}
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to update session")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("session")
	}
	return nil
}

// Delete removes the session; its posts go with it through ON DELETE CASCADE
func (r *SessionRepositoryImpl) Delete(ctx context.Context, id core.SessionID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analysis_sessions WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to delete session")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("session")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// notFoundOr maps sql.ErrNoRows to NOT_FOUND and anything else to DATABASE_ERROR
func notFoundOr(err error, resource, message string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFound(resource)
	}
	return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), message)
}
