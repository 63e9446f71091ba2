package migration

import (
	"context"
	"log"

	"terlab/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order. Every statement is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createSessionsTable(ctx, db); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to create analysis_sessions table")
	}

	if err := r.createPostsTable(ctx, db); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to create posts table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createSessionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, createSessionsSQL)
	return err
}

func (r *MigrationRunner) createPostsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, createPostsSQL)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	for _, idxSQL := range indexStatements {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Log but don't fail on index creation errors
			log.Printf("[Migration] ⚠️ failed to create index: %v", err)
		}
	}
	return nil
}

const createSessionsSQL = `
	CREATE TABLE IF NOT EXISTS analysis_sessions (
		id UUID PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)
`

const createPostsSQL = `
	CREATE TABLE IF NOT EXISTS posts (
		id UUID PRIMARY KEY,
		session_id UUID NOT NULL REFERENCES analysis_sessions(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		posted_at TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',

		likes BIGINT NOT NULL DEFAULT 0,
		bookmarks BIGINT NOT NULL DEFAULT 0,
		replies BIGINT NOT NULL DEFAULT 0,
		retweets BIGINT NOT NULL DEFAULT 0,
		quotes BIGINT NOT NULL DEFAULT 0,
		views BIGINT NOT NULL DEFAULT 0,

		likes_manual BIGINT,
		bookmarks_manual BIGINT,
		replies_manual BIGINT,
		retweets_manual BIGINT,
		quotes_manual BIGINT,
		views_manual BIGINT,

		weighted_engagement BIGINT NOT NULL DEFAULT 0,
		rate_sqrt DOUBLE PRECISION NOT NULL DEFAULT 0,
		rate_linear DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_interactions BIGINT NOT NULL DEFAULT 0,
		level_code VARCHAR(20) NOT NULL DEFAULT 'low',
		level_label TEXT NOT NULL DEFAULT '',
		curated_rate DOUBLE PRECISION CHECK (curated_rate IS NULL OR curated_rate >= 0),

		trigger_fear SMALLINT NOT NULL DEFAULT 0 CHECK (trigger_fear BETWEEN 0 AND 5),
		trigger_anger SMALLINT NOT NULL DEFAULT 0 CHECK (trigger_anger BETWEEN 0 AND 5),
		trigger_outrage SMALLINT NOT NULL DEFAULT 0 CHECK (trigger_outrage BETWEEN 0 AND 5),
		trigger_disgust SMALLINT NOT NULL DEFAULT 0 CHECK (trigger_disgust BETWEEN 0 AND 5),
		trigger_identity SMALLINT NOT NULL DEFAULT 0 CHECK (trigger_identity BETWEEN 0 AND 5),
		trigger_hope SMALLINT NOT NULL DEFAULT 0 CHECK (trigger_hope BETWEEN 0 AND 5),

		frame_victim_perpetrator SMALLINT NOT NULL DEFAULT 0 CHECK (frame_victim_perpetrator IN (0, 1)),
		frame_threat SMALLINT NOT NULL DEFAULT 0 CHECK (frame_threat IN (0, 1)),
		frame_conspiracy SMALLINT NOT NULL DEFAULT 0 CHECK (frame_conspiracy IN (0, 1)),
		frame_moral SMALLINT NOT NULL DEFAULT 0 CHECK (frame_moral IN (0, 1)),
		frame_historical SMALLINT NOT NULL DEFAULT 0 CHECK (frame_historical IN (0, 1)),

		is_reviewed BOOLEAN NOT NULL DEFAULT false,
		is_archived BOOLEAN NOT NULL DEFAULT false,
		is_excluded BOOLEAN NOT NULL DEFAULT false,

		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)
`

var indexStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_posts_session_id ON posts(session_id)",
	"CREATE INDEX IF NOT EXISTS idx_posts_session_eligible ON posts(session_id, is_reviewed, is_archived, is_excluded)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_active ON analysis_sessions(is_active) WHERE is_active",
	"CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON analysis_sessions(created_at DESC)",
}
