package ports

import (
	"context"

	"terlab/domain/core"
	"terlab/domain/post"
)

// PostRepository defines the interface for post storage
type PostRepository interface {
	// ReplaceSessionPosts atomically swaps a session's posts for the given set
	ReplaceSessionPosts(ctx context.Context, sessionID core.SessionID, posts []post.Post) error

	// ListBySession returns every post of a session in insertion order
	ListBySession(ctx context.Context, sessionID core.SessionID) ([]post.Post, error)

	// ListByArchived returns the session's archived or non-archived posts
	ListByArchived(ctx context.Context, sessionID core.SessionID, archived bool) ([]post.Post, error)

	// Get retrieves a single post
	Get(ctx context.Context, id core.PostID) (*post.Post, error)

	// Update persists labels, flags, overrides and the recomputed metric
	Update(ctx context.Context, p *post.Post) error

	// Delete removes a single post
	Delete(ctx context.Context, id core.PostID) error
}
