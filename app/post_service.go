package app

import (
	"context"
	"fmt"

	"terlab/domain/core"
	"terlab/domain/post"
	"terlab/internal/errors"
	"terlab/ports"
)

// PostUpdate is a partial edit of a post. Nil fields are left unchanged.
type PostUpdate struct {
	Triggers map[string]int  `json:"triggers,omitempty"`
	Frames   map[string]bool `json:"frames,omitempty"`

	// Manual maps a count name to its override; a null value clears the override
	Manual map[string]*int64 `json:"manual,omitempty"`

	CuratedRate      *float64 `json:"curated_rate,omitempty"`
	ClearCuratedRate bool     `json:"clear_curated_rate,omitempty"`

	Reviewed *bool   `json:"reviewed,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
	Excluded *bool   `json:"excluded,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// PostService applies analyst edits to posts
type PostService struct {
	posts ports.PostRepository
}

// NewPostService creates a post service
func NewPostService(posts ports.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// ListBySession returns a session's non-archived posts
func (s *PostService) ListBySession(ctx context.Context, id core.SessionID) ([]post.Post, error) {
	return s.posts.ListByArchived(ctx, id, false)
}

// ListArchived returns a session's archived posts
func (s *PostService) ListArchived(ctx context.Context, id core.SessionID) ([]post.Post, error) {
	return s.posts.ListByArchived(ctx, id, true)
}

// Get returns one post
func (s *PostService) Get(ctx context.Context, id core.PostID) (*post.Post, error) {
	return s.posts.Get(ctx, id)
}

// Update validates and applies an edit, recomputing the metric from effective counts
func (s *PostService) Update(ctx context.Context, id core.PostID, upd PostUpdate) (*post.Post, error) {
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := upd.apply(p); err != nil {
		return nil, err
	}
	p.RecomputeMetric()

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a post permanently
func (s *PostService) Delete(ctx context.Context, id core.PostID) error {
	return s.posts.Delete(ctx, id)
}

var (
	triggerByKey = func() map[string]post.Trigger {
		m := make(map[string]post.Trigger, post.NumTriggers)
		for _, t := range post.Triggers() {
			m[t.Key()] = t
		}
		return m
	}()
	frameByKey = func() map[string]post.Frame {
		m := make(map[string]post.Frame, post.NumFrames)
		for _, f := range post.Frames() {
			m[f.Key()] = f
		}
		return m
	}()
)

func manualField(m *post.ManualCounts, name string) (**int64, bool) {
	switch name {
	case "likes":
		return &m.Likes, true
	case "bookmarks":
		return &m.Bookmarks, true
	case "replies":
		return &m.Replies, true
	case "retweets":
		return &m.Retweets, true
	case "quotes":
		return &m.Quotes, true
	case "views":
		return &m.Views, true
	}
	return nil, false
}

// apply validates every field before mutating p
func (u PostUpdate) apply(p *post.Post) error {
	for key, v := range u.Triggers {
		if _, ok := triggerByKey[key]; !ok {
			return errors.ValidationError(fmt.Sprintf("unknown trigger %q", key))
		}
		if v < 0 || v > post.MaxIntensity {
			return errors.ValidationError(fmt.Sprintf("trigger %s must be between 0 and %d", key, post.MaxIntensity))
		}
	}
	for key := range u.Frames {
		if _, ok := frameByKey[key]; !ok {
			return errors.ValidationError(fmt.Sprintf("unknown frame %q", key))
		}
	}
	for name, v := range u.Manual {
		if _, ok := manualField(&p.Manual, name); !ok {
			return errors.ValidationError(fmt.Sprintf("unknown count %q", name))
		}
		if v != nil && *v < 0 {
			return errors.ValidationError(fmt.Sprintf("%s override must not be negative", name))
		}
	}
	if u.CuratedRate != nil && *u.CuratedRate < 0 {
		return errors.ValidationError("curated rate must not be negative")
	}

	for key, v := range u.Triggers {
		p.SetTrigger(triggerByKey[key], v)
	}
	for key, v := range u.Frames {
		p.Frames[frameByKey[key]] = v
	}
	for name, v := range u.Manual {
		field, _ := manualField(&p.Manual, name)
		if v == nil {
			*field = nil
			continue
		}
		override := *v
		*field = &override
	}

	switch {
	case u.ClearCuratedRate:
		p.CuratedRate = nil
	case u.CuratedRate != nil:
		rate := *u.CuratedRate
		p.CuratedRate = &rate
	}

	if u.Reviewed != nil {
		p.Reviewed = *u.Reviewed
	}
	if u.Archived != nil {
		p.Archived = *u.Archived
	}
	if u.Excluded != nil {
		p.Excluded = *u.Excluded
	}
	if u.Notes != nil {
		p.Notes = *u.Notes
	}
	return nil
}
