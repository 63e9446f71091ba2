package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"terlab/domain/core"
	"terlab/domain/metric"
	"terlab/domain/post"
	"terlab/internal/errors"
	"terlab/internal/testkit"
)

func storedPost() *post.Post {
	p := &post.Post{
		ID:     core.NewPostID(),
		URL:    "https://x.com/a/status/1",
		Counts: metric.Counts{Likes: 100, Bookmarks: 10, Replies: 5, Retweets: 20, Quotes: 2, Views: 10000},
	}
	p.RecomputeMetric()
	return p
}

func int64Ptr(v int64) *int64 { return &v }

func TestPostService_UpdateRecomputesMetricFromOverrides(t *testing.T) {
	ctx := context.Background()
	repo := &testkit.MockPostRepository{}
	p := storedPost()
	repo.On("Get", ctx, p.ID).Return(p, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*post.Post")).Return(nil)

	svc := NewPostService(repo)
	got, err := svc.Update(ctx, p.ID, PostUpdate{
		Manual: map[string]*int64{"views": int64Ptr(2500), "likes": int64Ptr(0)},
	})
	require.NoError(t, err)

	// 0 + 20 + 15 + 80 + 10 over sqrt(2500)
	assert.Equal(t, int64(125), got.Metric.WeightedEngagement)
	assert.InDelta(t, 2.5, got.Metric.RateSqrt, 1e-12)
	assert.Equal(t, int64(100), got.Counts.Likes, "raw counts stay untouched")
	repo.AssertExpectations(t)
}

func TestPostService_UpdateClearsOverride(t *testing.T) {
	ctx := context.Background()
	repo := &testkit.MockPostRepository{}
	p := storedPost()
	p.Manual.Views = int64Ptr(1)
	p.RecomputeMetric()
	repo.On("Get", ctx, p.ID).Return(p, nil)
	repo.On("Update", ctx, p).Return(nil)

	got, err := NewPostService(repo).Update(ctx, p.ID, PostUpdate{Manual: map[string]*int64{"views": nil}})
	require.NoError(t, err)

	assert.Nil(t, got.Manual.Views)
	assert.InDelta(t, 2.25, got.Metric.RateSqrt, 1e-12)
}

func TestPostService_UpdateLabelsAndFlags(t *testing.T) {
	ctx := context.Background()
	repo := &testkit.MockPostRepository{}
	p := storedPost()
	repo.On("Get", ctx, p.ID).Return(p, nil)
	repo.On("Update", ctx, p).Return(nil)

	rate := 6.5
	reviewed := true
	got, err := NewPostService(repo).Update(ctx, p.ID, PostUpdate{
		Triggers:    map[string]int{"fear": 5, "hope": 0},
		Frames:      map[string]bool{"moral": true},
		CuratedRate: &rate,
		Reviewed:    &reviewed,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, got.Trigger(post.Fear))
	assert.True(t, got.HasFrame(post.Moral))
	assert.True(t, got.Eligible())
	assert.Equal(t, 6.5, got.Rate())
}

func TestPostService_UpdateRejectsInvalidValues(t *testing.T) {
	bad := []PostUpdate{
		{Triggers: map[string]int{"fear": 6}},
		{Triggers: map[string]int{"anger": -1}},
		{Triggers: map[string]int{"sadness": 1}},
		{Frames: map[string]bool{"economic": true}},
		{Manual: map[string]*int64{"views": int64Ptr(-1)}},
		{Manual: map[string]*int64{"impressions": int64Ptr(1)}},
		{CuratedRate: func() *float64 { v := -0.1; return &v }()},
	}

	for _, upd := range bad {
		ctx := context.Background()
		repo := &testkit.MockPostRepository{}
		p := storedPost()
		before := *p
		repo.On("Get", ctx, p.ID).Return(p, nil)

		_, err := NewPostService(repo).Update(ctx, p.ID, upd)
		require.Error(t, err, "%+v", upd)
		assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
		assert.Equal(t, before, *p, "rejected edits leave the post unchanged")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	}
}

func TestPostService_UpdateMissingPost(t *testing.T) {
	ctx := context.Background()
	repo := &testkit.MockPostRepository{}
	id := core.NewPostID()
	repo.On("Get", ctx, id).Return(nil, errors.NotFound("post"))

	_, err := NewPostService(repo).Update(ctx, id, PostUpdate{})
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestPostService_ListingsSplitArchived(t *testing.T) {
	ctx := context.Background()
	repo := &testkit.MockPostRepository{}
	id := core.NewSessionID()
	live, archived := *storedPost(), *storedPost()
	archived.Archived = true
	repo.On("ListByArchived", ctx, id, false).Return([]post.Post{live}, nil)
	repo.On("ListByArchived", ctx, id, true).Return([]post.Post{archived}, nil)

	svc := NewPostService(repo)
	got, err := svc.ListBySession(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, live.ID, got[0].ID)

	got, err = svc.ListArchived(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Archived)
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &testkit.MockPostRepository{}
	p := storedPost()
	repo.On("Delete", ctx, p.ID).Return(nil)

	require.NoError(t, NewPostService(repo).Delete(ctx, p.ID))
	repo.AssertExpectations(t)
}
