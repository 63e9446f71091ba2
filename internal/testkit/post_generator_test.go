package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terlab/domain/core"
	"terlab/domain/metric"
	"terlab/domain/post"
)

func TestPostGenerator_Basic(t *testing.T) {
	config := DefaultPostConfig()
	config.PostCount = 25

	posts := NewPostGenerator(config).Generate(core.SessionID("s1"))
	require.Len(t, posts, 25)

	for i, p := range posts {
		assert.NotEmpty(t, p.ID.String(), "post %d has empty ID", i)
		assert.Equal(t, core.SessionID("s1"), p.SessionID)
		assert.NotEmpty(t, p.URL)
		for _, tr := range post.Triggers() {
			assert.GreaterOrEqual(t, p.Trigger(tr), 0)
			assert.LessOrEqual(t, p.Trigger(tr), post.MaxIntensity)
		}
		require.NotNil(t, p.CuratedRate)
		assert.GreaterOrEqual(t, *p.CuratedRate, 0.0)
		assert.Equal(t, metric.Compute(p.Counts), p.Metric)
	}
}

func TestPostGenerator_Deterministic(t *testing.T) {
	config := DefaultPostConfig()

	first := NewPostGenerator(config).Generate(core.SessionID("s"))
	second := NewPostGenerator(config).Generate(core.SessionID("s"))
	assert.Equal(t, first, second)

	config.Seed = 7
	other := NewPostGenerator(config).Generate(core.SessionID("s"))
	assert.NotEqual(t, first, other)
}

func TestPostGenerator_MostPostsEligible(t *testing.T) {
	posts := NewPostGenerator(DefaultPostConfig()).Generate(core.SessionID("s"))

	eligible := 0
	for _, p := range posts {
		if p.Eligible() {
			eligible++
		}
	}
	assert.Greater(t, eligible, len(posts)/2)
}

func TestEligiblePost(t *testing.T) {
	p := EligiblePost(4.5, []int{1, 9, 0, -2}, post.Threat)

	assert.True(t, p.Eligible())
	assert.Equal(t, 4.5, p.Rate())
	assert.Equal(t, 1, p.Trigger(post.Fear))
	assert.Equal(t, post.MaxIntensity, p.Trigger(post.Anger))
	assert.Equal(t, 0, p.Trigger(post.Disgust))
	assert.True(t, p.HasFrame(post.Threat))
	assert.False(t, p.HasFrame(post.Moral))
}
