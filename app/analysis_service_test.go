package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terlab/domain/post"
	"terlab/domain/session"
	"terlab/domain/stats"
	"terlab/internal/analysis/engagement"
	"terlab/internal/errors"
	"terlab/internal/testkit"
)

func TestAnalysisService_Report(t *testing.T) {
	ctx := context.Background()
	sessions := &testkit.MockSessionRepository{}
	posts := &testkit.MockPostRepository{}
	s, _ := session.New("Wave 1", "")

	cfg := testkit.DefaultPostConfig()
	cfg.PostCount = 40
	sessions.On("Get", ctx, s.ID).Return(s, nil)
	posts.On("ListBySession", ctx, s.ID).Return(testkit.NewPostGenerator(cfg).Generate(s.ID), nil)

	report, err := NewAnalysisService(sessions, posts).Report(ctx, s.ID)
	require.NoError(t, err)

	assert.False(t, report.Insufficient())
	assert.Equal(t, 40, report.Diagnostics.Total)
	assert.NotEmpty(t, report.Interpretations)
}

func TestAnalysisService_UnknownSession(t *testing.T) {
	ctx := context.Background()
	sessions := &testkit.MockSessionRepository{}
	s, _ := session.New("Ghost", "")
	sessions.On("Get", ctx, s.ID).Return(nil, errors.NotFound("session"))

	_, err := NewAnalysisService(sessions, &testkit.MockPostRepository{}).Report(ctx, s.ID)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestInterpretationMarkdown(t *testing.T) {
	report := &stats.Report{
		EligibleCount: 12,
		Interpretations: []stats.Interpretation{{
			Kind:           "composite_correlation",
			Icon:           "📈",
			Title:          "Composite intensity",
			Finding:        "Strong positive link",
			Meaning:        "More triggers, more engagement.",
			Recommendation: "Stack triggers.",
		}},
	}

	md := InterpretationMarkdown(report)
	assert.Contains(t, md, "## 📈 Composite intensity")
	assert.Contains(t, md, "- **Recommendation:** Stack triggers.")

	html := string(InterpretationHTML(report))
	assert.Contains(t, html, "<h2")
	assert.Contains(t, html, "<strong>Meaning:</strong>")
	assert.Contains(t, html, "<li>")
}

func TestInterpretationMarkdown_InsufficientData(t *testing.T) {
	p := testkit.EligiblePost(3, []int{1, 0, 0, 0, 0, 0}, post.Threat)
	report := engagement.Analyze([]post.Post{p})

	md := InterpretationMarkdown(report)
	assert.True(t, strings.Contains(md, "Not enough data: 1 eligible posts"))
}

func TestAnalysisService_Dashboard(t *testing.T) {
	ctx := context.Background()
	sessions := &testkit.MockSessionRepository{}
	posts := &testkit.MockPostRepository{}
	s, _ := session.New("Wave 1", "")

	dated := testkit.EligiblePost(3, nil)
	dated.PostedAt = "03.04.2024"
	undated := testkit.EligiblePost(5, nil)
	sessions.On("Get", ctx, s.ID).Return(s, nil)
	posts.On("ListBySession", ctx, s.ID).Return([]post.Post{dated, undated}, nil)

	svc := NewAnalysisService(sessions, posts)

	ov, err := svc.Overview(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, ov.ReviewedPosts)
	require.Len(t, ov.TopPosts, 2)
	assert.Equal(t, undated.ID.String(), ov.TopPosts[0].ID)

	d, err := svc.Distribution(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Total)

	tl, err := svc.Timeline(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, tl.Monthly, 1)
	assert.Equal(t, "2024-04", tl.Monthly[0].Period)
	assert.Equal(t, 1, tl.Undated)
}
