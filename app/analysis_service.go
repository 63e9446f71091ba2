package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"terlab/domain/core"
	"terlab/domain/post"
	"terlab/domain/stats"
	"terlab/internal/analysis/engagement"
	"terlab/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// AnalysisService runs the engagement engine over a session's posts
type AnalysisService struct {
	sessions ports.SessionRepository
	posts    ports.PostRepository
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(sessions ports.SessionRepository, posts ports.PostRepository) *AnalysisService {
	return &AnalysisService{
		sessions: sessions,
		posts:    posts,
	}
}

// Report analyses every post of the session
func (s *AnalysisService) Report(ctx context.Context, id core.SessionID) (*stats.Report, error) {
	posts, err := s.sessionPosts(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := engagement.Analyze(posts)
	log.Printf("[Analysis] Session %s: %d/%d eligible posts analysed in %v",
		id, report.EligibleCount, len(posts), time.Since(start))

	return report, nil
}

func (s *AnalysisService) sessionPosts(ctx context.Context, id core.SessionID) ([]post.Post, error) {
	if _, err := s.sessions.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.posts.ListBySession(ctx, id)
}

// Overview summarises the session's reviewed posts
func (s *AnalysisService) Overview(ctx context.Context, id core.SessionID) (*stats.Overview, error) {
	posts, err := s.sessionPosts(ctx, id)
	if err != nil {
		return nil, err
	}
	ov := engagement.Overview(posts)
	return &ov, nil
}

// Distribution returns the histogram of automatic rates
func (s *AnalysisService) Distribution(ctx context.Context, id core.SessionID) (*stats.Distribution, error) {
	posts, err := s.sessionPosts(ctx, id)
	if err != nil {
		return nil, err
	}
	d := engagement.RateDistribution(posts)
	return &d, nil
}

// Timeline buckets the session's reviewed posts by publication month and year
func (s *AnalysisService) Timeline(ctx context.Context, id core.SessionID) (*stats.Timeline, error) {
	posts, err := s.sessionPosts(ctx, id)
	if err != nil {
		return nil, err
	}
	tl := engagement.Timeline(posts)
	if tl.Undated > 0 {
		log.Printf("[Analysis] Session %s: %d posts without a readable date", id, tl.Undated)
	}
	return &tl, nil
}

// InterpretationMarkdown renders the narrative findings of a report as Markdown
func InterpretationMarkdown(r *stats.Report) string {
	var b strings.Builder
	b.WriteString("# Engagement interpretation\n\n")

	if r.Insufficient() {
		fmt.Fprintf(&b, "Not enough data: %d eligible posts (at least %d required).\n",
			r.EligibleCount, engagement.MinEligiblePosts)
		return b.String()
	}

	fmt.Fprintf(&b, "Based on **%d** eligible posts.\n\n", r.EligibleCount)
	for _, in := range r.Interpretations {
		fmt.Fprintf(&b, "## %s %s\n\n", in.Icon, in.Title)
		fmt.Fprintf(&b, "%s\n\n", in.Finding)
		if in.Meaning != "" {
			fmt.Fprintf(&b, "- **Meaning:** %s\n", in.Meaning)
		}
		if in.Recommendation != "" {
			fmt.Fprintf(&b, "- **Recommendation:** %s\n", in.Recommendation)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// InterpretationHTML renders the Markdown interpretation to HTML
func InterpretationHTML(r *stats.Report) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.ToHTML([]byte(InterpretationMarkdown(r)), p, renderer)
}
