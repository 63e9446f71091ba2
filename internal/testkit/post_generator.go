package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"terlab/domain/core"
	"terlab/domain/metric"
	"terlab/domain/post"
)

// PostGeneratorConfig configures the synthetic post generator
type PostGeneratorConfig struct {
	PostCount     int       `json:"post_count"`
	ReviewedShare float64   `json:"reviewed_share"`
	ArchivedShare float64   `json:"archived_share"`
	ExcludedShare float64   `json:"excluded_share"`
	NoiseStdDev   float64   `json:"noise_std_dev"`
	StartDate     time.Time `json:"start_date"`
	Seed          int64     `json:"seed"`
}

// DefaultPostConfig returns sensible defaults for synthetic post generation
func DefaultPostConfig() PostGeneratorConfig {
	return PostGeneratorConfig{
		PostCount:     60,
		ReviewedShare: 0.9,
		ArchivedShare: 0.05,
		ExcludedShare: 0.05,
		NoiseStdDev:   1.5,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:          42,
	}
}

// Planted effects on the square-root engagement rate. Fear, outrage and the
// threat frame raise it; hope lowers it.
var (
	triggerEffects = [post.NumTriggers]float64{1.2, 0.3, 0.9, 0.1, 0.4, -0.6}
	frameEffects   = [post.NumFrames]float64{0.8, 1.5, 0.2, 0.5, -0.3}
	frameRates     = [post.NumFrames]float64{0.35, 0.4, 0.15, 0.3, 0.1}
)

const baseRate = 2.0

// PostGenerator generates annotated posts whose engagement carries planted
// trigger and frame effects
type PostGenerator struct {
	config PostGeneratorConfig
	rng    *rand.Rand
}

// NewPostGenerator creates a new post generator
func NewPostGenerator(config PostGeneratorConfig) *PostGenerator {
	return &PostGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces config.PostCount posts for session. Output is a pure
// function of the config.
func (g *PostGenerator) Generate(session core.SessionID) []post.Post {
	posts := make([]post.Post, 0, g.config.PostCount)
	for i := 0; i < g.config.PostCount; i++ {
		posts = append(posts, g.generatePost(session, i))
	}
	return posts
}

func (g *PostGenerator) generatePost(session core.SessionID, i int) post.Post {
	p := post.Post{
		ID:        g.postID(i),
		SessionID: session,
		URL:       fmt.Sprintf("https://x.com/account%02d/status/%d", i%17, 1700000000000000000+int64(i)),
		Author:    fmt.Sprintf("@account%02d", i%17),
		Content:   fmt.Sprintf("Synthetic post %d", i+1),
		PostedAt:  g.config.StartDate.Add(time.Duration(i) * 7 * time.Hour).Format(time.RFC3339),
	}

	target := baseRate
	for _, t := range post.Triggers() {
		p.SetTrigger(t, g.randomIntensity())
		target += triggerEffects[t] * float64(p.Trigger(t))
	}
	for _, f := range post.Frames() {
		p.Frames[f] = g.rng.Float64() < frameRates[f]
		target += frameEffects[f] * p.FrameValue(f)
	}
	target += g.rng.NormFloat64() * g.config.NoiseStdDev
	target = math.Max(target, 0.1)

	p.Counts = g.countsFor(target)
	p.RecomputeMetric()

	rate := math.Round(p.Metric.RateSqrt*100) / 100
	p.CuratedRate = &rate

	p.Reviewed = g.rng.Float64() < g.config.ReviewedShare
	p.Archived = g.rng.Float64() < g.config.ArchivedShare
	p.Excluded = g.rng.Float64() < g.config.ExcludedShare
	return p
}

// randomIntensity favors low scores: most posts carry few strong triggers
func (g *PostGenerator) randomIntensity() int {
	weights := []float64{0.35, 0.2, 0.15, 0.13, 0.1, 0.07}

	r := g.rng.Float64()
	cumulative := 0.0
	for level, weight := range weights {
		cumulative += weight
		if r <= cumulative {
			return level
		}
	}
	return post.MaxIntensity
}

// countsFor spreads a weighted engagement that yields roughly rate over the
// five interaction types
func (g *PostGenerator) countsFor(rate float64) metric.Counts {
	views := int64(1000 + g.rng.Intn(49000))
	weighted := int64(rate * math.Sqrt(float64(views)))

	quotes := weighted / 40
	retweets := weighted / 16
	replies := weighted / 20
	bookmarks := weighted / 12
	rest := weighted - quotes*metric.WeightQuote - retweets*metric.WeightRetweet -
		replies*metric.WeightReply - bookmarks*metric.WeightBookmark

	return metric.Counts{
		Likes:     max(rest, 0),
		Bookmarks: bookmarks,
		Replies:   replies,
		Retweets:  retweets,
		Quotes:    quotes,
		Views:     views,
	}
}

func (g *PostGenerator) postID(i int) core.PostID {
	name := fmt.Sprintf("terlab/synthetic/%d/%d", g.config.Seed, i)
	return core.PostID(uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String())
}

// EligiblePost builds a reviewed, active post with the given curated rate and
// annotations. Missing trigger or frame values default to zero.
func EligiblePost(rate float64, triggers []int, frames ...post.Frame) post.Post {
	p := post.Post{
		ID:          core.NewPostID(),
		Reviewed:    true,
		CuratedRate: &rate,
	}
	for i, v := range triggers {
		if i < post.NumTriggers {
			p.SetTrigger(post.Trigger(i), v)
		}
	}
	for _, f := range frames {
		p.Frames[f] = true
	}
	return p
}
