package post

import (
	"time"

	"terlab/domain/core"
	"terlab/domain/metric"
)

// Trigger enumerates the six emotional-response categories scored 0-5
type Trigger int

const (
	Fear Trigger = iota
	Anger
	Outrage
	Disgust
	Identity
	Hope

	NumTriggers = 6
)

// MaxIntensity is the upper bound of a trigger score
const MaxIntensity = 5

var triggerKeys = [NumTriggers]string{"fear", "anger", "outrage", "disgust", "identity", "hope"}

var triggerLabels = [NumTriggers]string{"Fear/Threat", "Anger", "Outrage", "Disgust", "Identity", "Hope/Pride"}

// Key returns the stable machine name used in results and column headers
func (t Trigger) Key() string { return triggerKeys[t] }

// Label returns the human-readable name used in narrative text
func (t Trigger) Label() string { return triggerLabels[t] }

func (t Trigger) String() string { return t.Key() }

// Triggers lists every trigger in canonical order
func Triggers() []Trigger {
	return []Trigger{Fear, Anger, Outrage, Disgust, Identity, Hope}
}

// Frame enumerates the five binary narrative frames
type Frame int

const (
	VictimPerpetrator Frame = iota
	Threat
	Conspiracy
	Moral
	Historical

	NumFrames = 5
)

var frameKeys = [NumFrames]string{"victim_perpetrator", "threat", "conspiracy", "moral", "historical"}

var frameLabels = [NumFrames]string{"Victim-Perpetrator", "Threat", "Conspiracy", "Moral", "Historical"}

func (f Frame) Key() string { return frameKeys[f] }

func (f Frame) Label() string { return frameLabels[f] }

func (f Frame) String() string { return f.Key() }

// Frames lists every frame in canonical order
func Frames() []Frame {
	return []Frame{VictimPerpetrator, Threat, Conspiracy, Moral, Historical}
}

// ManualCounts holds analyst overrides; a nil field means "use the automatic value".
// Zero is a valid override.
type ManualCounts struct {
	Likes     *int64 `json:"likes,omitempty" db:"likes_manual"`
	Bookmarks *int64 `json:"bookmarks,omitempty" db:"bookmarks_manual"`
	Replies   *int64 `json:"replies,omitempty" db:"replies_manual"`
	Retweets  *int64 `json:"retweets,omitempty" db:"retweets_manual"`
	Quotes    *int64 `json:"quotes,omitempty" db:"quotes_manual"`
	Views     *int64 `json:"views,omitempty" db:"views_manual"`
}

// IsEmpty reports whether no override is set
func (m ManualCounts) IsEmpty() bool {
	return m.Likes == nil && m.Bookmarks == nil && m.Replies == nil &&
		m.Retweets == nil && m.Quotes == nil && m.Views == nil
}

// Post is a fully materialized, storage-agnostic post record
type Post struct {
	ID        core.PostID    `json:"id"`
	SessionID core.SessionID `json:"session_id"`

	URL      string `json:"url"`
	Author   string `json:"author,omitempty"`
	Content  string `json:"content,omitempty"`
	PostedAt string `json:"posted_at,omitempty"`
	Notes    string `json:"notes,omitempty"`

	Triggers [NumTriggers]int `json:"triggers"`
	Frames   [NumFrames]bool  `json:"frames"`
	Counts   metric.Counts    `json:"counts"`
	Manual   ManualCounts     `json:"manual"`
	Metric   metric.Result    `json:"metric"`

	// CuratedRate is the analyst-approved engagement rate used as ground truth
	CuratedRate *float64 `json:"curated_rate"`

	Reviewed bool `json:"reviewed"`
	Archived bool `json:"archived"`
	Excluded bool `json:"excluded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClampIntensity bounds a raw trigger score to [0, MaxIntensity]
func ClampIntensity(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxIntensity {
		return MaxIntensity
	}
	return v
}

// SetTrigger stores a clamped trigger score
func (p *Post) SetTrigger(t Trigger, v int) {
	p.Triggers[t] = ClampIntensity(v)
}

// Trigger returns the intensity for t
func (p Post) Trigger(t Trigger) int { return p.Triggers[t] }

// HasFrame reports whether frame f is present
func (p Post) HasFrame(f Frame) bool { return p.Frames[f] }

// FrameValue returns the frame flag as 0 or 1
func (p Post) FrameValue(f Frame) float64 {
	if p.Frames[f] {
		return 1
	}
	return 0
}

// TriggerSum is the composite trigger intensity (0-30) over clamped scores
func (p Post) TriggerSum() int {
	sum := 0
	for _, v := range p.Triggers {
		sum += ClampIntensity(v)
	}
	return sum
}

// EffectiveCounts applies manual overrides field by field
func (p Post) EffectiveCounts() metric.Counts {
	c := p.Counts
	pick := func(dst *int64, override *int64) {
		if override != nil {
			*dst = *override
		}
	}
	pick(&c.Likes, p.Manual.Likes)
	pick(&c.Bookmarks, p.Manual.Bookmarks)
	pick(&c.Replies, p.Manual.Replies)
	pick(&c.Retweets, p.Manual.Retweets)
	pick(&c.Quotes, p.Manual.Quotes)
	pick(&c.Views, p.Manual.Views)
	return c
}

// RecomputeMetric refreshes the attached metric from the effective counts
func (p *Post) RecomputeMetric() {
	p.Metric = metric.Compute(p.EffectiveCounts())
}

// Eligible reports whether the post may enter statistical analysis
func (p Post) Eligible() bool {
	return p.Reviewed && !p.Archived && !p.Excluded && p.CuratedRate != nil && *p.CuratedRate >= 0
}

// Rate returns the curated rate; callers must check Eligible first
func (p Post) Rate() float64 {
	if p.CuratedRate == nil {
		return 0
	}
	return *p.CuratedRate
}
