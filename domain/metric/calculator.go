package metric

import "math"

// Interaction weights: a like is the cheapest signal, a quote-post the most visible
const (
	WeightLike     = 1
	WeightBookmark = 2
	WeightReply    = 3
	WeightRetweet  = 4
	WeightQuote    = 5
)

// Level thresholds on the sqrt-normalized rate, lower bound inclusive
const (
	MediumThreshold   = 5.0
	HighThreshold     = 10.0
	VeryHighThreshold = 15.0
)

// LevelCode is the categorical engagement level
type LevelCode string

const (
	LevelLow      LevelCode = "low"
	LevelMedium   LevelCode = "medium"
	LevelHigh     LevelCode = "high"
	LevelVeryHigh LevelCode = "very_high"
)

// Level describes an engagement band
type Level struct {
	Code        LevelCode `json:"code"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
}

var levels = map[LevelCode]Level{
	LevelLow:      {LevelLow, "Low engagement (passive reception)", "Passive reception, little activation"},
	LevelMedium:   {LevelMedium, "Medium engagement (moderate activation)", "Moderate attention, normal activation"},
	LevelHigh:     {LevelHigh, "High engagement (strong emotional involvement)", "Strong emotional involvement"},
	LevelVeryHigh: {LevelVeryHigh, "Very high engagement (viral activation)", "Viral dynamics, maximum involvement"},
}

// Counts are the raw interaction counts of a post
type Counts struct {
	Likes     int64 `json:"likes" db:"likes"`
	Bookmarks int64 `json:"bookmarks" db:"bookmarks"`
	Replies   int64 `json:"replies" db:"replies"`
	Retweets  int64 `json:"retweets" db:"retweets"`
	Quotes    int64 `json:"quotes" db:"quotes"`
	Views     int64 `json:"views" db:"views"`
}

// Result is the engagement metric derived from Counts
type Result struct {
	WeightedEngagement int64     `json:"weighted_engagement" db:"weighted_engagement"`
	RateSqrt           float64   `json:"rate_sqrt" db:"rate_sqrt"`
	RateLinear         float64   `json:"rate_linear" db:"rate_linear"`
	TotalInteractions  int64     `json:"total_interactions" db:"total_interactions"`
	LevelCode          LevelCode `json:"level_code" db:"level_code"`
	LevelLabel         string    `json:"level_label" db:"level_label"`
}

// Compute turns raw counts into the weighted engagement score and rates.
// It is pure and total: views <= 0 yields zero rates.
func Compute(c Counts) Result {
	weighted := c.Likes*WeightLike +
		c.Bookmarks*WeightBookmark +
		c.Replies*WeightReply +
		c.Retweets*WeightRetweet +
		c.Quotes*WeightQuote

	var rateSqrt, rateLinear float64
	if c.Views > 0 {
		views := float64(c.Views)
		rateSqrt = float64(weighted) / math.Sqrt(views)
		rateLinear = float64(weighted) / views * 100
	}

	level := LevelFor(rateSqrt)

	return Result{
		WeightedEngagement: weighted,
		RateSqrt:           rateSqrt,
		RateLinear:         rateLinear,
		TotalInteractions:  c.Likes + c.Bookmarks + c.Replies + c.Retweets + c.Quotes,
		LevelCode:          level.Code,
		LevelLabel:         level.Label,
	}
}

// LevelFor maps a sqrt-normalized rate onto its engagement band
func LevelFor(rateSqrt float64) Level {
	switch {
	case rateSqrt < MediumThreshold:
		return levels[LevelLow]
	case rateSqrt < HighThreshold:
		return levels[LevelMedium]
	case rateSqrt < VeryHighThreshold:
		return levels[LevelHigh]
	default:
		return levels[LevelVeryHigh]
	}
}
