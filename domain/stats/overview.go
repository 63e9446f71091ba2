package stats

// ErrNoReviewedPosts marks an overview without any reviewed post
const ErrNoReviewedPosts = "no reviewed posts"

// CounterSummary describes one numeric post attribute, rounded to two decimals.
// StdDev is the sample deviation.
type CounterSummary struct {
	Count  int    `json:"count"`
	Mean   Number `json:"mean"`
	Median Number `json:"median"`
	StdDev Number `json:"stdev"`
	Min    Number `json:"min"`
	Max    Number `json:"max"`
	Sum    Number `json:"sum"`
}

// TopPost is a leaderboard entry ranked by curated rate
type TopPost struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Author      string `json:"author,omitempty"`
	CuratedRate Number `json:"curated_rate"`
	RateSqrt    Number `json:"rate_sqrt"`
	LevelCode   string `json:"level_code"`
}

// Overview is the descriptive dashboard block over reviewed posts. Raw
// counters use effective counts; summaries are nil when no value exists.
type Overview struct {
	Error string `json:"error,omitempty"`

	TotalPosts      int `json:"total_posts"`
	ReviewedPosts   int `json:"reviewed_posts"`
	UnreviewedPosts int `json:"unreviewed_posts"`
	ArchivedPosts   int `json:"archived_posts"`
	ExcludedPosts   int `json:"excluded_posts"`

	RateSqrt    *CounterSummary `json:"rate_sqrt"`
	CuratedRate *CounterSummary `json:"curated_rate"`
	Views       *CounterSummary `json:"views"`
	Likes       *CounterSummary `json:"likes"`
	Retweets    *CounterSummary `json:"retweets"`
	Replies     *CounterSummary `json:"replies"`
	Bookmarks   *CounterSummary `json:"bookmarks"`
	Quotes      *CounterSummary `json:"quotes"`

	TopPosts []TopPost `json:"top_posts"`
}

// HistogramBin counts values in [Min, Max). Max is null for the open last bin.
type HistogramBin struct {
	Label string `json:"label"`
	Min   Number `json:"min"`
	Max   Number `json:"max"`
	Count int    `json:"count"`
}

// Distribution is the histogram of automatic engagement rates
type Distribution struct {
	Total int            `json:"total"`
	Bins  []HistogramBin `json:"bins"`
}

// PeriodStats aggregates reviewed posts published in one month or year
type PeriodStats struct {
	Period        string `json:"period"`
	PostCount     int    `json:"post_count"`
	PostsWithRate int    `json:"posts_with_rate"`
	MeanRate      Number `json:"avg_rate"`
}

// Timeline buckets reviewed posts by publication date, oldest period first
type Timeline struct {
	Monthly []PeriodStats `json:"monthly"`
	Yearly  []PeriodStats `json:"yearly"`
	Undated int           `json:"undated"`
}
