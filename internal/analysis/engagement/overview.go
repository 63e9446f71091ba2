package engagement

import (
	"math"
	"sort"
	"strconv"

	"terlab/domain/post"
	"terlab/domain/stats"
	"terlab/internal/analysis/brief"
)

// dashboardScope drops archived and excluded posts
func dashboardScope(posts []post.Post) []post.Post {
	out := make([]post.Post, 0, len(posts))
	for _, p := range posts {
		if !p.Archived && !p.Excluded {
			out = append(out, p)
		}
	}
	return out
}

// Overview describes the reviewed posts of one scope: automatic and curated
// rates, effective raw counters and the best posts by curated rate. Archived
// and excluded posts are only counted.
func Overview(posts []post.Post) stats.Overview {
	active := dashboardScope(posts)
	ov := stats.Overview{TotalPosts: len(active), TopPosts: []stats.TopPost{}}
	for _, p := range posts {
		if p.Archived {
			ov.ArchivedPosts++
		} else if p.Excluded {
			ov.ExcludedPosts++
		}
	}

	reviewed := make([]post.Post, 0, len(active))
	for _, p := range active {
		if p.Reviewed {
			reviewed = append(reviewed, p)
		}
	}
	ov.ReviewedPosts = len(reviewed)
	ov.UnreviewedPosts = len(active) - len(reviewed)
	if len(reviewed) == 0 {
		ov.Error = stats.ErrNoReviewedPosts
		return ov
	}

	var autoRates, curated []float64
	counters := make(map[string][]float64)
	for _, p := range reviewed {
		if p.Metric.RateSqrt > 0 {
			autoRates = append(autoRates, p.Metric.RateSqrt)
		}
		if p.CuratedRate != nil && *p.CuratedRate >= 0 {
			curated = append(curated, *p.CuratedRate)
		}
		c := p.EffectiveCounts()
		for name, v := range map[string]int64{
			"views": c.Views, "likes": c.Likes, "retweets": c.Retweets,
			"replies": c.Replies, "bookmarks": c.Bookmarks, "quotes": c.Quotes,
		} {
			counters[name] = append(counters[name], float64(v))
		}
	}

	ov.RateSqrt = counterSummary(autoRates)
	ov.CuratedRate = counterSummary(curated)
	ov.Views = counterSummary(counters["views"])
	ov.Likes = counterSummary(counters["likes"])
	ov.Retweets = counterSummary(counters["retweets"])
	ov.Replies = counterSummary(counters["replies"])
	ov.Bookmarks = counterSummary(counters["bookmarks"])
	ov.Quotes = counterSummary(counters["quotes"])
	ov.TopPosts = topPosts(reviewed)
	return ov
}

func counterSummary(data []float64) *stats.CounterSummary {
	d, ok := brief.Describe(data)
	if !ok {
		return nil
	}
	round := func(v float64) stats.Number {
		return stats.Number(brief.Round(v, SummaryDecimals))
	}
	return &stats.CounterSummary{
		Count:  d.N,
		Mean:   round(d.Mean),
		Median: round(d.Median),
		StdDev: round(d.StdDev),
		Min:    round(d.Min),
		Max:    round(d.Max),
		Sum:    round(d.Sum),
	}
}

// topPosts ranks posts with a curated rate, highest first; input order breaks ties
func topPosts(posts []post.Post) []stats.TopPost {
	ranked := make([]post.Post, 0, len(posts))
	for _, p := range posts {
		if p.CuratedRate != nil {
			ranked = append(ranked, p)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return *ranked[a].CuratedRate > *ranked[b].CuratedRate
	})
	if len(ranked) > TopPostsLimit {
		ranked = ranked[:TopPostsLimit]
	}

	out := make([]stats.TopPost, len(ranked))
	for i, p := range ranked {
		out[i] = stats.TopPost{
			ID:          p.ID.String(),
			URL:         p.URL,
			Author:      p.Author,
			CuratedRate: stats.Number(*p.CuratedRate),
			RateSqrt:    stats.Number(p.Metric.RateSqrt),
			LevelCode:   string(p.Metric.LevelCode),
		}
	}
	return out
}

// RateDistribution bins the automatic rate (rate_sqrt) of every non-archived,
// non-excluded post
func RateDistribution(posts []post.Post) stats.Distribution {
	bins := make([]stats.HistogramBin, len(RateBinEdges))
	for i, lo := range RateBinEdges {
		hi := math.Inf(1)
		if i+1 < len(RateBinEdges) {
			hi = RateBinEdges[i+1]
		}
		bins[i] = stats.HistogramBin{
			Label: binLabel(lo, hi),
			Min:   stats.Number(lo),
			Max:   stats.Number(hi),
		}
	}

	active := dashboardScope(posts)
	for _, p := range active {
		if i := binIndex(p.Metric.RateSqrt); i >= 0 {
			bins[i].Count++
		}
	}
	return stats.Distribution{Total: len(active), Bins: bins}
}

// binIndex returns the bin holding rate, -1 below the first edge
func binIndex(rate float64) int {
	if math.IsNaN(rate) {
		return -1
	}
	return sort.Search(len(RateBinEdges), func(i int) bool { return RateBinEdges[i] > rate }) - 1
}

func binLabel(lo, hi float64) string {
	f := func(v float64) string {
		if math.IsInf(v, 1) {
			return "inf"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return f(lo) + "-" + f(hi)
}
