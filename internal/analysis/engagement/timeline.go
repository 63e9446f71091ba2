package engagement

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"terlab/domain/post"
	"terlab/domain/stats"
	"terlab/internal/analysis/brief"
)

// dayFirstLayouts are tried before generic parsing; analysts write dates day first
var dayFirstLayouts = []string{"2.1.2006", "2/1/2006"}

// ParsePostedAt reads the publication date of a post. Day-first dotted and
// slashed dates are accepted alongside ISO 8601 and other common formats.
func ParsePostedAt(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	// periods follow the wall clock written in the string
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type periodBucket struct {
	posts int
	rates []float64
}

// Timeline buckets reviewed, non-archived, non-excluded posts by month and
// year of publication. Posts whose date cannot be parsed are counted as undated.
func Timeline(posts []post.Post) stats.Timeline {
	monthly := make(map[string]*periodBucket)
	yearly := make(map[string]*periodBucket)
	var tl stats.Timeline

	add := func(m map[string]*periodBucket, key string, p post.Post) {
		b, ok := m[key]
		if !ok {
			b = &periodBucket{}
			m[key] = b
		}
		b.posts++
		if p.CuratedRate != nil && *p.CuratedRate >= 0 {
			b.rates = append(b.rates, *p.CuratedRate)
		}
	}

	for _, p := range dashboardScope(posts) {
		if !p.Reviewed {
			continue
		}
		at, ok := ParsePostedAt(p.PostedAt)
		if !ok {
			tl.Undated++
			continue
		}
		add(monthly, at.Format("2006-01"), p)
		add(yearly, at.Format("2006"), p)
	}

	tl.Monthly = periodStats(monthly)
	tl.Yearly = periodStats(yearly)
	return tl
}

func periodStats(buckets map[string]*periodBucket) []stats.PeriodStats {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]stats.PeriodStats, len(keys))
	for i, k := range keys {
		b := buckets[k]
		out[i] = stats.PeriodStats{
			Period:        k,
			PostCount:     b.posts,
			PostsWithRate: len(b.rates),
			MeanRate:      stats.Number(brief.Round(brief.Mean(b.rates), SummaryDecimals)),
		}
	}
	return out
}
