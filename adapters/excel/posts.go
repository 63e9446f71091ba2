package excel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"terlab/domain/metric"
	"terlab/domain/post"
	"terlab/internal/errors"
	"terlab/ports"
)

// Column names of the post import layout
const (
	ColumnURL         = "url"
	ColumnAuthor      = "author"
	ColumnContent     = "content"
	ColumnPostedAt    = "posted_at"
	ColumnNotes       = "notes"
	ColumnCuratedRate = "curated_rate"
	ColumnReviewed    = "reviewed"
	ColumnArchived    = "archived"
	ColumnExcluded    = "excluded"
)

// TriggerColumn returns the import column of a trigger, e.g. trigger_fear
func TriggerColumn(t post.Trigger) string { return "trigger_" + t.Key() }

// FrameColumn returns the import column of a frame, e.g. frame_threat
func FrameColumn(f post.Frame) string { return "frame_" + f.Key() }

// Columns lists the full import header in canonical order
func Columns() []string {
	cols := []string{
		ColumnURL, ColumnAuthor, ColumnContent, ColumnPostedAt,
		"likes", "bookmarks", "replies", "retweets", "quotes", "views",
		ColumnCuratedRate,
	}
	for _, t := range post.Triggers() {
		cols = append(cols, TriggerColumn(t))
	}
	for _, f := range post.Frames() {
		cols = append(cols, FrameColumn(f))
	}
	return append(cols, ColumnReviewed, ColumnArchived, ColumnExcluded, ColumnNotes)
}

// postsFromData maps rows onto posts. Rows without a URL are skipped.
func postsFromData(data *ExcelData) (*ports.ImportResult, error) {
	if !data.Has(ColumnURL) {
		return nil, errors.InvalidInput("missing required column: " + ColumnURL)
	}

	result := &ports.ImportResult{Posts: make([]post.Post, 0, len(data.Rows))}
	for _, row := range data.Rows {
		result.Rows++
		if row[ColumnURL] == "" {
			result.Skipped++
			continue
		}
		result.Posts = append(result.Posts, rowToPost(row))
	}

	return result, nil
}

func rowToPost(row RawRowData) post.Post {
	p := post.Post{
		URL:      row[ColumnURL],
		Author:   row[ColumnAuthor],
		Content:  row[ColumnContent],
		PostedAt: row[ColumnPostedAt],
		Notes:    row[ColumnNotes],
		Counts: metric.Counts{
			Likes:     parseCount(row["likes"]),
			Bookmarks: parseCount(row["bookmarks"]),
			Replies:   parseCount(row["replies"]),
			Retweets:  parseCount(row["retweets"]),
			Quotes:    parseCount(row["quotes"]),
			Views:     parseCount(row["views"]),
		},
		CuratedRate: parseRate(row[ColumnCuratedRate]),
		Reviewed:    parseFlag(row[ColumnReviewed]),
		Archived:    parseFlag(row[ColumnArchived]),
		Excluded:    parseFlag(row[ColumnExcluded]),
	}

	for _, t := range post.Triggers() {
		v, _ := parseNumber(row[TriggerColumn(t)])
		p.SetTrigger(t, int(math.Round(v)))
	}
	for _, f := range post.Frames() {
		v, _ := parseNumber(row[FrameColumn(f)])
		p.Frames[f] = v > 0
	}

	p.RecomputeMetric()
	return p
}

// parseNumber accepts plain, thousands-separated and decimal-comma numbers.
// Blank cells are zero.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	} else if strings.Count(s, ",") == 1 && len(s)-strings.Index(s, ",") != 4 {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// parseCount rounds to a non-negative integer; unparseable cells are zero
func parseCount(s string) int64 {
	v, err := parseNumber(s)
	if err != nil || v < 0 {
		return 0
	}
	return int64(math.Round(v))
}

// parseRate returns nil for blank, unparseable or negative rates
func parseRate(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := parseNumber(s)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "x", "ja", "wahr":
		return true
	}
	v, err := parseNumber(s)
	return err == nil && v > 0
}
