package engagement

import (
	"terlab/domain/post"
	"terlab/domain/stats"
)

// Filter selects the posts usable for statistical analysis, preserving input
// order, and counts every status for diagnostics. The input is not modified.
func Filter(posts []post.Post) ([]post.Post, stats.Diagnostics) {
	diag := stats.Diagnostics{Total: len(posts)}
	eligible := make([]post.Post, 0, len(posts))

	for _, p := range posts {
		if p.Reviewed {
			diag.Reviewed++
		}
		if p.Archived {
			diag.Archived++
		}
		if p.Excluded {
			diag.Excluded++
		}
		if p.Eligible() {
			eligible = append(eligible, p)
		}
	}

	diag.Eligible = len(eligible)
	return eligible, diag
}
