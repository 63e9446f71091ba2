// Package engagement computes the engagement analytics report for one scope of
// annotated posts: eligibility, correlations, regression, frame group tests,
// intensity segmentation, profile clustering, narrative interpretation and
// chart tables.
package engagement

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"terlab/domain/post"
	"terlab/domain/stats"
)

// Analyze runs the full pipeline over the posts of one scope. It never fails:
// fewer than MinEligiblePosts eligible posts yield the insufficient-data
// report, and analyzer failures are scoped to their own result slot. The
// input slice is only read.
func Analyze(posts []post.Post) *stats.Report {
	eligible, diag := Filter(posts)
	report := &stats.Report{
		EligibleCount: len(eligible),
		Diagnostics:   diag,
	}
	if len(eligible) < MinEligiblePosts {
		report.Error = stats.ErrInsufficientData
		return report
	}

	s := newSample(eligible)
	slots := &slotErrors{}

	// Each analyzer writes a distinct field of report
	var g errgroup.Group
	g.Go(slots.guard("descriptive", func() { report.Descriptive = describe(s) }))
	g.Go(slots.guard("correlations", func() { report.Correlations = correlate(s) }))
	g.Go(slots.guard("regression", func() { report.Regression = runRegression(s) }))
	g.Go(slots.guard("group_comparisons", func() { report.GroupComparisons = compareFrames(s) }))
	g.Go(slots.guard("segmentation", func() { report.Segmentation = segment(s) }))
	g.Go(slots.guard("clusters", func() { report.Clusters = runClustering(s) }))
	_ = g.Wait()

	report.Interpretations = interpret(report)
	_ = slots.guard("charts", func() { report.Charts = aggregateCharts(s) })()

	report.AnalyzerErrors = slots.errs
	return report
}

// slotErrors collects analyzer panics by result slot. A slot that panicked
// keeps its zero value.
type slotErrors struct {
	mu   sync.Mutex
	errs map[string]string
}

func (e *slotErrors) guard(slot string, run func()) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				e.mu.Lock()
				defer e.mu.Unlock()
				if e.errs == nil {
					e.errs = make(map[string]string)
				}
				e.errs[slot] = fmt.Sprintf("analysis failed: %v", r)
			}
		}()
		run()
		return nil
	}
}

func runRegression(s *sample) (out stats.Outcome[stats.RegressionResult]) {
	defer func() {
		if recover() != nil {
			out = stats.Failed[stats.RegressionResult](ErrFitFailed.Error())
		}
	}()

	res, err := regress(s)
	if err != nil {
		return stats.Failed[stats.RegressionResult](ErrFitFailed.Error())
	}
	return stats.Ok(res)
}

func runClustering(s *sample) (out stats.Outcome[stats.ClusterResult]) {
	if s.size() < MinClusterPosts {
		return stats.Skipped[stats.ClusterResult]()
	}
	defer func() {
		if recover() != nil {
			out = stats.Failed[stats.ClusterResult](ErrClusteringFailed.Error())
		}
	}()

	res, err := clusterProfiles(s)
	if err != nil {
		return stats.Failed[stats.ClusterResult](ErrClusteringFailed.Error())
	}
	return stats.Ok(res)
}
