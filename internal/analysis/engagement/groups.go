package engagement

import (
	"terlab/adapters/stats/senses"
	"terlab/domain/post"
	"terlab/domain/stats"
	"terlab/internal/analysis/brief"
)

// compareFrames runs a Welch test of rates with against without each frame.
// Frames whose groups are not both at least MinGroupSize are omitted.
func compareFrames(s *sample) []stats.GroupComparison {
	welch := senses.NewWelchTTestSense()
	out := make([]stats.GroupComparison, 0, post.NumFrames)

	for _, f := range post.Frames() {
		col := s.frames[f]
		present := s.ratesWhere(func(i int) bool { return col[i] == 1 })
		absent := s.ratesWhere(func(i int) bool { return col[i] == 0 })
		if len(present) < MinGroupSize || len(absent) < MinGroupSize {
			continue
		}

		out = append(out, stats.GroupComparison{
			Frame:         f.Key(),
			Label:         f.Label(),
			Present:       groupStats(present),
			Absent:        groupStats(absent),
			TwoSampleTest: twoSampleFrom(welch.Compare(present, absent)),
			EffectSize:    stats.Number(brief.Mean(present) - brief.Mean(absent)),
		})
	}
	return out
}
