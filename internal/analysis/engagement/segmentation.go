package engagement

import (
	"math"

	"terlab/adapters/stats/senses"
	"terlab/domain/post"
	"terlab/domain/stats"
	"terlab/internal/analysis/brief"
)

// bandOf places a composite score into its intensity band. Bounds are
// inclusive on both extremes; when Q25 equals Q75 a score on the boundary
// belongs to the low band.
func bandOf(composite, q25, q75 float64) stats.Band {
	switch {
	case composite <= q25:
		return stats.BandLow
	case composite >= q75:
		return stats.BandHigh
	default:
		return stats.BandMedium
	}
}

// segment splits the eligible set into quartile intensity bands over the
// composite trigger score and profiles each non-empty band
func segment(s *sample) stats.SegmentationResult {
	q25 := brief.Percentile(s.composite, LowerQuartile)
	q75 := brief.Percentile(s.composite, UpperQuartile)

	members := map[stats.Band][]int{}
	for i, c := range s.composite {
		b := bandOf(c, q25, q75)
		members[b] = append(members[b], i)
	}

	result := stats.SegmentationResult{
		Q25:   stats.Number(q25),
		Q75:   stats.Number(q75),
		Bands: make([]stats.BandProfile, 0, 3),
	}

	for _, b := range []stats.Band{stats.BandLow, stats.BandMedium, stats.BandHigh} {
		idx := members[b]
		if len(idx) == 0 {
			continue
		}
		result.Bands = append(result.Bands, profileBand(s, b, idx))
	}

	low := subset{s: s, idx: members[stats.BandLow]}.rates()
	high := subset{s: s, idx: members[stats.BandHigh]}.rates()
	if len(low) >= MinGroupSize && len(high) >= MinGroupSize {
		test := senses.NewWelchTTestSense().Compare(high, low)
		result.HighVsLow = &stats.BandComparison{
			TwoSampleTest:  twoSampleFrom(test),
			RateDifference: stats.Number(brief.Mean(high) - brief.Mean(low)),
		}
	}

	if res, ok := senses.NewPearsonSense().Analyze(s.composite, s.rates); ok {
		corr := correlationFrom(res)
		result.CompositeCorrelation = &corr
	}

	return result
}

func profileBand(s *sample, b stats.Band, idx []int) stats.BandProfile {
	g := subset{s: s, idx: idx}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, i := range idx {
		lo = math.Min(lo, s.composite[i])
		hi = math.Max(hi, s.composite[i])
	}

	means := g.triggerMeans()
	presence := g.framePresence()

	framePct := make(map[string]stats.Number, post.NumFrames)
	common := []string{}
	for _, f := range post.Frames() {
		framePct[f.Key()] = stats.Number(presence[f])
		if presence[f] >= CommonFramePercent {
			common = append(common, f.Key())
		}
	}

	return stats.BandProfile{
		Band:            b,
		Count:           len(idx),
		CompositeMin:    int(lo),
		CompositeMax:    int(hi),
		Rate:            rateSummary(g.rates()),
		TriggerMeans:    triggerMeanMap(means),
		DominantTrigger: dominantTrigger(means),
		FramePresence:   framePct,
		CommonFrames:    common,
	}
}
