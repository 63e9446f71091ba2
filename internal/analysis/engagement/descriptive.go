package engagement

import (
	"terlab/domain/post"
	"terlab/domain/stats"
	"terlab/internal/analysis/brief"
)

func describe(s *sample) stats.Descriptive {
	sum := brief.Summarize(s.rates)

	means := make(map[string]stats.Number, post.NumTriggers)
	for _, t := range post.Triggers() {
		means[t.Key()] = stats.Number(brief.Mean(s.triggers[t]))
	}

	return stats.Descriptive{
		PostCount:    s.size(),
		RateMean:     stats.Number(sum.Mean),
		RateStdDev:   stats.Number(sum.StdDev),
		RateMin:      stats.Number(sum.Min),
		RateMax:      stats.Number(sum.Max),
		TriggerMeans: means,
	}
}

func rateSummary(rates []float64) stats.RateSummary {
	sum := brief.Summarize(rates)
	return stats.RateSummary{
		Mean:   stats.Number(sum.Mean),
		StdDev: stats.Number(sum.StdDev),
		Min:    stats.Number(sum.Min),
		Max:    stats.Number(sum.Max),
	}
}

func groupStats(rates []float64) stats.GroupStats {
	sum := brief.Summarize(rates)
	return stats.GroupStats{
		Count:  sum.N,
		Mean:   stats.Number(sum.Mean),
		StdDev: stats.Number(sum.StdDev),
	}
}

// dominantTrigger is the key of the highest mean; the first trigger wins ties
func dominantTrigger(means [post.NumTriggers]float64) string {
	idx := brief.ArgMax(means[:])
	if idx < 0 {
		return ""
	}
	return post.Trigger(idx).Key()
}

func triggerMeanMap(means [post.NumTriggers]float64) map[string]stats.Number {
	out := make(map[string]stats.Number, len(means))
	for _, t := range post.Triggers() {
		out[t.Key()] = stats.Number(means[t])
	}
	return out
}
