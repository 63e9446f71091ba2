package engagement

import (
	"terlab/adapters/stats/senses"
	"terlab/domain/stats"
)

// correlate computes Pearson r of every varying trigger and frame against the
// curated rate. Constant variables are left out of the map.
func correlate(s *sample) map[string]stats.Correlation {
	pearson := senses.NewPearsonSense()
	out := make(map[string]stats.Correlation)

	for _, v := range s.variables() {
		res, ok := pearson.Analyze(v.Values, s.rates)
		if !ok {
			continue
		}
		out[v.Key] = correlationFrom(res)
	}
	return out
}

func correlationFrom(res senses.TestResult) stats.Correlation {
	return stats.Correlation{
		Correlation: stats.Number(res.Statistic),
		PValue:      stats.Number(res.PValue),
		Significant: res.Significant(),
		SampleSize:  res.SampleSize,
	}
}

func twoSampleFrom(res senses.TestResult) stats.TwoSampleTest {
	return stats.TwoSampleTest{
		TStatistic:       stats.Number(res.Statistic),
		DegreesOfFreedom: stats.Number(res.DegreesOfFreedom),
		PValue:           stats.Number(res.PValue),
		Significant:      res.Significant(),
	}
}
