package engagement

import (
	"math"
	"sort"

	"terlab/domain/post"
	"terlab/domain/stats"
	"terlab/internal/analysis/brief"
)

// Intensity levels of the trigger-by-frame usage table
const (
	LevelHigh = "high"
	LevelLow  = "low"
)

func aggregateCharts(s *sample) stats.Charts {
	return stats.Charts{
		VariableComparisons: variableComparisons(s),
		CoOccurrences:       coOccurrences(s),
		IntensityFrameUsage: intensityFrameUsage(s),
		TriggerHexagon:      hexagon(s, s.variables()[:post.NumTriggers]),
		FrameHexagon:        hexagon(s, s.variables()[post.NumTriggers:]),
		TriggerFrequency:    triggerFrequency(s),
	}
}

// variableComparisons contrasts mean rates with and without each variable,
// largest positive difference first
func variableComparisons(s *sample) []stats.VariableComparison {
	out := []stats.VariableComparison{}
	for _, v := range s.variables() {
		with := s.ratesWhere(v.present)
		without := s.ratesWhere(func(i int) bool { return !v.present(i) })
		if len(with) < MinGroupSize || len(without) < MinGroupSize {
			continue
		}

		mw, mo := brief.Mean(with), brief.Mean(without)
		out = append(out, stats.VariableComparison{
			Variable:     v.Key,
			Label:        v.Label,
			Kind:         v.Kind,
			MeanWith:     stats.Number(mw),
			MeanWithout:  stats.Number(mo),
			Difference:   stats.Number(mw - mo),
			CountWith:    len(with),
			CountWithout: len(without),
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Difference > out[b].Difference
	})
	return out
}

// coOccurrences lists high-intensity trigger and frame pairings by mean rate
func coOccurrences(s *sample) []stats.CoOccurrence {
	out := []stats.CoOccurrence{}
	for _, t := range post.Triggers() {
		for _, f := range post.Frames() {
			tc, fc := s.triggers[t], s.frames[f]
			rates := s.ratesWhere(func(i int) bool {
				return tc[i] >= HighTriggerLevel && fc[i] == 1
			})
			if len(rates) < MinGroupSize {
				continue
			}
			out = append(out, stats.CoOccurrence{
				Trigger:  t.Key(),
				Frame:    f.Key(),
				Label:    t.Label() + " + " + f.Label(),
				MeanRate: stats.Number(brief.Mean(rates)),
				Count:    len(rates),
			})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].MeanRate > out[b].MeanRate
	})
	if len(out) > TopCoOccurrences {
		out = out[:TopCoOccurrences]
	}
	return out
}

// intensityFrameUsage shows which frames accompany each trigger at high and
// low intensity
func intensityFrameUsage(s *sample) []stats.IntensityFrameUsage {
	out := []stats.IntensityFrameUsage{}
	for _, t := range post.Triggers() {
		col := s.triggers[t]
		levels := []struct {
			name string
			keep func(i int) bool
		}{
			{LevelHigh, func(i int) bool { return col[i] >= HighTriggerLevel }},
			{LevelLow, func(i int) bool { return col[i] <= LowTriggerLevel }},
		}

		for _, lvl := range levels {
			g := subset{s: s, idx: s.indices(lvl.keep)}
			if len(g.idx) < MinGroupSize {
				continue
			}

			presence := g.framePresence()
			pct := make(map[string]stats.Number, post.NumFrames)
			for _, f := range post.Frames() {
				pct[f.Key()] = stats.Number(presence[f])
			}

			out = append(out, stats.IntensityFrameUsage{
				Trigger:       t.Key(),
				Level:         lvl.name,
				Count:         len(g.idx),
				MeanRate:      stats.Number(g.mean(s.rates)),
				FramePresence: pct,
			})
		}
	}
	return out
}

// hexagon pairs how often each variable occurs with how well it performs.
// Effectiveness is the mean rate when present, scaled by EffectivenessScale
// and capped at EffectivenessCap for display.
func hexagon(s *sample, vars []variable) []stats.HexagonPoint {
	n := s.size()
	out := make([]stats.HexagonPoint, 0, len(vars))
	for _, v := range vars {
		rates := s.ratesWhere(v.present)
		mean := brief.Mean(rates)

		out = append(out, stats.HexagonPoint{
			Variable:      v.Key,
			Label:         v.Label,
			Count:         len(rates),
			Frequency:     stats.Number(brief.Percentage(len(rates), n)),
			MeanRate:      stats.Number(mean),
			Effectiveness: stats.Number(math.Min(mean*EffectivenessScale, EffectivenessCap)),
			ScaleFactor:   EffectivenessScale,
		})
	}
	return out
}

// triggerFrequency counts posts carrying each trigger at any intensity,
// most frequent first
func triggerFrequency(s *sample) []stats.Frequency {
	n := s.size()
	out := make([]stats.Frequency, 0, post.NumTriggers)
	for _, t := range post.Triggers() {
		col := s.triggers[t]
		count := len(s.indices(func(i int) bool { return col[i] > 0 }))
		out = append(out, stats.Frequency{
			Trigger:    t.Key(),
			Label:      t.Label(),
			Count:      count,
			Total:      n,
			Percentage: stats.Number(brief.Percentage(count, n)),
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Count > out[b].Count
	})
	return out
}
