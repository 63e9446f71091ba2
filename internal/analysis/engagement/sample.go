package engagement

import (
	"terlab/domain/post"
	"terlab/internal/analysis/brief"
)

const (
	kindTrigger = "trigger"
	kindFrame   = "frame"
)

// variable is one trigger or frame column of the eligible set
type variable struct {
	Key    string
	Label  string
	Kind   string
	Values []float64
}

// present reports whether the variable is active for observation i:
// any intensity for triggers, flag set for frames
func (v variable) present(i int) bool {
	if v.Kind == kindFrame {
		return v.Values[i] == 1
	}
	return v.Values[i] > 0
}

// sample is the column view of the eligible posts shared read-only by all
// analyzers of one run
type sample struct {
	rates     []float64
	triggers  [post.NumTriggers][]float64
	frames    [post.NumFrames][]float64
	composite []float64
}

func newSample(posts []post.Post) *sample {
	n := len(posts)
	s := &sample{
		rates:     make([]float64, n),
		composite: make([]float64, n),
	}
	for t := range s.triggers {
		s.triggers[t] = make([]float64, n)
	}
	for f := range s.frames {
		s.frames[f] = make([]float64, n)
	}

	for i, p := range posts {
		s.rates[i] = p.Rate()
		for _, t := range post.Triggers() {
			s.triggers[t][i] = float64(post.ClampIntensity(p.Trigger(t)))
		}
		for _, f := range post.Frames() {
			s.frames[f][i] = p.FrameValue(f)
		}
		s.composite[i] = float64(p.TriggerSum())
	}
	return s
}

func (s *sample) size() int { return len(s.rates) }

// variables lists the six triggers followed by the five frames
func (s *sample) variables() []variable {
	vars := make([]variable, 0, post.NumTriggers+post.NumFrames)
	for _, t := range post.Triggers() {
		vars = append(vars, variable{Key: t.Key(), Label: t.Label(), Kind: kindTrigger, Values: s.triggers[t]})
	}
	for _, f := range post.Frames() {
		vars = append(vars, variable{Key: f.Key(), Label: f.Label(), Kind: kindFrame, Values: s.frames[f]})
	}
	return vars
}

// ratesWhere collects the rates of observations matching keep
func (s *sample) ratesWhere(keep func(i int) bool) []float64 {
	var out []float64
	for i, r := range s.rates {
		if keep(i) {
			out = append(out, r)
		}
	}
	return out
}

// indices returns the observation indices matching keep
func (s *sample) indices(keep func(i int) bool) []int {
	var out []int
	for i := range s.rates {
		if keep(i) {
			out = append(out, i)
		}
	}
	return out
}

// subset profiles a group of observations
type subset struct {
	s   *sample
	idx []int
}

func (g subset) rates() []float64 {
	out := make([]float64, len(g.idx))
	for j, i := range g.idx {
		out[j] = g.s.rates[i]
	}
	return out
}

func (g subset) triggerMeans() [post.NumTriggers]float64 {
	var means [post.NumTriggers]float64
	for t := range means {
		means[t] = g.mean(g.s.triggers[t])
	}
	return means
}

// framePresence returns the share of members carrying each frame, in percent
func (g subset) framePresence() [post.NumFrames]float64 {
	var pct [post.NumFrames]float64
	for f := range pct {
		pct[f] = g.mean(g.s.frames[f]) * 100
	}
	return pct
}

func (g subset) mean(column []float64) float64 {
	vals := make([]float64, len(g.idx))
	for j, i := range g.idx {
		vals[j] = column[i]
	}
	return brief.Mean(vals)
}
