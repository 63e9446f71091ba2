package senses

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Alpha is the two-sided significance level shared by every sense
const Alpha = 0.05

// TestResult is the outcome of one two-sample or paired statistical test.
// Statistic holds r for correlation senses and t for mean-difference senses.
// Non-finite fields mark degenerate inputs and are left for the caller to
// sanitize.
type TestResult struct {
	SenseName        string
	Statistic        float64
	DegreesOfFreedom float64
	PValue           float64
	SampleSize       int
}

// Significant reports whether the p-value clears Alpha. NaN is never significant.
func (r TestResult) Significant() bool {
	return r.PValue < Alpha
}

// twoSidedT returns the two-sided tail probability of t under a Student t
// distribution with df degrees of freedom
func twoSidedT(t, df float64) float64 {
	if math.IsNaN(t) || math.IsNaN(df) || df <= 0 {
		return math.NaN()
	}
	if math.IsInf(t, 0) {
		return 0
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))
	return math.Min(p, 1)
}
