package senses

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PearsonSense measures linear association between two paired samples
type PearsonSense struct{}

// NewPearsonSense creates a new Pearson correlation sense
func NewPearsonSense() *PearsonSense {
	return &PearsonSense{}
}

// Name returns the sense name
func (s *PearsonSense) Name() string {
	return "pearson"
}

// Description returns a human-readable description
func (s *PearsonSense) Description() string {
	return "Detects linear relationships with a Student t significance test"
}

// Analyze computes Pearson's r between x and y and its two-sided p-value on
// n-2 degrees of freedom. The second return is false when the inputs are
// mismatched, shorter than three samples, or x is constant; correlation is
// undefined there and callers omit the variable.
func (s *PearsonSense) Analyze(x, y []float64) (TestResult, bool) {
	n := len(x)
	if n != len(y) || n < 3 || !varies(x) {
		return TestResult{}, false
	}

	r := stat.Correlation(x, y, nil)
	df := float64(n - 2)

	result := TestResult{
		SenseName:        s.Name(),
		Statistic:        r,
		DegreesOfFreedom: df,
		PValue:           math.NaN(),
		SampleSize:       n,
	}
	if math.IsNaN(r) {
		// constant y
		return result, true
	}

	r = math.Max(-1, math.Min(1, r))
	result.Statistic = r

	denom := 1 - r*r
	if denom <= 0 {
		result.PValue = 0
		return result, true
	}
	t := r * math.Sqrt(df/denom)
	result.PValue = twoSidedT(t, df)
	return result, true
}

func varies(data []float64) bool {
	for _, v := range data {
		if v != data[0] {
			return true
		}
	}
	return false
}
