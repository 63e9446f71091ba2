package senses

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// WelchTTestSense detects significant differences between group means
type WelchTTestSense struct{}

// NewWelchTTestSense creates a new Welch's t-test sense
func NewWelchTTestSense() *WelchTTestSense {
	return &WelchTTestSense{}
}

// Name returns the sense name
func (s *WelchTTestSense) Name() string {
	return "welch_ttest"
}

// Description returns a human-readable description
func (s *WelchTTestSense) Description() string {
	return "Detects significant differences between group means with unequal variances"
}

// Compare runs Welch's unequal-variance t-test of mean(a) against mean(b).
// Both groups need at least two members; otherwise every numeric field is
// NaN. When both groups have zero variance the statistic is ±Inf (or NaN for
// equal means) and the p-value is NaN.
func (s *WelchTTestSense) Compare(a, b []float64) TestResult {
	result := TestResult{
		SenseName:        s.Name(),
		Statistic:        math.NaN(),
		DegreesOfFreedom: math.NaN(),
		PValue:           math.NaN(),
		SampleSize:       len(a) + len(b),
	}
	if len(a) < 2 || len(b) < 2 {
		return result
	}

	n1 := float64(len(a))
	n2 := float64(len(b))

	mean1, var1 := stat.MeanVariance(a, nil)
	mean2, var2 := stat.MeanVariance(b, nil)

	se1 := var1 / n1
	se2 := var2 / n2
	se := se1 + se2

	// Welch's t-statistic: t = (mean1 - mean2) / sqrt(var1/n1 + var2/n2)
	result.Statistic = (mean1 - mean2) / math.Sqrt(se)
	if se == 0 {
		return result
	}

	// Degrees of freedom using Welch-Satterthwaite equation
	result.DegreesOfFreedom = se * se / (se1*se1/(n1-1) + se2*se2/(n2-1))
	result.PValue = twoSidedT(result.Statistic, result.DegreesOfFreedom)
	return result
}
