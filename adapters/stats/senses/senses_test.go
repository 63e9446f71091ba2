package senses

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPearsonSense_KnownValues(t *testing.T) {
	sense := NewPearsonSense()

	res, ok := sense.Analyze([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 5, 4, 5})
	require.True(t, ok)

	assert.Equal(t, "pearson", res.SenseName)
	assert.InDelta(t, 0.7745966692, res.Statistic, 1e-9)
	assert.InDelta(t, 0.1240270627, res.PValue, 1e-6)
	assert.Equal(t, 3.0, res.DegreesOfFreedom)
	assert.Equal(t, 5, res.SampleSize)
	assert.False(t, res.Significant())
}

func TestPearsonSense_PerfectCorrelation(t *testing.T) {
	sense := NewPearsonSense()

	res, ok := sense.Analyze([]float64{1, 2, 3, 4}, []float64{-2, -4, -6, -8})
	require.True(t, ok)

	assert.InDelta(t, -1.0, res.Statistic, 1e-12)
	assert.Equal(t, 0.0, res.PValue)
	assert.True(t, res.Significant())
}

func TestPearsonSense_UndefinedInputs(t *testing.T) {
	sense := NewPearsonSense()

	_, ok := sense.Analyze([]float64{3, 3, 3, 3}, []float64{1, 2, 3, 4})
	assert.False(t, ok, "constant x has no correlation")

	_, ok = sense.Analyze([]float64{1, 2}, []float64{1, 2})
	assert.False(t, ok, "two samples leave no degrees of freedom")

	_, ok = sense.Analyze([]float64{1, 2, 3}, []float64{1, 2})
	assert.False(t, ok, "length mismatch")
}

func TestPearsonSense_ConstantOutcome(t *testing.T) {
	res, ok := NewPearsonSense().Analyze([]float64{1, 2, 3}, []float64{7, 7, 7})
	require.True(t, ok)

	assert.True(t, math.IsNaN(res.Statistic))
	assert.True(t, math.IsNaN(res.PValue))
	assert.False(t, res.Significant())
}

func TestWelchTTestSense_KnownValues(t *testing.T) {
	sense := NewWelchTTestSense()

	res := sense.Compare([]float64{1, 2, 3, 4, 5}, []float64{3, 5, 7, 9, 11, 13})

	assert.Equal(t, "welch_ttest", res.SenseName)
	assert.InDelta(t, -2.9704426289, res.Statistic, 1e-9)
	assert.InDelta(t, 6.9722557298, res.DegreesOfFreedom, 1e-9)
	assert.InDelta(t, 0.0208907229, res.PValue, 1e-6)
	assert.Equal(t, 11, res.SampleSize)
	assert.True(t, res.Significant())
}

func TestWelchTTestSense_Symmetric(t *testing.T) {
	sense := NewWelchTTestSense()
	a := []float64{4.1, 5.2, 6.3, 2.2}
	b := []float64{1.5, 0.5, 2.5, 3.0, 1.1}

	ab := sense.Compare(a, b)
	ba := sense.Compare(b, a)

	assert.InDelta(t, ab.Statistic, -ba.Statistic, 1e-12)
	assert.InDelta(t, ab.PValue, ba.PValue, 1e-12)
	assert.InDelta(t, ab.DegreesOfFreedom, ba.DegreesOfFreedom, 1e-12)
}

func TestWelchTTestSense_TooFewMembers(t *testing.T) {
	res := NewWelchTTestSense().Compare([]float64{1}, []float64{1, 2, 3})

	assert.True(t, math.IsNaN(res.Statistic))
	assert.True(t, math.IsNaN(res.PValue))
	assert.False(t, res.Significant())
}

func TestWelchTTestSense_ZeroVariance(t *testing.T) {
	sense := NewWelchTTestSense()

	same := sense.Compare([]float64{2, 2}, []float64{2, 2, 2})
	assert.True(t, math.IsNaN(same.Statistic))
	assert.True(t, math.IsNaN(same.PValue))

	apart := sense.Compare([]float64{5, 5}, []float64{2, 2})
	assert.True(t, math.IsInf(apart.Statistic, 1))
	assert.True(t, math.IsNaN(apart.PValue))
	assert.False(t, apart.Significant())
}
