package brief

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_PopulationStdDev(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 2.0, s.StdDev, 1e-12)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.N)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.StdDev))
	assert.True(t, math.IsNaN(s.Min))
	assert.True(t, math.IsNaN(s.Max))
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	data := []float64{9, 0, 3, 3, 6, 9, 0, 6, 12, 3, 9, 6}

	// sorted: 0 0 3 3 3 6 6 6 9 9 9 12, positions 2.75 and 8.25
	assert.InDelta(t, 3.0, Percentile(data, 25), 1e-12)
	assert.InDelta(t, 9.0, Percentile(data, 75), 1e-12)

	assert.InDelta(t, 2.5, Percentile([]float64{1, 2, 3, 4}, 50), 1e-12)
	assert.InDelta(t, 1.75, Percentile([]float64{1, 2, 3, 4}, 25), 1e-12)
	assert.Equal(t, 1.0, Percentile([]float64{4, 1, 3}, 0))
	assert.Equal(t, 4.0, Percentile([]float64{4, 1, 3}, 100))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 25))
	assert.True(t, math.IsNaN(Percentile(nil, 25)))
}

func TestPercentile_DoesNotReorderInput(t *testing.T) {
	data := []float64{3, 1, 2}
	Percentile(data, 50)
	assert.Equal(t, []float64{3, 1, 2}, data)
}

func TestArgMax_FirstIndexWinsTies(t *testing.T) {
	assert.Equal(t, 1, ArgMax([]float64{1, 3, 3, 2}))
	assert.Equal(t, 0, ArgMax([]float64{0, 0, 0}))
	assert.Equal(t, 2, ArgMax([]float64{math.NaN(), -1, 4}))
	assert.Equal(t, -1, ArgMax(nil))
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 25.0, Percentage(1, 4), 1e-12)
	assert.True(t, math.IsNaN(Percentage(0, 0)))
}

func TestDescribe_SampleStdDev(t *testing.T) {
	d, ok := Describe([]float64{1, 2, 3, 4, 10})

	assert.True(t, ok)
	assert.Equal(t, 5, d.N)
	assert.InDelta(t, 4.0, d.Mean, 1e-12)
	assert.Equal(t, 3.0, d.Median)
	assert.InDelta(t, math.Sqrt(12.5), d.StdDev, 1e-12)
	assert.Equal(t, 1.0, d.Min)
	assert.Equal(t, 10.0, d.Max)
	assert.Equal(t, 20.0, d.Sum)
}

func TestDescribe_SingleAndEmpty(t *testing.T) {
	d, ok := Describe([]float64{7})
	assert.True(t, ok)
	assert.Equal(t, 0.0, d.StdDev)
	assert.Equal(t, 7.0, d.Median)

	_, ok = Describe(nil)
	assert.False(t, ok)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2.35, Round(2.349, 2))
	assert.Equal(t, 3.0, Round(2.999, 2))
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
}
