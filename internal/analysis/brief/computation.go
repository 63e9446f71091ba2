package brief

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Summary holds the descriptive statistics reported for a group of rates.
// Fields are NaN when the group is empty; StdDev is the population deviation.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes the descriptive statistics of data
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, StdDev: nan, Min: nan, Max: nan}
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationPopulation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	return Summary{
		N:      len(data),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
	}
}

// Mean returns the arithmetic mean, NaN for empty input
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	mean, _ := stats.Mean(data)
	return mean
}

// Percentile returns the p-th percentile (0-100) by linear interpolation
// between closest ranks at position (n-1)*p/100. NaN for empty input.
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	pos := float64(len(sorted)-1) * p / 100
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo < 0 {
		lo = 0
	}
	if hi >= len(sorted) {
		hi = len(sorted) - 1
	}

	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// ArgMax returns the index of the largest value; the first index wins ties.
// Returns -1 for empty input.
func ArgMax(values []float64) int {
	best := -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if best == -1 || v > values[best] {
			best = i
		}
	}
	return best
}

// Percentage returns part/total*100, NaN when total is zero
func Percentage(part, total int) float64 {
	if total == 0 {
		return math.NaN()
	}
	return float64(part) / float64(total) * 100
}

// Description is the full summary of a raw counter. StdDev is the sample
// deviation and 0 for a single value.
type Description struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	Sum    float64
}

// Describe summarizes data; ok is false for empty input
func Describe(data []float64) (Description, bool) {
	if len(data) == 0 {
		return Description{}, false
	}

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	sum, _ := stats.Sum(data)

	var stdDev float64
	if len(data) > 1 {
		stdDev, _ = stats.StandardDeviationSample(data)
	}

	return Description{
		N:      len(data),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Sum:    sum,
	}, true
}

// Round rounds half away from zero to the given number of decimals
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, _ := stats.Round(v, places)
	return r
}
