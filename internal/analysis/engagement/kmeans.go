package engagement

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// kmeansConfig pins every source of variation in a clustering run
type kmeansConfig struct {
	K             int
	Seed          int64
	Restarts      int
	MaxIterations int
}

type kmeansResult struct {
	Labels    []int
	Centroids [][]float64
	Inertia   float64
}

// kmeans partitions points into cfg.K clusters with Lloyd iterations from
// k-means++ seeds. Restarts share one seeded generator, so the result is a
// pure function of points and cfg. The restart with the lowest inertia wins;
// earlier restarts win ties. Restarts that empty a cluster are discarded.
func kmeans(points [][]float64, cfg kmeansConfig) (kmeansResult, error) {
	if distinctPoints(points, cfg.K) < cfg.K {
		return kmeansResult{}, fmt.Errorf("%w: fewer than %d distinct profiles", ErrClusteringFailed, cfg.K)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	var best *kmeansResult
	for r := 0; r < cfg.Restarts; r++ {
		res, ok := lloyd(points, seedCentroids(points, cfg.K, rng), cfg.MaxIterations)
		if !ok {
			continue
		}
		if best == nil || res.Inertia < best.Inertia {
			best = &res
		}
	}

	if best == nil {
		return kmeansResult{}, fmt.Errorf("%w: every restart produced an empty cluster", ErrClusteringFailed)
	}
	if math.IsNaN(best.Inertia) || math.IsInf(best.Inertia, 0) {
		return kmeansResult{}, fmt.Errorf("%w: non-finite inertia", ErrClusteringFailed)
	}
	return *best, nil
}

// seedCentroids applies k-means++: the first centroid is uniform, every next
// one is drawn with probability proportional to its squared distance from the
// nearest centroid chosen so far
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.Intn(len(points))]))

	weights := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			_, d := nearest(p, centroids)
			weights[i] = d
			total += d
		}

		target := rng.Float64() * total
		pick := len(points) - 1
		acc := 0.0
		for i, w := range weights {
			acc += w
			if w > 0 && acc >= target {
				pick = i
				break
			}
		}
		centroids = append(centroids, clone(points[pick]))
	}
	return centroids
}

func lloyd(points [][]float64, centroids [][]float64, maxIter int) (kmeansResult, bool) {
	k := len(centroids)
	dim := len(points[0])
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			c, _ := nearest(p, centroids)
			if c != labels[i] {
				labels[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		counts := make([]int, k)
		for i, p := range points {
			floats.Add(sums[labels[i]], p)
			counts[labels[i]]++
		}
		for c := range centroids {
			if counts[c] == 0 {
				return kmeansResult{}, false
			}
			floats.Scale(1/float64(counts[c]), sums[c])
			centroids[c] = sums[c]
		}
	}

	inertia := 0.0
	for i, p := range points {
		d := floats.Distance(p, centroids[labels[i]], 2)
		inertia += d * d
	}
	return kmeansResult{Labels: labels, Centroids: centroids, Inertia: inertia}, true
}

// nearest returns the index of the closest centroid (lowest index on ties)
// and the squared distance to it
func nearest(p []float64, centroids [][]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		d := floats.Distance(p, centroid, 2)
		if d*d < bestDist {
			best, bestDist = c, d*d
		}
	}
	return best, bestDist
}

func distinctPoints(points [][]float64, limit int) int {
	var seen [][]float64
	for _, p := range points {
		dup := false
		for _, q := range seen {
			if floats.Equal(p, q) {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, p)
			if len(seen) >= limit {
				break
			}
		}
	}
	return len(seen)
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}
