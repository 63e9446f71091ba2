package engagement

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"terlab/domain/post"
	"terlab/domain/stats"
)

// clusterProfiles groups posts by the shape of their standardized trigger
// profile and describes each cluster on the raw scale, highest mean rate first
func clusterProfiles(s *sample) (stats.ClusterResult, error) {
	points, err := standardizedTriggers(s)
	if err != nil {
		return stats.ClusterResult{}, err
	}

	res, err := kmeans(points, kmeansConfig{
		K:             ClusterCount,
		Seed:          ClusterSeed,
		Restarts:      ClusterRestarts,
		MaxIterations: ClusterMaxIterations,
	})
	if err != nil {
		return stats.ClusterResult{}, err
	}

	profiles := make([]stats.ClusterProfile, 0, ClusterCount)
	for c := 0; c < ClusterCount; c++ {
		g := subset{s: s, idx: s.indices(func(i int) bool { return res.Labels[i] == c })}
		means := g.triggerMeans()
		profiles = append(profiles, stats.ClusterProfile{
			ClusterID:       c,
			Size:            len(g.idx),
			MeanRate:        stats.Number(g.mean(s.rates)),
			TriggerProfile:  triggerMeanMap(means),
			DominantTrigger: dominantTrigger(means),
		})
	}
	sort.SliceStable(profiles, func(a, b int) bool {
		return profiles[a].MeanRate > profiles[b].MeanRate
	})

	return stats.ClusterResult{
		K:        ClusterCount,
		Seed:     ClusterSeed,
		Restarts: ClusterRestarts,
		Inertia:  stats.Number(res.Inertia),
		Profiles: profiles,
	}, nil
}

// standardizedTriggers scales each trigger column to zero mean and unit
// population variance. Constant columns are only centered.
func standardizedTriggers(s *sample) ([][]float64, error) {
	n := s.size()
	points := make([][]float64, n)
	for i := range points {
		points[i] = make([]float64, post.NumTriggers)
	}

	for t, col := range s.triggers {
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		for i, v := range col {
			z := (v - mean) / std
			if math.IsNaN(z) || math.IsInf(z, 0) {
				return nil, fmt.Errorf("%w: non-finite standardized value", ErrClusteringFailed)
			}
			points[i][t] = z
		}
	}
	return points, nil
}
