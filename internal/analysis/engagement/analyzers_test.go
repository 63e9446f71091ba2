package engagement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terlab/domain/post"
	"terlab/domain/stats"
	"terlab/internal/testkit"
)

func ratePtr(v float64) *float64 { return &v }

func TestFilter_EligibilityRules(t *testing.T) {
	base := testkit.EligiblePost(1, nil)

	zero := base
	zero.CuratedRate = ratePtr(0)
	missing := base
	missing.CuratedRate = nil
	negative := base
	negative.CuratedRate = ratePtr(-0.5)
	nan := base
	nan.CuratedRate = ratePtr(math.NaN())
	unreviewed := base
	unreviewed.Reviewed = false
	archived := base
	archived.Archived = true
	excluded := base
	excluded.Excluded = true

	eligible, diag := Filter([]post.Post{base, zero, missing, negative, nan, unreviewed, archived, excluded})

	require.Len(t, eligible, 2)
	assert.Equal(t, 1.0, eligible[0].Rate())
	assert.Equal(t, 0.0, eligible[1].Rate(), "zero is a valid rate")
	assert.Equal(t, stats.Diagnostics{Total: 8, Reviewed: 7, Archived: 1, Excluded: 1, Eligible: 2}, diag)
}

func TestCompareFrames(t *testing.T) {
	posts := []post.Post{
		testkit.EligiblePost(9, nil, post.Threat, post.Moral),
		testkit.EligiblePost(8, nil, post.Threat),
		testkit.EligiblePost(2, nil),
		testkit.EligiblePost(0, nil),
		testkit.EligiblePost(1, nil),
	}

	got := compareFrames(newSample(posts))

	require.Len(t, got, 1, "moral has a single member and the rest never occur")
	c := got[0]
	assert.Equal(t, "threat", c.Frame)
	assert.Equal(t, 2, c.Present.Count)
	assert.InDelta(t, 8.5, c.Present.Mean.Float(), 1e-12)
	assert.InDelta(t, 0.5, c.Present.StdDev.Float(), 1e-12)
	assert.Equal(t, 3, c.Absent.Count)
	assert.InDelta(t, 1.0, c.Absent.Mean.Float(), 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), c.Absent.StdDev.Float(), 1e-12)
	assert.InDelta(t, 7.5, c.EffectSize.Float(), 1e-12)
	assert.InDelta(t, 7.5/math.Sqrt(0.5/2+1.0/3), c.TStatistic.Float(), 1e-9)
	assert.True(t, c.Significant)
}

// regressionPosts returns 24 posts with a full-rank design whose rates follow
// rate = 1 + 2*fear + 0.5*hope + 3*threat exactly
func regressionPosts(dropFrame bool) []post.Post {
	posts := make([]post.Post, 0, 24)
	for i := 0; i < 24; i++ {
		triggers := make([]int, post.NumTriggers)
		for j := range triggers {
			triggers[j] = (i*(j+2) + j*j + i/(j+1)) % 6
		}
		var frames []post.Frame
		for j := 0; j < post.NumFrames; j++ {
			if (i*(j+3)+j+i/(j+2))%(j+2) == 0 && !(dropFrame && post.Frame(j) == post.Historical) {
				frames = append(frames, post.Frame(j))
			}
		}

		p := testkit.EligiblePost(0, triggers, frames...)
		rate := 1 + 2*float64(p.Trigger(post.Fear)) + 0.5*float64(p.Trigger(post.Hope)) + 3*p.FrameValue(post.Threat)
		p.CuratedRate = &rate
		posts = append(posts, p)
	}
	return posts
}

func TestRegress_RecoversPlantedCoefficients(t *testing.T) {
	res, err := regress(newSample(regressionPosts(false)))
	require.NoError(t, err)

	assert.Equal(t, 24, res.Observations)
	assert.InDelta(t, 1.0, res.Intercept.Float(), 1e-8)
	assert.InDelta(t, 1.0, res.RSquared.Float(), 1e-10)
	require.Len(t, res.Coefficients, post.NumTriggers+post.NumFrames)

	assert.Equal(t, "threat", res.Coefficients[0].Predictor)
	assert.Equal(t, kindFrame, res.Coefficients[0].Kind)
	assert.InDelta(t, 3.0, res.Coefficients[0].Coefficient.Float(), 1e-8)
	assert.Equal(t, "fear", res.Coefficients[1].Predictor)
	assert.InDelta(t, 2.0, res.Coefficients[1].Coefficient.Float(), 1e-8)
	assert.Equal(t, "hope", res.Coefficients[2].Predictor)
	assert.InDelta(t, 0.5, res.Coefficients[2].Coefficient.Float(), 1e-8)

	for i := 1; i < len(res.Coefficients); i++ {
		assert.GreaterOrEqual(t, res.Coefficients[i-1].AbsCoefficient.Float(), res.Coefficients[i].AbsCoefficient.Float())
	}
	for _, c := range res.Coefficients[3:] {
		assert.InDelta(t, 0.0, c.Coefficient.Float(), 1e-8)
	}
}

func TestRegress_RankDeficientDesignFails(t *testing.T) {
	_, err := regress(newSample(regressionPosts(true)))
	assert.ErrorIs(t, err, ErrFitFailed)

	_, err = regress(newSample(regressionPosts(false)[:11]))
	assert.ErrorIs(t, err, ErrFitFailed, "fewer observations than parameters")
}

func chartPosts() []post.Post {
	return []post.Post{
		testkit.EligiblePost(8, []int{4, 2}, post.Threat),
		testkit.EligiblePost(6, []int{3, 0}, post.Threat),
		testkit.EligiblePost(2, []int{0, 1}),
		testkit.EligiblePost(0, []int{1, 0}),
	}
}

func TestCharts_VariableComparisons(t *testing.T) {
	got := variableComparisons(newSample(chartPosts()))

	require.Len(t, got, 2)
	assert.Equal(t, "threat", got[0].Variable)
	assert.Equal(t, kindFrame, got[0].Kind)
	assert.InDelta(t, 7.0, got[0].MeanWith.Float(), 1e-12)
	assert.InDelta(t, 1.0, got[0].MeanWithout.Float(), 1e-12)
	assert.InDelta(t, 6.0, got[0].Difference.Float(), 1e-12)
	assert.Equal(t, 2, got[0].CountWith)
	assert.Equal(t, 2, got[0].CountWithout)

	assert.Equal(t, "anger", got[1].Variable)
	assert.InDelta(t, 2.0, got[1].Difference.Float(), 1e-12)
}

func TestCharts_CoOccurrences(t *testing.T) {
	got := coOccurrences(newSample(chartPosts()))

	require.Len(t, got, 1)
	assert.Equal(t, "fear", got[0].Trigger)
	assert.Equal(t, "threat", got[0].Frame)
	assert.Equal(t, "Fear/Threat + Threat", got[0].Label)
	assert.InDelta(t, 7.0, got[0].MeanRate.Float(), 1e-12)
	assert.Equal(t, 2, got[0].Count)
}

func TestCharts_CoOccurrencesKeepTopTen(t *testing.T) {
	var posts []post.Post
	for i := 0; i < 4; i++ {
		posts = append(posts, testkit.EligiblePost(float64(i), []int{5, 5, 5, 5, 5, 5}, post.Frames()...))
	}

	got := coOccurrences(newSample(posts))
	assert.Len(t, got, TopCoOccurrences)
}

func TestCharts_IntensityFrameUsage(t *testing.T) {
	got := intensityFrameUsage(newSample(chartPosts()))

	require.Len(t, got, 7)
	assert.Equal(t, "fear", got[0].Trigger)
	assert.Equal(t, LevelHigh, got[0].Level)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 100.0, got[0].FramePresence["threat"].Float(), 1e-12)
	assert.InDelta(t, 0.0, got[0].FramePresence["moral"].Float(), 1e-12)

	assert.Equal(t, "fear", got[1].Trigger)
	assert.Equal(t, LevelLow, got[1].Level)
	assert.InDelta(t, 1.0, got[1].MeanRate.Float(), 1e-12)

	assert.Equal(t, "anger", got[2].Trigger)
	assert.Equal(t, LevelLow, got[2].Level)
	assert.Equal(t, 3, got[2].Count)
	assert.InDelta(t, 100.0/3, got[2].FramePresence["threat"].Float(), 1e-9)
}

func TestCharts_Hexagon(t *testing.T) {
	s := newSample(chartPosts())
	got := hexagon(s, s.variables()[:post.NumTriggers])

	require.Len(t, got, post.NumTriggers)
	fear := got[post.Fear]
	assert.Equal(t, 3, fear.Count)
	assert.InDelta(t, 75.0, fear.Frequency.Float(), 1e-12)
	assert.InDelta(t, 14.0/3, fear.MeanRate.Float(), 1e-12)
	assert.InDelta(t, 56.0/3, fear.Effectiveness.Float(), 1e-12)
	assert.Equal(t, EffectivenessScale, fear.ScaleFactor)

	outrage := got[post.Outrage]
	assert.Equal(t, 0, outrage.Count)
	assert.Equal(t, 0.0, outrage.Frequency.Float())
	assert.False(t, outrage.MeanRate.Valid(), "no posts means no rate")
	assert.False(t, outrage.Effectiveness.Valid())
}

func TestCharts_HexagonEffectivenessCapped(t *testing.T) {
	posts := []post.Post{
		testkit.EligiblePost(40, []int{3}),
		testkit.EligiblePost(40, []int{3}),
		testkit.EligiblePost(0, nil),
	}
	s := newSample(posts)

	got := hexagon(s, s.variables()[:post.NumTriggers])
	assert.Equal(t, EffectivenessCap, got[post.Fear].Effectiveness.Float())
	assert.InDelta(t, 40.0, got[post.Fear].MeanRate.Float(), 1e-12)
}

func TestCharts_TriggerFrequency(t *testing.T) {
	got := triggerFrequency(newSample(chartPosts()))

	require.Len(t, got, post.NumTriggers)
	assert.Equal(t, "fear", got[0].Trigger)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, 4, got[0].Total)
	assert.InDelta(t, 75.0, got[0].Percentage.Float(), 1e-12)
	assert.Equal(t, "anger", got[1].Trigger)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, "outrage", got[2].Trigger, "ties keep trigger order")
	assert.Equal(t, 0, got[2].Count)
}

func TestKMeans_Deterministic(t *testing.T) {
	posts := testkit.NewPostGenerator(testkit.DefaultPostConfig()).Generate("s")
	eligible, _ := Filter(posts)
	s := newSample(eligible)

	first, err := clusterProfiles(s)
	require.NoError(t, err)
	second, err := clusterProfiles(s)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	total := 0
	for i, p := range first.Profiles {
		total += p.Size
		if i > 0 {
			assert.GreaterOrEqual(t, first.Profiles[i-1].MeanRate.Float(), p.MeanRate.Float())
		}
	}
	assert.Equal(t, len(eligible), total)
}

func TestKMeans_TooFewDistinctPoints(t *testing.T) {
	points := [][]float64{{0, 0}, {0, 0}, {1, 1}, {1, 1}}

	_, err := kmeans(points, kmeansConfig{K: 3, Seed: 1, Restarts: 2, MaxIterations: 10})
	assert.ErrorIs(t, err, ErrClusteringFailed)
}

func TestStandardizedTriggers(t *testing.T) {
	s := newSample([]post.Post{
		testkit.EligiblePost(1, []int{1, 2}),
		testkit.EligiblePost(1, []int{3, 2}),
	})

	points, err := standardizedTriggers(s)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, points[0][post.Fear], 1e-12)
	assert.InDelta(t, 1.0, points[1][post.Fear], 1e-12)
	assert.Equal(t, 0.0, points[0][post.Anger], "constant column is only centered")
}
