package engagement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terlab/domain/stats"
)

func sigCorrelation(r float64) *stats.Correlation {
	return &stats.Correlation{Correlation: stats.Number(r), PValue: 0.001, Significant: true, SampleSize: 30}
}

func TestCompositeFinding_Branches(t *testing.T) {
	cases := []struct {
		name  string
		corr  *stats.Correlation
		title string
	}{
		{"strong", sigCorrelation(0.62), "Strong positive"},
		{"moderate", sigCorrelation(0.5), "Moderate positive"},
		{"moderate lower bound excluded", sigCorrelation(0.3), "Weak"},
		{"negative", sigCorrelation(-0.45), "Too many triggers"},
		{"weak negative", sigCorrelation(-0.3), "Weak"},
		{"not significant", &stats.Correlation{Correlation: 0.8, PValue: 0.2}, "No significant relationship"},
		{"undefined", nil, "No significant relationship"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := compositeFinding(tc.corr)
			require.NotNil(t, got)
			assert.Equal(t, KindCompositeCorrelation, got.Kind)
			assert.Contains(t, got.Title, tc.title)
			assert.NotEmpty(t, got.Icon)
			assert.NotEmpty(t, got.Finding)
			assert.NotEmpty(t, got.Meaning)
			assert.NotEmpty(t, got.Recommendation)
		})
	}
}

func TestBandDifferenceFinding_Branches(t *testing.T) {
	test := func(diff float64, significant bool) *stats.BandComparison {
		return &stats.BandComparison{
			TwoSampleTest:  stats.TwoSampleTest{PValue: 0.01, Significant: significant},
			RateDifference: stats.Number(diff),
		}
	}

	assert.Contains(t, bandDifferenceFinding(test(6, true)).Title, "much better")
	assert.Contains(t, bandDifferenceFinding(test(5, true)).Title, "slightly better")
	assert.Contains(t, bandDifferenceFinding(test(0, true)).Title, "slightly better")
	assert.Nil(t, bandDifferenceFinding(test(-2, true)))
	assert.Nil(t, bandDifferenceFinding(test(-5, true)))
	assert.Contains(t, bandDifferenceFinding(test(-5.5, true)).Title, "Low intensity performs better")
	assert.Nil(t, bandDifferenceFinding(test(9, false)))
	assert.Nil(t, bandDifferenceFinding(nil))
}

func band(b stats.Band, mean float64, dominant string, common ...string) stats.BandProfile {
	return stats.BandProfile{
		Band:            b,
		Count:           4,
		Rate:            stats.RateSummary{Mean: stats.Number(mean)},
		DominantTrigger: dominant,
		CommonFrames:    common,
	}
}

func TestBandPatternFindings(t *testing.T) {
	bands := []stats.BandProfile{
		band(stats.BandLow, 4, "hope"),
		band(stats.BandMedium, 9, "anger", "threat"),
		band(stats.BandHigh, 7.5, "fear"),
	}

	got := bandPatternFindings(bands)
	require.Len(t, got, 2)
	assert.Equal(t, KindBestPattern, got[0].Kind)
	assert.Contains(t, got[0].Finding, "Medium-intensity")
	assert.Contains(t, got[0].Finding, "Anger")
	assert.Contains(t, got[0].Finding, "Threat")
	assert.Equal(t, KindWorstPattern, got[1].Kind)
	assert.Contains(t, got[1].Finding, "Low-intensity")
	assert.Contains(t, got[1].Finding, "Hope/Pride")

	// a gap of exactly three points is not reported
	near := []stats.BandProfile{band(stats.BandLow, 4, "hope"), band(stats.BandHigh, 7, "fear")}
	got = bandPatternFindings(near)
	require.Len(t, got, 1)
	assert.Equal(t, KindBestPattern, got[0].Kind)

	assert.Empty(t, bandPatternFindings(nil))
}

func TestFrameCombinationFindings(t *testing.T) {
	bands := []stats.BandProfile{
		band(stats.BandLow, 12, "hope", "moral", "historical"),
		band(stats.BandMedium, 20, "fear", "threat"),
		band(stats.BandHigh, 12.5, "fear", "threat", "victim_perpetrator"),
	}

	got := frameCombinationFindings(bands)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Title, "worth testing alternatives", "12 does not exceed the reference")
	assert.Contains(t, got[0].Finding, "Moral + Historical")
	assert.Contains(t, got[1].Title, "working well")
}

func TestTopCorrelationFinding(t *testing.T) {
	corrs := map[string]stats.Correlation{
		"fear":       {Correlation: 0.41, PValue: 0.01, Significant: true},
		"anger":      {Correlation: -0.72, PValue: 0.001, Significant: true},
		"hope":       {Correlation: 0.9, PValue: 0.3, Significant: false},
		"threat":     {Correlation: 0.55, PValue: 0.002, Significant: true},
		"moral":      {Correlation: 0.35, PValue: 0.04, Significant: true},
		"historical": {Correlation: 0.1, PValue: 0.6},
	}

	got := topCorrelationFinding(corrs)
	require.NotNil(t, got)
	assert.Equal(t, KindTopCorrelations, got.Kind)
	assert.Equal(t, "Anger: strong negative (r = -0.72); Threat frame: strong positive (r = 0.55); Fear/Threat: moderate positive (r = 0.41).", got.Finding)

	assert.Nil(t, topCorrelationFinding(map[string]stats.Correlation{"hope": {Correlation: 0.9}}))
}

func TestInterpret_Order(t *testing.T) {
	report := &stats.Report{
		Correlations: map[string]stats.Correlation{"fear": {Correlation: 0.6, Significant: true}},
		Segmentation: stats.SegmentationResult{
			CompositeCorrelation: sigCorrelation(0.4),
			HighVsLow: &stats.BandComparison{
				TwoSampleTest:  stats.TwoSampleTest{Significant: true},
				RateDifference: 8,
			},
			Bands: []stats.BandProfile{
				band(stats.BandLow, 3, "hope", "moral", "threat"),
				band(stats.BandHigh, 11, "fear"),
			},
		},
	}

	got := interpret(report)

	kinds := make([]string, len(got))
	for i, in := range got {
		kinds[i] = in.Kind
	}
	assert.Equal(t, []string{
		KindCompositeCorrelation,
		KindBandComparison,
		KindBestPattern,
		KindWorstPattern,
		KindFrameCombination,
		KindTopCorrelations,
	}, kinds)
}

func TestFallbackInterpretation(t *testing.T) {
	got := fallbackInterpretation("boom")

	assert.Equal(t, KindInterpretationError, got.Kind)
	assert.Contains(t, got.Finding, "boom")
}
