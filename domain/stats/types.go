package stats

import "encoding/json"

// ============================================================================
// REPORT (one analysis invocation over one scope)
// ============================================================================

// ErrInsufficientData is the report-level error marker
const ErrInsufficientData = "insufficient data"

// Report is the complete output of one analysis run. It contains only plain
// values and is safe for direct serialization.
type Report struct {
	Error         string      `json:"error,omitempty"`
	EligibleCount int         `json:"eligible_count"`
	Diagnostics   Diagnostics `json:"diagnostics"`

	Descriptive      Descriptive               `json:"descriptive"`
	Correlations     map[string]Correlation    `json:"correlations"`
	Regression       Outcome[RegressionResult] `json:"regression"`
	GroupComparisons []GroupComparison         `json:"group_comparisons"`
	Segmentation     SegmentationResult        `json:"segmentation"`
	Clusters         Outcome[ClusterResult]    `json:"clusters"`
	Interpretations  []Interpretation          `json:"interpretations"`
	Charts           Charts                    `json:"charts"`

	// AnalyzerErrors names result slots whose analyzer crashed
	AnalyzerErrors map[string]string `json:"analyzer_errors,omitempty"`
}

// Insufficient reports whether the pipeline short-circuited
func (r Report) Insufficient() bool {
	return r.Error != ""
}

// MarshalJSON emits only the diagnostic shape for short-circuited reports
func (r Report) MarshalJSON() ([]byte, error) {
	if r.Insufficient() {
		return json.Marshal(struct {
			Error         string      `json:"error"`
			EligibleCount int         `json:"eligible_count"`
			Diagnostics   Diagnostics `json:"diagnostics"`
		}{r.Error, r.EligibleCount, r.Diagnostics})
	}
	type plain Report
	return json.Marshal(plain(r))
}

// Diagnostics counts posts by status for the analysed scope
type Diagnostics struct {
	Total    int `json:"total"`
	Reviewed int `json:"reviewed"`
	Archived int `json:"archived"`
	Excluded int `json:"excluded"`
	Eligible int `json:"eligible"`
}

// Descriptive summarizes the curated rate and trigger levels of the eligible set
type Descriptive struct {
	PostCount    int               `json:"post_count"`
	RateMean     Number            `json:"rate_mean"`
	RateStdDev   Number            `json:"rate_std"`
	RateMin      Number            `json:"rate_min"`
	RateMax      Number            `json:"rate_max"`
	TriggerMeans map[string]Number `json:"trigger_means"`
}

// ============================================================================
// ANALYZER RESULTS
// ============================================================================

// Correlation is a Pearson coefficient against the curated rate
type Correlation struct {
	Correlation Number `json:"correlation"`
	PValue      Number `json:"p_value"`
	Significant bool   `json:"significant"`
	SampleSize  int    `json:"sample_size"`
}

// Coefficient is one regression predictor weight
type Coefficient struct {
	Predictor      string `json:"predictor"`
	Kind           string `json:"kind"` // "trigger" or "frame"
	Coefficient    Number `json:"coefficient"`
	AbsCoefficient Number `json:"abs_coefficient"`
}

// RegressionResult is an OLS fit of the curated rate on all triggers and frames
type RegressionResult struct {
	Intercept    Number        `json:"intercept"`
	RSquared     Number        `json:"r_squared"`
	Observations int           `json:"observations"`
	Coefficients []Coefficient `json:"coefficients"`
}

// GroupStats describes one side of a two-sample comparison
type GroupStats struct {
	Count  int    `json:"count"`
	Mean   Number `json:"mean"`
	StdDev Number `json:"std"`
}

// TwoSampleTest is a Welch (unequal variance) t-test outcome
type TwoSampleTest struct {
	TStatistic       Number `json:"t_statistic"`
	DegreesOfFreedom Number `json:"degrees_of_freedom"`
	PValue           Number `json:"p_value"`
	Significant      bool   `json:"significant"`
}

// GroupComparison contrasts posts with and without a frame
type GroupComparison struct {
	Frame   string     `json:"frame"`
	Label   string     `json:"label"`
	Present GroupStats `json:"with_frame"`
	Absent  GroupStats `json:"without_frame"`
	TwoSampleTest
	EffectSize Number `json:"effect_size"` // mean present - mean absent
}

// Band is an intensity segment
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// RateSummary summarizes curated rates within a group
type RateSummary struct {
	Mean   Number `json:"mean"`
	StdDev Number `json:"std"`
	Min    Number `json:"min"`
	Max    Number `json:"max"`
}

// BandProfile profiles one non-empty intensity band
type BandProfile struct {
	Band            Band              `json:"band"`
	Count           int               `json:"count"`
	CompositeMin    int               `json:"composite_min"`
	CompositeMax    int               `json:"composite_max"`
	Rate            RateSummary       `json:"rate"`
	TriggerMeans    map[string]Number `json:"trigger_means"`
	DominantTrigger string            `json:"dominant_trigger"`
	FramePresence   map[string]Number `json:"frame_presence_pct"`
	CommonFrames    []string          `json:"common_frames"`
}

// BandComparison tests high- against low-intensity rates
type BandComparison struct {
	TwoSampleTest
	RateDifference Number `json:"rate_difference"` // mean high - mean low
}

// SegmentationResult is the quartile-based intensity segmentation
type SegmentationResult struct {
	Q25                  Number          `json:"q25"`
	Q75                  Number          `json:"q75"`
	Bands                []BandProfile   `json:"bands"`
	HighVsLow            *BandComparison `json:"high_vs_low"`
	CompositeCorrelation *Correlation    `json:"composite_correlation"`
}

// Band returns the profile for b if that band is non-empty
func (s SegmentationResult) Band(b Band) (BandProfile, bool) {
	for _, p := range s.Bands {
		if p.Band == b {
			return p, true
		}
	}
	return BandProfile{}, false
}

// ClusterProfile describes one k-means cluster of trigger profiles
type ClusterProfile struct {
	ClusterID       int               `json:"cluster_id"`
	Size            int               `json:"size"`
	MeanRate        Number            `json:"avg_rate"`
	TriggerProfile  map[string]Number `json:"trigger_profile"`
	DominantTrigger string            `json:"dominant_trigger"`
}

// ClusterResult is the profile clustering outcome
type ClusterResult struct {
	K        int              `json:"n_clusters"`
	Seed     int64            `json:"seed"`
	Restarts int              `json:"restarts"`
	Inertia  Number           `json:"inertia"`
	Profiles []ClusterProfile `json:"profiles"`
}

// ============================================================================
// INTERPRETATION
// ============================================================================

// Interpretation is one rule-generated narrative finding
type Interpretation struct {
	Kind           string `json:"kind"`
	Icon           string `json:"icon"`
	Title          string `json:"title"`
	Finding        string `json:"finding"`
	Meaning        string `json:"meaning"`
	Recommendation string `json:"recommendation"`
}

// ============================================================================
// CHARTS
// ============================================================================

// VariableComparison is the with/without contrast for one trigger or frame
type VariableComparison struct {
	Variable     string `json:"variable"`
	Label        string `json:"label"`
	Kind         string `json:"kind"`
	MeanWith     Number `json:"mean_with"`
	MeanWithout  Number `json:"mean_without"`
	Difference   Number `json:"difference"`
	CountWith    int    `json:"count_with"`
	CountWithout int    `json:"count_without"`
}

// CoOccurrence is the rate of posts pairing a high trigger with a frame
type CoOccurrence struct {
	Trigger  string `json:"trigger"`
	Frame    string `json:"frame"`
	Label    string `json:"label"`
	MeanRate Number `json:"mean_rate"`
	Count    int    `json:"count"`
}

// IntensityFrameUsage is frame usage among posts at a given trigger intensity
type IntensityFrameUsage struct {
	Trigger       string            `json:"trigger"`
	Level         string            `json:"level"` // "high" (>=3) or "low" (<=1)
	Count         int               `json:"count"`
	MeanRate      Number            `json:"mean_rate"`
	FramePresence map[string]Number `json:"frame_presence_pct"`
}

// HexagonPoint pairs presence frequency with display-scaled effectiveness
type HexagonPoint struct {
	Variable      string  `json:"variable"`
	Label         string  `json:"label"`
	Count         int     `json:"count"`
	Frequency     Number  `json:"frequency_pct"`
	MeanRate      Number  `json:"mean_rate"`
	Effectiveness Number  `json:"effectiveness"`
	ScaleFactor   float64 `json:"scale_factor"`
}

// Frequency is the share of posts carrying a trigger at any intensity
type Frequency struct {
	Trigger    string `json:"trigger"`
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Total      int    `json:"total"`
	Percentage Number `json:"percentage"`
}

// Charts holds every chart-ready table
type Charts struct {
	VariableComparisons []VariableComparison  `json:"variable_comparisons"`
	CoOccurrences       []CoOccurrence        `json:"trigger_frame_combinations"`
	IntensityFrameUsage []IntensityFrameUsage `json:"trigger_intensity_frames"`
	TriggerHexagon      []HexagonPoint        `json:"trigger_hexagon"`
	FrameHexagon        []HexagonPoint        `json:"frame_hexagon"`
	TriggerFrequency    []Frequency           `json:"trigger_frequency"`
}
