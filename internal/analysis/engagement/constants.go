package engagement

// Fixed thresholds of the analysis pipeline. None of them is configurable at
// runtime; changing one changes reported results.
const (
	MinEligiblePosts = 3
	MinGroupSize     = 2

	LowerQuartile = 25.0
	UpperQuartile = 75.0

	// CommonFramePercent is the presence share at which a frame counts as common in a band
	CommonFramePercent = 50.0

	ClusterCount         = 3
	MinClusterPosts      = 10
	ClusterSeed          = 42
	ClusterRestarts      = 10
	ClusterMaxIterations = 300

	// FrameComboReferenceRate separates working frame combinations from ones worth replacing
	FrameComboReferenceRate = 12.0

	EffectivenessScale = 4.0
	EffectivenessCap   = 100.0

	HighTriggerLevel = 3
	LowTriggerLevel  = 1

	TopCoOccurrences = 10
	TopCorrelations  = 3

	BandGapThreshold        = 3.0
	BandDifferenceThreshold = 5.0

	StrongCorrelation   = 0.5
	ModerateCorrelation = 0.3
)

// Dashboard statistics
const (
	TopPostsLimit   = 10
	SummaryDecimals = 2
)

// RateBinEdges are the lower edges of the automatic-rate histogram bins. The
// last bin is open-ended.
var RateBinEdges = []float64{0, 1, 2, 5, 10, 20, 50, 100}
