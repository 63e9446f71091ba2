package engagement

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"terlab/domain/post"
	"terlab/domain/stats"
)

// Interpretation kinds
const (
	KindCompositeCorrelation = "composite_correlation"
	KindBandComparison       = "band_comparison"
	KindBestPattern          = "best_pattern"
	KindWorstPattern         = "worst_pattern"
	KindFrameCombination     = "frame_combination"
	KindTopCorrelations      = "top_correlations"
	KindInterpretationError  = "interpretation_error"
)

// interpret turns analyzer outputs into ordered narrative findings. Rules run
// in a fixed order and each appends at most one entry, except the frame
// combination rule which appends one per qualifying band. A panic in any rule
// replaces the whole list with a single fallback entry.
func interpret(r *stats.Report) (out []stats.Interpretation) {
	defer func() {
		if rec := recover(); rec != nil {
			out = []stats.Interpretation{fallbackInterpretation(fmt.Sprint(rec))}
		}
	}()

	out = []stats.Interpretation{}
	out = appendIf(out, compositeFinding(r.Segmentation.CompositeCorrelation))
	out = appendIf(out, bandDifferenceFinding(r.Segmentation.HighVsLow))
	out = append(out, bandPatternFindings(r.Segmentation.Bands)...)
	out = append(out, frameCombinationFindings(r.Segmentation.Bands)...)
	out = appendIf(out, topCorrelationFinding(r.Correlations))
	return out
}

func appendIf(out []stats.Interpretation, in *stats.Interpretation) []stats.Interpretation {
	if in == nil {
		return out
	}
	return append(out, *in)
}

func fallbackInterpretation(msg string) stats.Interpretation {
	return stats.Interpretation{
		Kind:           KindInterpretationError,
		Icon:           "⚠️",
		Title:          "Interpretation unavailable",
		Finding:        fmt.Sprintf("The findings could not be generated: %s", msg),
		Meaning:        "The statistical results above are unaffected.",
		Recommendation: "Review the numeric results directly.",
	}
}

// Rule 1
func compositeFinding(c *stats.Correlation) *stats.Interpretation {
	if c == nil || !c.Significant || !c.Correlation.Valid() {
		return &stats.Interpretation{
			Kind:           KindCompositeCorrelation,
			Icon:           "➖",
			Title:          "No significant relationship between trigger intensity and engagement",
			Finding:        "Total trigger intensity does not predict the engagement rate in this data.",
			Meaning:        "How many emotional triggers a post stacks up is not what drives its engagement here.",
			Recommendation: "Look at individual triggers and frames rather than overall intensity.",
		}
	}

	r := c.Correlation.Float()
	p := c.PValue.Float()
	finding := fmt.Sprintf("Total trigger intensity correlates with the engagement rate (r = %.2f, p = %.3f).", r, p)

	switch {
	case r > StrongCorrelation:
		return &stats.Interpretation{
			Kind:           KindCompositeCorrelation,
			Icon:           "📈",
			Title:          "Strong positive link between trigger intensity and engagement",
			Finding:        finding,
			Meaning:        "Posts that combine more and stronger emotional triggers reach clearly higher engagement.",
			Recommendation: "Intensity is a key lever; watch which trigger combinations carry it.",
		}
	case r > ModerateCorrelation:
		return &stats.Interpretation{
			Kind:           KindCompositeCorrelation,
			Icon:           "↗️",
			Title:          "Moderate positive link between trigger intensity and engagement",
			Finding:        finding,
			Meaning:        "More intense posts tend to engage better, but intensity is only part of the story.",
			Recommendation: "Combine the intensity view with the per-trigger results.",
		}
	case r < -ModerateCorrelation:
		return &stats.Interpretation{
			Kind:           KindCompositeCorrelation,
			Icon:           "📉",
			Title:          "Too many triggers reduce engagement",
			Finding:        finding,
			Meaning:        "Posts overloaded with emotional triggers engage worse than more focused ones.",
			Recommendation: "Check whether focused posts with one or two strong triggers perform better.",
		}
	default:
		return &stats.Interpretation{
			Kind:           KindCompositeCorrelation,
			Icon:           "〰️",
			Title:          "Weak link between trigger intensity and engagement",
			Finding:        finding,
			Meaning:        "The relationship is statistically detectable but small in practice.",
			Recommendation: "Treat intensity as a minor factor.",
		}
	}
}

// Rule 2
func bandDifferenceFinding(c *stats.BandComparison) *stats.Interpretation {
	if c == nil || !c.Significant || !c.RateDifference.Valid() {
		return nil
	}

	diff := c.RateDifference.Float()
	finding := fmt.Sprintf("High-intensity posts differ from low-intensity posts by %+.2f rate points (p = %.3f).", diff, c.PValue.Float())

	switch {
	case diff > BandDifferenceThreshold:
		return &stats.Interpretation{
			Kind:           KindBandComparison,
			Icon:           "🔥",
			Title:          "High intensity performs much better",
			Finding:        finding,
			Meaning:        "Posts in the top intensity quartile engage substantially more than those in the bottom quartile.",
			Recommendation: "High-intensity content is the strongest engagement pattern in this set.",
		}
	case diff >= 0:
		return &stats.Interpretation{
			Kind:           KindBandComparison,
			Icon:           "➕",
			Title:          "High intensity performs slightly better",
			Finding:        finding,
			Meaning:        "The advantage of high-intensity posts is significant but small.",
			Recommendation: "Intensity helps a little; content and framing matter more.",
		}
	case diff < -BandDifferenceThreshold:
		return &stats.Interpretation{
			Kind:           KindBandComparison,
			Icon:           "🔄",
			Title:          "Low intensity performs better, contrary to expectation",
			Finding:        finding,
			Meaning:        "Calmer posts engage more than the most intense ones in this set.",
			Recommendation: "Examine the low-intensity posts for what drives their engagement.",
		}
	}
	return nil
}

// Rule 3
func bandPatternFindings(bands []stats.BandProfile) []stats.Interpretation {
	best, worst := -1, -1
	for i, b := range bands {
		if !b.Rate.Mean.Valid() {
			continue
		}
		if best < 0 || b.Rate.Mean > bands[best].Rate.Mean {
			best = i
		}
		if worst < 0 || b.Rate.Mean < bands[worst].Rate.Mean {
			worst = i
		}
	}
	if best < 0 {
		return nil
	}

	top := bands[best]
	finding := fmt.Sprintf("%s-intensity posts reach the highest mean rate (%.2f, n = %d), led by %s%s.",
		bandTitle(top.Band), top.Rate.Mean.Float(), top.Count, triggerLabel(top.DominantTrigger), frameSuffix(top.CommonFrames))
	out := []stats.Interpretation{{
		Kind:           KindBestPattern,
		Icon:           "🏆",
		Title:          "Most successful pattern",
		Finding:        finding,
		Meaning:        "This combination of intensity, dominant trigger and framing works best in the analysed posts.",
		Recommendation: "Use it as the reference pattern when comparing new posts.",
	}}

	low := bands[worst]
	if gap := top.Rate.Mean.Float() - low.Rate.Mean.Float(); gap > BandGapThreshold {
		finding := fmt.Sprintf("%s-intensity posts trail by %.2f rate points (mean %.2f, n = %d), led by %s%s.",
			bandTitle(low.Band), gap, low.Rate.Mean.Float(), low.Count, triggerLabel(low.DominantTrigger), frameSuffix(low.CommonFrames))
		out = append(out, stats.Interpretation{
			Kind:           KindWorstPattern,
			Icon:           "⬇️",
			Title:          "Less successful pattern",
			Finding:        finding,
			Meaning:        "This pattern consistently underperforms the best band.",
			Recommendation: "Compare it with the most successful pattern before reusing it.",
		})
	}
	return out
}

// Rule 4
func frameCombinationFindings(bands []stats.BandProfile) []stats.Interpretation {
	var out []stats.Interpretation
	for _, b := range bands {
		if len(b.CommonFrames) < 2 {
			continue
		}

		combo := frameList(b.CommonFrames)
		mean := b.Rate.Mean.Float()
		entry := stats.Interpretation{
			Kind:    KindFrameCombination,
			Icon:    "🧩",
			Finding: fmt.Sprintf("%s-intensity posts typically combine %s (mean rate %.2f).", bandTitle(b.Band), combo, mean),
		}
		if b.Rate.Mean.Valid() && mean > FrameComboReferenceRate {
			entry.Title = "Frame combination working well"
			entry.Meaning = fmt.Sprintf("This combination stays above the reference rate of %.0f.", FrameComboReferenceRate)
			entry.Recommendation = "Keep using this combination."
		} else {
			entry.Title = "Frame combination worth testing alternatives"
			entry.Meaning = fmt.Sprintf("This combination does not exceed the reference rate of %.0f.", FrameComboReferenceRate)
			entry.Recommendation = "Try other frame pairings at this intensity."
		}
		out = append(out, entry)
	}
	return out
}

// Rule 5
func topCorrelationFinding(corrs map[string]stats.Correlation) *stats.Interpretation {
	type ranked struct {
		label string
		r     float64
	}

	var sig []ranked
	for _, t := range post.Triggers() {
		if c, ok := corrs[t.Key()]; ok && c.Significant && c.Correlation.Valid() {
			sig = append(sig, ranked{t.Label(), c.Correlation.Float()})
		}
	}
	for _, f := range post.Frames() {
		if c, ok := corrs[f.Key()]; ok && c.Significant && c.Correlation.Valid() {
			sig = append(sig, ranked{f.Label() + " frame", c.Correlation.Float()})
		}
	}
	if len(sig) == 0 {
		return nil
	}

	sort.SliceStable(sig, func(a, b int) bool {
		return math.Abs(sig[a].r) > math.Abs(sig[b].r)
	})
	if len(sig) > TopCorrelations {
		sig = sig[:TopCorrelations]
	}

	parts := make([]string, len(sig))
	for i, s := range sig {
		direction := "positive"
		if s.r < 0 {
			direction = "negative"
		}
		strength := "moderate"
		if math.Abs(s.r) > StrongCorrelation {
			strength = "strong"
		}
		parts[i] = fmt.Sprintf("%s: %s %s (r = %.2f)", s.label, strength, direction, s.r)
	}

	return &stats.Interpretation{
		Kind:           KindTopCorrelations,
		Icon:           "🔗",
		Title:          "Strongest individual relationships",
		Finding:        strings.Join(parts, "; ") + ".",
		Meaning:        "These triggers and frames move most closely with the engagement rate.",
		Recommendation: "Correlation is not causation; confirm with targeted comparisons.",
	}
}

func bandTitle(b stats.Band) string {
	s := string(b)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func triggerLabel(key string) string {
	for _, t := range post.Triggers() {
		if t.Key() == key {
			return t.Label()
		}
	}
	return key
}

func frameList(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, f := range post.Frames() {
			if f.Key() == k {
				labels = append(labels, f.Label())
			}
		}
	}
	return strings.Join(labels, " + ")
}

func frameSuffix(keys []string) string {
	if len(keys) == 0 {
		return " with no common frame"
	}
	return " with " + frameList(keys)
}
