package excel

import (
	"io"
	"sort"
	"strings"

	"terlab/domain/post"
	"terlab/domain/stats"

	"github.com/xuri/excelize/v2"
)

// table is one worksheet of an exported workbook
type table struct {
	sheet   string
	headers []string
	rows    [][]interface{}
}

// cell converts a statistic into a cell value; missing values stay blank
func cell(n stats.Number) interface{} {
	if !n.Valid() {
		return nil
	}
	return n.Float()
}

// writeTables renders tables as sheets in order; the first replaces Sheet1
func writeTables(w io.Writer, tables []table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(t.sheet); err != nil {
			return err
		}

		// Header row
		for c, h := range t.headers {
			name, _ := excelize.CoordinatesToCellName(c+1, 1)
			if err := f.SetCellValue(t.sheet, name, h); err != nil {
				return err
			}
		}

		// Data rows
		for r, row := range t.rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				name, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellValue(t.sheet, name, v); err != nil {
					return err
				}
			}
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

// WritePosts writes posts in the import column layout
func WritePosts(w io.Writer, posts []post.Post) error {
	t := table{sheet: "Posts", headers: Columns()}
	for _, p := range posts {
		var rate interface{}
		if p.CuratedRate != nil {
			rate = *p.CuratedRate
		}
		row := []interface{}{
			p.URL, p.Author, p.Content, p.PostedAt,
			p.Counts.Likes, p.Counts.Bookmarks, p.Counts.Replies, p.Counts.Retweets, p.Counts.Quotes, p.Counts.Views,
			rate,
		}
		for _, trig := range post.Triggers() {
			row = append(row, p.Trigger(trig))
		}
		for _, fr := range post.Frames() {
			row = append(row, int(p.FrameValue(fr)))
		}
		row = append(row, flag(p.Reviewed), flag(p.Archived), flag(p.Excluded), p.Notes)
		t.rows = append(t.rows, row)
	}
	return writeTables(w, []table{t})
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// WriteReport exports an analysis report as a workbook of chart-ready tables
func WriteReport(w io.Writer, report *stats.Report) error {
	tables := []table{summaryTable(report)}
	if !report.Insufficient() {
		tables = append(tables,
			correlationTable(report),
			regressionTable(report),
			frameComparisonTable(report),
			segmentationTable(report),
			clusterTable(report),
			interpretationTable(report),
			variableComparisonTable(report),
			coOccurrenceTable(report),
			intensityFrameTable(report),
			hexagonTable("Trigger Hexagon", report.Charts.TriggerHexagon),
			hexagonTable("Frame Hexagon", report.Charts.FrameHexagon),
			frequencyTable(report),
		)
	}
	return writeTables(w, tables)
}

func summaryTable(r *stats.Report) table {
	d := r.Diagnostics
	rows := [][]interface{}{
		{"total_posts", d.Total},
		{"reviewed", d.Reviewed},
		{"archived", d.Archived},
		{"excluded", d.Excluded},
		{"eligible", d.Eligible},
	}
	if r.Insufficient() {
		rows = append(rows, []interface{}{"error", r.Error})
	} else {
		desc := r.Descriptive
		rows = append(rows,
			[]interface{}{"rate_mean", cell(desc.RateMean)},
			[]interface{}{"rate_std", cell(desc.RateStdDev)},
			[]interface{}{"rate_min", cell(desc.RateMin)},
			[]interface{}{"rate_max", cell(desc.RateMax)},
		)
		for _, t := range post.Triggers() {
			rows = append(rows, []interface{}{"mean_" + t.Key(), cell(desc.TriggerMeans[t.Key()])})
		}
	}
	return table{sheet: "Summary", headers: []string{"metric", "value"}, rows: rows}
}

func correlationTable(r *stats.Report) table {
	keys := make([]string, 0, len(r.Correlations))
	for k := range r.Correlations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := table{sheet: "Correlations", headers: []string{"variable", "r", "p_value", "significant", "n"}}
	for _, k := range keys {
		c := r.Correlations[k]
		t.rows = append(t.rows, []interface{}{k, cell(c.Correlation), cell(c.PValue), c.Significant, c.SampleSize})
	}
	return t
}

func regressionTable(r *stats.Report) table {
	t := table{sheet: "Regression", headers: []string{"predictor", "kind", "coefficient", "abs_coefficient"}}
	switch {
	case r.Regression.IsFailed():
		t.rows = append(t.rows, []interface{}{"error", r.Regression.Err})
	case r.Regression.IsOk():
		reg := r.Regression.Value
		t.rows = append(t.rows,
			[]interface{}{"(intercept)", "", cell(reg.Intercept)},
			[]interface{}{"(r_squared)", "", cell(reg.RSquared)},
		)
		for _, c := range reg.Coefficients {
			t.rows = append(t.rows, []interface{}{c.Predictor, c.Kind, cell(c.Coefficient), cell(c.AbsCoefficient)})
		}
	}
	return t
}

func frameComparisonTable(r *stats.Report) table {
	t := table{sheet: "Frame Comparisons", headers: []string{
		"frame", "n_with", "mean_with", "std_with", "n_without", "mean_without", "std_without",
		"t_statistic", "df", "p_value", "significant", "effect_size",
	}}
	for _, g := range r.GroupComparisons {
		t.rows = append(t.rows, []interface{}{
			g.Label, g.Present.Count, cell(g.Present.Mean), cell(g.Present.StdDev),
			g.Absent.Count, cell(g.Absent.Mean), cell(g.Absent.StdDev),
			cell(g.TStatistic), cell(g.DegreesOfFreedom), cell(g.PValue), g.Significant, cell(g.EffectSize),
		})
	}
	return t
}

func segmentationTable(r *stats.Report) table {
	seg := r.Segmentation
	t := table{sheet: "Segmentation", headers: []string{
		"band", "count", "composite_min", "composite_max", "rate_mean", "rate_std", "rate_min", "rate_max",
		"dominant_trigger", "common_frames",
	}}
	for _, b := range seg.Bands {
		t.rows = append(t.rows, []interface{}{
			string(b.Band), b.Count, b.CompositeMin, b.CompositeMax,
			cell(b.Rate.Mean), cell(b.Rate.StdDev), cell(b.Rate.Min), cell(b.Rate.Max),
			b.DominantTrigger, strings.Join(b.CommonFrames, ", "),
		})
	}
	t.rows = append(t.rows,
		[]interface{}{"q25", cell(seg.Q25)},
		[]interface{}{"q75", cell(seg.Q75)},
	)
	if hl := seg.HighVsLow; hl != nil {
		t.rows = append(t.rows,
			[]interface{}{"high_vs_low_difference", cell(hl.RateDifference)},
			[]interface{}{"high_vs_low_p_value", cell(hl.PValue)},
		)
	}
	return t
}

func clusterTable(r *stats.Report) table {
	headers := []string{"cluster_id", "size", "avg_rate", "dominant_trigger"}
	for _, trig := range post.Triggers() {
		headers = append(headers, trig.Key())
	}
	t := table{sheet: "Clusters", headers: headers}

	switch {
	case r.Clusters.IsFailed():
		t.rows = append(t.rows, []interface{}{"error", r.Clusters.Err})
	case r.Clusters.IsOk():
		for _, c := range r.Clusters.Value.Profiles {
			row := []interface{}{c.ClusterID, c.Size, cell(c.MeanRate), c.DominantTrigger}
			for _, trig := range post.Triggers() {
				row = append(row, cell(c.TriggerProfile[trig.Key()]))
			}
			t.rows = append(t.rows, row)
		}
	}
	return t
}

func interpretationTable(r *stats.Report) table {
	t := table{sheet: "Interpretation", headers: []string{"kind", "title", "finding", "meaning", "recommendation"}}
	for _, in := range r.Interpretations {
		t.rows = append(t.rows, []interface{}{in.Kind, in.Title, in.Finding, in.Meaning, in.Recommendation})
	}
	return t
}

func variableComparisonTable(r *stats.Report) table {
	t := table{sheet: "Variable Comparisons", headers: []string{
		"variable", "kind", "mean_with", "mean_without", "difference", "count_with", "count_without",
	}}
	for _, v := range r.Charts.VariableComparisons {
		t.rows = append(t.rows, []interface{}{
			v.Label, v.Kind, cell(v.MeanWith), cell(v.MeanWithout), cell(v.Difference), v.CountWith, v.CountWithout,
		})
	}
	return t
}

func coOccurrenceTable(r *stats.Report) table {
	t := table{sheet: "Combinations", headers: []string{"combination", "trigger", "frame", "mean_rate", "count"}}
	for _, c := range r.Charts.CoOccurrences {
		t.rows = append(t.rows, []interface{}{c.Label, c.Trigger, c.Frame, cell(c.MeanRate), c.Count})
	}
	return t
}

func intensityFrameTable(r *stats.Report) table {
	headers := []string{"trigger", "level", "count", "mean_rate"}
	for _, f := range post.Frames() {
		headers = append(headers, f.Key()+"_pct")
	}
	t := table{sheet: "Intensity Frames", headers: headers}
	for _, u := range r.Charts.IntensityFrameUsage {
		row := []interface{}{u.Trigger, u.Level, u.Count, cell(u.MeanRate)}
		for _, f := range post.Frames() {
			row = append(row, cell(u.FramePresence[f.Key()]))
		}
		t.rows = append(t.rows, row)
	}
	return t
}

func hexagonTable(sheet string, points []stats.HexagonPoint) table {
	t := table{sheet: sheet, headers: []string{"variable", "count", "frequency_pct", "mean_rate", "effectiveness"}}
	for _, p := range points {
		t.rows = append(t.rows, []interface{}{p.Label, p.Count, cell(p.Frequency), cell(p.MeanRate), cell(p.Effectiveness)})
	}
	return t
}

func frequencyTable(r *stats.Report) table {
	t := table{sheet: "Trigger Frequency", headers: []string{"trigger", "count", "total", "percentage"}}
	for _, f := range r.Charts.TriggerFrequency {
		t.rows = append(t.rows, []interface{}{f.Label, f.Count, f.Total, cell(f.Percentage)})
	}
	return t
}
