package excel

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"terlab/domain/core"
	"terlab/domain/stats"
	"terlab/internal/analysis/engagement"
	"terlab/internal/testkit"
)

func TestWriteReport_AllSheets(t *testing.T) {
	cfg := testkit.DefaultPostConfig()
	cfg.PostCount = 80
	report := engagement.Analyze(testkit.NewPostGenerator(cfg).Generate(core.NewSessionID()))
	require.False(t, report.Insufficient())

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Summary", "Correlations", "Regression", "Frame Comparisons", "Segmentation", "Clusters",
		"Interpretation", "Variable Comparisons", "Combinations", "Intensity Frames",
		"Trigger Hexagon", "Frame Hexagon", "Trigger Frequency",
	}, f.GetSheetList())

	rows, err := f.GetRows("Trigger Frequency")
	require.NoError(t, err)
	assert.Equal(t, []string{"trigger", "count", "total", "percentage"}, rows[0])
	assert.Len(t, rows, 1+len(report.Charts.TriggerFrequency))

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, "eligible", summary[5][0])
	assert.Equal(t, strconv.Itoa(report.EligibleCount), summary[5][1])
}

func TestWriteReport_InsufficientDataOnlySummary(t *testing.T) {
	report := engagement.Analyze(nil)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary"}, f.GetSheetList())
	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"error", stats.ErrInsufficientData}, rows[len(rows)-1])
}

func TestCell_BlankForMissing(t *testing.T) {
	assert.Nil(t, cell(stats.Null))
	assert.Equal(t, 1.5, cell(stats.Number(1.5)))
}
