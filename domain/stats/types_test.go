package stats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_NonFiniteIsNull(t *testing.T) {
	zero := 0.0
	values := map[string]Number{
		"nan":  Number(zero / zero),
		"pinf": Number(math.Inf(1)),
		"ninf": Number(math.Inf(-1)),
		"ok":   1.25,
	}

	data, err := json.Marshal(values)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nan":null,"pinf":null,"ninf":null,"ok":1.25}`, string(data))
}

func TestNumber_RoundTripNull(t *testing.T) {
	var n Number
	require.NoError(t, json.Unmarshal([]byte("null"), &n))
	assert.False(t, n.Valid())

	require.NoError(t, json.Unmarshal([]byte("2.5"), &n))
	assert.True(t, n.Valid())
	assert.Equal(t, 2.5, n.Float())
}

func TestOutcome_States(t *testing.T) {
	ok := Ok(RegressionResult{Observations: 3})
	failed := Failed[RegressionResult]("fit failed")
	skipped := Skipped[RegressionResult]()

	assert.True(t, ok.IsOk())
	assert.True(t, failed.IsFailed())
	assert.True(t, skipped.IsSkipped())
	assert.False(t, skipped.IsFailed())

	data, err := json.Marshal(map[string]Outcome[RegressionResult]{
		"failed":  failed,
		"skipped": skipped,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"failed":{"error":"fit failed"},"skipped":null}`, string(data))

	data, err = json.Marshal(ok)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"observations":3`)
}

func TestReport_InsufficientShape(t *testing.T) {
	r := Report{
		Error:         ErrInsufficientData,
		EligibleCount: 2,
		Diagnostics:   Diagnostics{Total: 5, Reviewed: 2, Eligible: 2},
		Correlations:  map[string]Correlation{"fear": {}},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"error":"insufficient data","eligible_count":2,"diagnostics":{"total":5,"reviewed":2,"archived":0,"excluded":0,"eligible":2}}`,
		string(data))
}

func TestReport_FullShapeOmitsError(t *testing.T) {
	r := Report{
		EligibleCount: 4,
		Segmentation:  SegmentationResult{Q25: Null, Q75: 3},
	}

	data, err := json.Marshal(&r)
	require.NoError(t, err)

	var shape map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &shape))
	assert.NotContains(t, shape, "error")
	assert.Contains(t, shape, "regression")
	assert.JSONEq(t, `null`, string(shape["clusters"]))
	assert.Contains(t, string(shape["segmentation"]), `"q25":null`)
}

func TestSegmentationResult_Band(t *testing.T) {
	s := SegmentationResult{Bands: []BandProfile{{Band: BandLow, Count: 2}, {Band: BandHigh, Count: 3}}}

	high, ok := s.Band(BandHigh)
	assert.True(t, ok)
	assert.Equal(t, 3, high.Count)

	_, ok = s.Band(BandMedium)
	assert.False(t, ok)
}
