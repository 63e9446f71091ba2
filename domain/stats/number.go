package stats

import (
	"bytes"
	"encoding/json"
	"math"
)

// Number is a float64 that serializes NaN and ±Inf as JSON null.
// Degenerate statistics (empty groups, zero variance) produce such values and
// must never leak into the wire format.
type Number float64

// Null is the missing marker
var Null = Number(math.NaN())

// Valid reports whether n is a finite value
func (n Number) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float returns the raw value
func (n Number) Float() float64 { return float64(n) }

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Null
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}
