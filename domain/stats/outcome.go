package stats

import "encoding/json"

// Outcome is the result slot of an analyzer that may fail without aborting its
// siblings. Exactly one of three states holds:
//   - ok:      Value != nil
//   - failed:  Err != ""           → {"error": Err}
//   - skipped: Value == nil, no Err → null
type Outcome[T any] struct {
	Value *T
	Err   string
}

// Ok wraps a successful analyzer result
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: &v}
}

// Failed records a scoped analyzer failure
func Failed[T any](msg string) Outcome[T] {
	return Outcome[T]{Err: msg}
}

// Skipped records that the analyzer did not run
func Skipped[T any]() Outcome[T] {
	return Outcome[T]{}
}

func (o Outcome[T]) IsOk() bool      { return o.Value != nil && o.Err == "" }
func (o Outcome[T]) IsFailed() bool  { return o.Err != "" }
func (o Outcome[T]) IsSkipped() bool { return o.Value == nil && o.Err == "" }

func (o Outcome[T]) MarshalJSON() ([]byte, error) {
	switch {
	case o.Err != "":
		return json.Marshal(struct {
			Error string `json:"error"`
		}{o.Err})
	case o.Value == nil:
		return []byte("null"), nil
	default:
		return json.Marshal(o.Value)
	}
}
