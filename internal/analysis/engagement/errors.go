package engagement

import "errors"

// Scoped analyzer failures. They never abort the pipeline; the engine turns
// them into error markers inside the affected result slot.
var (
	ErrFitFailed        = errors.New("fit failed")
	ErrClusteringFailed = errors.New("clustering failed")
)
