package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration resolution and scoring inputs.
var (
	// ErrConfigNotFound indicates no benchmark configuration exists for
	// the requested proficiency level and no fallback is available.
	ErrConfigNotFound = errors.New("benchmark config not found")

	// ErrNoActiveConfig indicates configurations exist for the level but
	// none is marked active.
	ErrNoActiveConfig = errors.New("no active benchmark config for level")

	// ErrEmptyQuestionSet indicates a scoring run was requested with no
	// questions.
	ErrEmptyQuestionSet = errors.New("question set is empty")

	// ErrEmptySubmission indicates a writing submission with no text.
	ErrEmptySubmission = errors.New("writing submission is empty")

	// ErrUnknownResponseType indicates a question carries a response type
	// no scorer handles.
	ErrUnknownResponseType = errors.New("unknown response type")
)

// ConfigValidationError reports a benchmark or placement configuration
// that failed a structural invariant at load time. It names the config
// and the specific violation so the bad snapshot can be fixed rather
// than silently skipped.
type ConfigValidationError struct {
	ConfigID string
	Version  string
	Reason   string
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("config %s (version %s) invalid: %s", e.ConfigID, e.Version, e.Reason)
}

// BandLookupError reports a score that fell outside every range of a
// cutoff table. Tables are validated for exhaustiveness at load time, so
// this error indicates either a corrupted table or a score outside its
// documented range.
type BandLookupError struct {
	Table   string
	Score   float64
	Version string
}

func (e *BandLookupError) Error() string {
	return fmt.Sprintf("no band for score %.2f in table %s (version %s)", e.Score, e.Table, e.Version)
}
