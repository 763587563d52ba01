package analysis

import (
	"errors"
	"fmt"
)

// ErrModelBusy indicates the model provider is temporarily overloaded
// (HTTP 503/429-class). Reported, not retried.
var ErrModelBusy = errors.New("the AI service is currently busy")

// ErrNotFound indicates the requested analysis record does not exist.
var ErrNotFound = errors.New("analysis not found")

// Validation errors: rejected before any network call, no state mutated.
var (
	ErrEmptyText   = errors.New("text is required")
	ErrMissingUser = errors.New("user id is required")
	ErrTextTooLong = fmt.Errorf("text exceeds %d characters", MaxInputChars)
)

// ModelError carries the status code and any message embedded in a failed
// model request that is not a busy condition.
type ModelError struct {
	StatusCode int
	Message    string
}

func (e *ModelError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("model request failed: %s", e.Message)
	}
	return fmt.Sprintf("model request failed with status %d: %s", e.StatusCode, e.Message)
}

// Stage identifies which pipeline step produced a failure.
type Stage string

const (
	StageModel   Stage = "model"
	StageHistory Stage = "history"
	StageStats   Stage = "stats"
)

// StageError tags a failure with its pipeline stage so callers can tell
// "analysis failed" apart from "analysis succeeded but save failed".
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }
