package faults

import "time"

// Fault represents a persisted pipeline failure entry, written best-effort so
// persistence problems can be audited even when the user only saw a generic
// error message.
type Fault struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	AnalysisID  string    `json:"analysis_id,omitempty"`
	Stage       string    `json:"stage"` // model | history | stats
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"` // raw JSON string
	CreatedAt   time.Time `json:"created_at"`
}
