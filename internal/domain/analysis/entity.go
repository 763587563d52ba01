package analysis

import (
	"time"
)

// AnalysisID identifier type
type AnalysisID string

// Verdict enum
type Verdict string

const (
	VerdictCredible    Verdict = "Credible"
	VerdictNotCredible Verdict = "Not Credible"
	VerdictError       Verdict = "Error"
)

// CredibleThreshold is the minimum score for a Credible verdict.
const CredibleThreshold = 90

// DefaultCategory is used whenever the model does not propose one.
const DefaultCategory = "Uncategorized"

const (
	// MaxPromptChars caps what is sent to the model per submission.
	MaxPromptChars = 4000
	// MaxInputChars caps what the API accepts at all.
	MaxInputChars = 100000
	// TruncationMarker is appended when input is cut down to MaxPromptChars.
	TruncationMarker = "\n\n[Truncated for analysis...]"
)

// Aggregate Root: Analysis
// One record per submission, owned by a user, immutable once created.
type Analysis struct {
	ID        AnalysisID `json:"id"`
	UserID    string     `json:"user_id"`
	Text      string     `json:"text"`
	Summary   string     `json:"summary"`
	Reasoning string     `json:"analysis"`
	Score     int        `json:"score"`
	Verdict   Verdict    `json:"verdict"`
	Category  string     `json:"category"`
	CreatedAt time.Time  `json:"created_at"`
}

// TruncateForModel applies the prompt cap. The returned text is also what gets
// persisted on the record, so "what we analyzed" and "what we stored" stay the
// same value.
func TruncateForModel(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxPromptChars {
		return text
	}
	return string(runes[:MaxPromptChars]) + TruncationMarker
}
