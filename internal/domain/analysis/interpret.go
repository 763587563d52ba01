package analysis

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	fallbackSummary  = "AI did not return a proper summary."
	emptyResponse    = "The AI response was empty."
	missingSummary   = "No summary generated."
	missingReasoning = "No analysis generated."
)

// Interpretation is the structured record recovered from raw model output.
// Score is already clamped and Verdict already derived from the threshold rule.
type Interpretation struct {
	Summary   string
	Reasoning string
	Score     int
	Verdict   Verdict
	Category  string
	Parsed    bool
}

// modelPayload mirrors the JSON contract the prompt asks for. Every field is
// untrusted: score may arrive as a number, a quoted number, or garbage.
type modelPayload struct {
	Summary   string `json:"summary"`
	Reasoning string `json:"analysis"`
	Score     any    `json:"score"`
	Verdict   string `json:"verdict"`
	Category  string `json:"category"`
}

// Interpret extracts the first syntactically valid top-level JSON object from
// the raw model text and maps it onto an Interpretation. It never fails: when
// no valid object exists anywhere in the text, the fixed fallback record is
// returned instead.
func Interpret(raw string) Interpretation {
	obj, ok := firstJSONObject(raw)
	if !ok {
		return fallback(raw)
	}
	var p modelPayload
	if err := json.Unmarshal([]byte(obj), &p); err != nil {
		return fallback(raw)
	}

	score := coerceScore(p.Score)
	stored := ClampScore(score)

	// The verdict must be reproducible from the persisted score, so for finite
	// scores it is derived from the clamped value that gets stored, not the raw
	// coerced one: 89.7 rounds to 90 and is Credible.
	verdict := VerdictFor(score)
	if verdict != VerdictError {
		verdict = VerdictFor(float64(stored))
	}

	summary := p.Summary
	if strings.TrimSpace(summary) == "" {
		summary = missingSummary
	}
	reasoning := p.Reasoning
	if strings.TrimSpace(reasoning) == "" {
		reasoning = missingReasoning
	}
	category := strings.TrimSpace(p.Category)
	if category == "" {
		category = DefaultCategory
	}

	return Interpretation{
		Summary:   CleanText(summary),
		Reasoning: CleanText(reasoning),
		Score:     stored,
		Verdict:   verdict,
		Category:  category,
		Parsed:    true,
	}
}

// firstJSONObject scans for the first position where a complete JSON object can
// be decoded. Prose containing stray braces before (or after) the real object
// is skipped over rather than breaking extraction.
func firstJSONObject(raw string) (string, bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		var obj map[string]any
		if err := dec.Decode(&obj); err == nil {
			end := i + int(dec.InputOffset())
			return raw[i:end], true
		}
	}
	return "", false
}

// coerceScore turns whatever the model put in the score field into a float64.
// Missing scores count as 0 (Not Credible); unparseable ones become NaN so the
// verdict rule reports Error.
func coerceScore(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func fallback(raw string) Interpretation {
	reasoning := strings.TrimSpace(raw)
	if reasoning == "" {
		reasoning = emptyResponse
	}
	return Interpretation{
		Summary:   fallbackSummary,
		Reasoning: CleanText(reasoning),
		Score:     0,
		Verdict:   VerdictError,
		Category:  DefaultCategory,
	}
}
