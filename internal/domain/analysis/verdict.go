package analysis

import "math"

// VerdictFor maps a score onto the fixed threshold rule. The verdict string the
// model proposes is never trusted; the persisted verdict is always reproducible
// from the persisted score alone.
func VerdictFor(score float64) Verdict {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return VerdictError
	}
	if score >= CredibleThreshold {
		return VerdictCredible
	}
	return VerdictNotCredible
}

// ClampScore bounds a coerced score to [0,100] for storage. Non-finite values
// collapse to 0, matching the fallback record.
func ClampScore(score float64) int {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(math.Round(score))
}
