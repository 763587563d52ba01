package stats

import (
	"math"
	"time"
)

// Stats is one user's running counter document.
//
// The exact score sum is stored alongside the count instead of the rounded
// mean, so the average never drifts from repeated rounding: reconstructing
// "sum = mean * count" from a rounded mean loses precision every round-trip.
type Stats struct {
	UserID          string    `json:"user_id"`
	TotalScans      int64     `json:"total_scans"`
	ScoreSum        int64     `json:"score_sum"`
	SuspiciousCount int64     `json:"suspicious_count"`
	VerifiedSources int64     `json:"verified_sources"`
	LastUpdated     time.Time `json:"last_updated"`
}

// AverageScore is the rounded mean of every score ever recorded for the user.
func (s *Stats) AverageScore() int {
	if s.TotalScans == 0 {
		return 0
	}
	return int(math.Round(float64(s.ScoreSum) / float64(s.TotalScans)))
}

// Delta is one submission's contribution to the counters. Exactly one of
// suspicious/verified is incremented per submission, keeping
// suspicious + verified == total at all times.
type Delta struct {
	Score    int
	Credible bool
}
