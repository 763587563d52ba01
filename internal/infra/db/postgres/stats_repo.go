package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/credifyai/credify-api/internal/domain/stats"
)

type StatsRepository struct{ db *sql.DB }

func NewStatsRepository(db *sql.DB) *StatsRepository { return &StatsRepository{db: db} }

// Apply folds one submission into the counters atomically; the increments run
// inside the upsert so concurrent submissions cannot lose updates.
func (r *StatsRepository) Apply(ctx context.Context, userID string, d domain.Delta) error {
	const q = `
INSERT INTO user_stats
 (user_id, total_scans, score_sum, suspicious_count, verified_sources, last_updated)
VALUES ($1,1,$2,$3,$4,$5)
ON CONFLICT (user_id) DO UPDATE SET
 total_scans = user_stats.total_scans + 1,
 score_sum = user_stats.score_sum + EXCLUDED.score_sum,
 suspicious_count = user_stats.suspicious_count + EXCLUDED.suspicious_count,
 verified_sources = user_stats.verified_sources + EXCLUDED.verified_sources,
 last_updated = EXCLUDED.last_updated;`

	suspicious, verified := 1, 0
	if d.Credible {
		suspicious, verified = 0, 1
	}
	_, err := r.db.ExecContext(ctx, q, userID, d.Score, suspicious, verified, time.Now())
	return err
}

// Get returns the counters, zero-valued when no row exists yet
func (r *StatsRepository) Get(ctx context.Context, userID string) (*domain.Stats, error) {
	const q = `
SELECT user_id, total_scans, score_sum, suspicious_count, verified_sources, last_updated
FROM user_stats
WHERE user_id=$1 LIMIT 1;`

	var s domain.Stats
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&s.UserID, &s.TotalScans, &s.ScoreSum,
		&s.SuspiciousCount, &s.VerifiedSources, &s.LastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Stats{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
