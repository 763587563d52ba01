package stats

import "context"

// Repository port for the per-user counters.
//
// Apply must be a single atomic increment (upsert) so that two concurrent
// submissions for the same user never read the same prior counters and lose an
// update. A missing row is created rather than erroring.
type Repository interface {
	Get(ctx context.Context, userID string) (*Stats, error)
	Apply(ctx context.Context, userID string, d Delta) error
}
