package faults

import "context"

// Repository defines persistence for pipeline faults
type Repository interface {
	Save(ctx context.Context, f *Fault) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Fault, error)
}
