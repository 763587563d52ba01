package analysis

import "context"

// Repository port (interface for history persistence). Records are append-only;
// there is no mutation or deletion path.
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, user string, id AnalysisID) (*Analysis, error)
	Latest(ctx context.Context, user string, limit int) ([]*Analysis, error)
	Paginate(ctx context.Context, user string, page, pageSize int) (PaginatedResult, error)
}

// ModelClient port (interface for the hosted model endpoint). Implementations
// build the instruction prompt around the already-truncated text and return the
// raw textual completion.
type ModelClient interface {
	Analyze(ctx context.Context, text string) (string, error)
}

// RawArchive port (interface for archiving raw model output for audit).
type RawArchive interface {
	Archive(ctx context.Context, user string, id AnalysisID, raw string) (string, error)
}
