package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/credifyai/credify-api/internal/application"
	domain "github.com/credifyai/credify-api/internal/domain/analysis"
	"github.com/credifyai/credify-api/internal/domain/faults"
	"github.com/credifyai/credify-api/internal/domain/stats"
)

// Service implements the submission pipeline use-cases.
// Service is designed to be used concurrently and is thread-safe as long as its
// collaborators are.
type Service struct {
	Repo    domain.Repository
	Stats   stats.Repository
	Model   domain.ModelClient
	Faults  faults.Repository  // optional; nil disables the audit log
	Archive domain.RawArchive  // optional; nil disables raw-response archiving
	Clock   application.Clock
	Logger  *zap.Logger
}

// Command for one analysis submission
type SubmitCommand struct {
	UserID string
	Text   string
}

// Submit runs the full pipeline: truncate, call the model, interpret the raw
// completion, derive the final verdict, append the history record, and fold the
// result into the user's running counters.
//
// The history append and the stats update are independent writes with no
// cross-write atomicity; a failure after the model call is tagged with its
// stage so callers can tell the difference.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (*domain.Analysis, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, domain.ErrEmptyText
	}
	if strings.TrimSpace(cmd.UserID) == "" {
		return nil, domain.ErrMissingUser
	}
	if len([]rune(cmd.Text)) > domain.MaxInputChars {
		return nil, domain.ErrTextTooLong
	}

	safeText := domain.TruncateForModel(cmd.Text)

	raw, err := s.Model.Analyze(ctx, safeText)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageModel, Err: err}
	}

	interp := domain.Interpret(raw)
	if !interp.Parsed {
		// Downgraded to the fallback record, never surfaced as an error.
		s.Logger.Warn("model response was not parseable",
			zap.String("user", cmd.UserID),
			zap.Int("raw_len", len(raw)))
	}

	rec := &domain.Analysis{
		ID:        domain.AnalysisID(uuid.New().String()),
		UserID:    cmd.UserID,
		Text:      safeText,
		Summary:   interp.Summary,
		Reasoning: interp.Reasoning,
		Score:     interp.Score,
		Verdict:   interp.Verdict,
		Category:  interp.Category,
		CreatedAt: s.Clock.Now(),
	}

	if err := s.Repo.Save(ctx, rec); err != nil {
		s.recordFault(cmd.UserID, rec.ID, domain.StageHistory, err)
		return nil, &domain.StageError{Stage: domain.StageHistory, Err: err}
	}

	delta := stats.Delta{Score: rec.Score, Credible: rec.Verdict == domain.VerdictCredible}
	if err := s.Stats.Apply(ctx, cmd.UserID, delta); err != nil {
		s.recordFault(cmd.UserID, rec.ID, domain.StageStats, err)
		return nil, &domain.StageError{Stage: domain.StageStats, Err: err}
	}

	if s.Archive != nil {
		if url, err := s.Archive.Archive(ctx, cmd.UserID, rec.ID, raw); err != nil {
			// Archiving is best-effort; the submission already succeeded.
			s.Logger.Warn("raw response archive failed", zap.Error(err), zap.String("id", string(rec.ID)))
		} else {
			s.Logger.Debug("raw response archived", zap.String("url", url))
		}
	}

	return rec, nil
}

// Latest returns the user's N most recent records.
func (s *Service) Latest(ctx context.Context, user string, limit int) ([]*domain.Analysis, error) {
	return s.Repo.Latest(ctx, user, limit)
}

// History returns one page of the user's records.
func (s *Service) History(ctx context.Context, user string, page, pageSize int) (domain.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, user, page, pageSize)
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, user string, id domain.AnalysisID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, user, id)
}

// UserStats returns the user's counters, zero-valued for fresh users.
func (s *Service) UserStats(ctx context.Context, user string) (*stats.Stats, error) {
	return s.Stats.Get(ctx, user)
}

// recordFault writes an audit entry for a failed pipeline stage. Detached from
// the request context so a cancelled request still leaves a trail.
func (s *Service) recordFault(user string, id domain.AnalysisID, stage domain.Stage, cause error) {
	if s.Faults == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	details, _ := json.Marshal(map[string]string{"error": cause.Error()})
	f := &faults.Fault{
		UserID:      user,
		AnalysisID:  string(id),
		Stage:       string(stage),
		Message:     cause.Error(),
		DetailsJSON: string(details),
		CreatedAt:   s.Clock.Now(),
	}
	if err := s.Faults.Save(ctx, f); err != nil {
		s.Logger.Error("failed to record pipeline fault", zap.Error(err), zap.String("stage", string(stage)))
	}
}
