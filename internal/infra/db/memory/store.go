package memory

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/credifyai/credify-api/internal/domain/analysis"
	"github.com/credifyai/credify-api/internal/domain/faults"
	"github.com/credifyai/credify-api/internal/domain/stats"
)

// Store is an in-memory implementation of the history, stats and faults
// repositories, used for development and tests. All methods hold the store
// lock for the whole operation, so Apply keeps the same
// no-lost-update guarantee the SQL upserts give.
type Store struct {
	mu      sync.RWMutex
	history map[string][]*analysis.Analysis
	stats   map[string]*stats.Stats
	faults  map[string][]*faults.Fault
	nextID  int64
}

func NewStore() *Store {
	return &Store{
		history: make(map[string][]*analysis.Analysis),
		stats:   make(map[string]*stats.Stats),
		faults:  make(map[string][]*faults.Fault),
	}
}

func (s *Store) Save(ctx context.Context, a *analysis.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *a
	// Newest first, matching the SQL repos' created_at DESC ordering.
	s.history[a.UserID] = append([]*analysis.Analysis{&cp}, s.history[a.UserID]...)
	return nil
}

func (s *Store) Get(ctx context.Context, user string, id analysis.AnalysisID) (*analysis.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.history[user] {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, analysis.ErrNotFound
}

func (s *Store) Latest(ctx context.Context, user string, limit int) ([]*analysis.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.history[user]
	if len(list) > limit {
		list = list[:limit]
	}
	out := make([]*analysis.Analysis, 0, len(list))
	for _, a := range list {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) Paginate(ctx context.Context, user string, page, pageSize int) (analysis.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.history[user]
	total := int64(len(list))

	start := (page - 1) * pageSize
	if start > len(list) {
		start = len(list)
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}

	out := make([]*analysis.Analysis, 0, end-start)
	for _, a := range list[start:end] {
		cp := *a
		out = append(out, &cp)
	}

	return analysis.PaginatedResult{
		Data:       out,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (s *Store) Apply(ctx context.Context, userID string, d stats.Delta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[userID]
	if !ok {
		st = &stats.Stats{UserID: userID}
		s.stats[userID] = st
	}
	st.TotalScans++
	st.ScoreSum += int64(d.Score)
	if d.Credible {
		st.VerifiedSources++
	} else {
		st.SuspiciousCount++
	}
	st.LastUpdated = time.Now()
	return nil
}

func (s *Store) GetStats(ctx context.Context, userID string) (*stats.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.stats[userID]; ok {
		cp := *st
		return &cp, nil
	}
	return &stats.Stats{UserID: userID}, nil
}

func (s *Store) SaveFault(ctx context.Context, f *faults.Fault) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	cp := *f
	cp.ID = s.nextID
	s.faults[f.UserID] = append([]*faults.Fault{&cp}, s.faults[f.UserID]...)
	return nil
}

func (s *Store) ListFaultsByUser(ctx context.Context, userID string, limit int) ([]*faults.Fault, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.faults[userID]
	if len(list) > limit {
		list = list[:limit]
	}
	out := make([]*faults.Fault, 0, len(list))
	for _, f := range list {
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

// StatsRepo and FaultsRepo expose the store under the domain ports; their
// method names (Get, Save) would otherwise clash with the history methods the
// Store itself implements.
func (s *Store) StatsRepo() stats.Repository   { return (*statsView)(s) }
func (s *Store) FaultsRepo() faults.Repository { return (*faultsView)(s) }

type statsView Store

func (v *statsView) Apply(ctx context.Context, userID string, d stats.Delta) error {
	return (*Store)(v).Apply(ctx, userID, d)
}
func (v *statsView) Get(ctx context.Context, userID string) (*stats.Stats, error) {
	return (*Store)(v).GetStats(ctx, userID)
}

type faultsView Store

func (v *faultsView) Save(ctx context.Context, f *faults.Fault) error {
	return (*Store)(v).SaveFault(ctx, f)
}
func (v *faultsView) ListByUser(ctx context.Context, userID string, limit int) ([]*faults.Fault, error) {
	return (*Store)(v).ListFaultsByUser(ctx, userID, limit)
}
