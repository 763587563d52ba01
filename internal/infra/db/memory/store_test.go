package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credifyai/credify-api/internal/domain/analysis"
	"github.com/credifyai/credify-api/internal/domain/stats"
)

func record(user, id string, created time.Time) *analysis.Analysis {
	return &analysis.Analysis{
		ID:        analysis.AnalysisID(id),
		UserID:    user,
		Text:      "claim",
		Score:     50,
		Verdict:   analysis.VerdictNotCredible,
		Category:  analysis.DefaultCategory,
		CreatedAt: created,
	}
}

func TestStoreHistory(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, record("u1", "a", base)))
	require.NoError(t, s.Save(ctx, record("u1", "b", base.Add(time.Minute))))
	require.NoError(t, s.Save(ctx, record("u2", "c", base)))

	t.Run("get by id scoped to user", func(t *testing.T) {
		got, err := s.Get(ctx, "u1", "a")
		require.NoError(t, err)
		assert.Equal(t, analysis.AnalysisID("a"), got.ID)

		_, err = s.Get(ctx, "u2", "a")
		assert.ErrorIs(t, err, analysis.ErrNotFound)
	})

	t.Run("latest is newest first", func(t *testing.T) {
		got, err := s.Latest(ctx, "u1", 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, analysis.AnalysisID("b"), got[0].ID)
		assert.Equal(t, analysis.AnalysisID("a"), got[1].ID)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		got, err := s.Get(ctx, "u1", "a")
		require.NoError(t, err)
		got.Score = 999

		again, err := s.Get(ctx, "u1", "a")
		require.NoError(t, err)
		assert.Equal(t, 50, again.Score)
	})
}

func TestStorePaginate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		require.NoError(t, s.Save(ctx, record("u1", id, base.Add(time.Duration(i)*time.Minute))))
	}

	page, err := s.Paginate(ctx, "u1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, analysis.AnalysisID("e"), page.Data[0].ID)

	last, err := s.Paginate(ctx, "u1", 3, 2)
	require.NoError(t, err)
	require.Len(t, last.Data, 1)
	assert.Equal(t, analysis.AnalysisID("a"), last.Data[0].ID)

	empty, err := s.Paginate(ctx, "u1", 9, 2)
	require.NoError(t, err)
	assert.Empty(t, empty.Data)
}

func TestStoreApplyConcurrent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.Apply(ctx, "u1", stats.Delta{Score: 10, Credible: i%2 == 0})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	st, err := s.GetStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(n), st.TotalScans)
	assert.Equal(t, int64(n*10), st.ScoreSum)
	assert.Equal(t, int64(n/2), st.VerifiedSources)
	assert.Equal(t, int64(n/2), st.SuspiciousCount)
}

func TestStoreStatsZeroValued(t *testing.T) {
	s := NewStore()

	st, err := s.GetStats(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh", st.UserID)
	assert.Equal(t, int64(0), st.TotalScans)
	assert.Equal(t, 0, st.AverageScore())
}
