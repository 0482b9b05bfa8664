package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
)

func newTestSQLStore(t *testing.T) (*SQLStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "venturecompass.db")
	s, err := OpenSQL(DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func backends(t *testing.T) map[string]Backend {
	sqlStore, _ := newTestSQLStore(t)
	return map[string]Backend{
		"memory": NewMemory(),
		"sqlite": sqlStore,
	}
}

func TestKVGetSet(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := b.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, b.Set(ctx, "ventureCompass_isPremium_u1", "true"))
			v, ok, err := b.Get(ctx, "ventureCompass_isPremium_u1")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "true", v)

			require.NoError(t, b.Set(ctx, "ventureCompass_isPremium_u1", "false"))
			v, _, _ = b.Get(ctx, "ventureCompass_isPremium_u1")
			assert.Equal(t, "false", v)
		})
	}
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			inc, ok := b.(Incrementer)
			require.True(t, ok)
			for want := int64(1); want <= 3; want++ {
				got, err := inc.Add(ctx, "counter", 1)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			require.NoError(t, b.Set(ctx, "counter", "10"))
			got, err := inc.Add(ctx, "counter", 1)
			require.NoError(t, err)
			assert.Equal(t, int64(11), got)
			v, _, _ := b.Get(ctx, "counter")
			assert.Equal(t, "11", v)

			got, err = inc.Add(ctx, "counter", -1)
			require.NoError(t, err)
			assert.Equal(t, int64(10), got)
		})
	}
}

func TestAddNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			inc := b.(Incrementer)
			got, err := inc.Add(ctx, "fresh", -1)
			require.NoError(t, err)
			assert.Equal(t, int64(0), got)

			_, err = inc.Add(ctx, "refund", 1)
			require.NoError(t, err)
			for range 3 {
				got, err = inc.Add(ctx, "refund", -1)
				require.NoError(t, err)
			}
			assert.Equal(t, int64(0), got)
			v, _, _ := b.Get(ctx, "refund")
			assert.Equal(t, "0", v)
		})
	}
}

func TestIdeaHistory(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				rep := ideaanalysis.Synthesize(ideaanalysis.IdeaSubmission{
					Title:       fmt.Sprintf("Idea %d", i),
					Description: "Project management tool",
					Industry:    "Technology",
				})
				require.NoError(t, b.SaveIdea(ctx, IdeaRecord{
					ID:        fmt.Sprintf("id-%d", i),
					UserID:    "u1",
					Title:     rep.Title,
					Industry:  rep.Industry,
					Template:  rep.Template,
					Score:     rep.Score,
					Report:    rep,
					CreatedAt: base.Add(time.Duration(i) * time.Minute),
				}))
			}
			require.NoError(t, b.SaveIdea(ctx, IdeaRecord{ID: "other", UserID: "u2", CreatedAt: base}))

			got, err := b.GetIdea(ctx, "id-1")
			require.NoError(t, err)
			assert.Equal(t, "Idea 1", got.Title)
			assert.Equal(t, 72, got.Score)
			assert.Equal(t, ideaanalysis.TemplateProjectManagement, got.Report.Template)
			assert.True(t, got.CreatedAt.Equal(base.Add(time.Minute)))

			_, err = b.GetIdea(ctx, "nope")
			assert.ErrorIs(t, err, ErrNotFound)

			list, err := b.ListIdeas(ctx, "u1", 0)
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, "id-2", list[0].ID)
			assert.Equal(t, "id-0", list[2].ID)

			list, err = b.ListIdeas(ctx, "u1", 2)
			require.NoError(t, err)
			assert.Len(t, list, 2)

			list, err = b.ListIdeas(ctx, "nobody", 0)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestSQLStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	s1, err := OpenSQL(DriverSQLite, path)
	require.NoError(t, err)
	_, err = s1.Add(ctx, "ventureCompass_ideasGenerated_u1", 1)
	require.NoError(t, err)
	require.NoError(t, s1.SaveIdea(ctx, IdeaRecord{ID: "keep", UserID: "u1", Title: "Kept", CreatedAt: time.Now()}))
	require.NoError(t, s1.Close())

	s2, err := OpenSQL(DriverSQLite, path)
	require.NoError(t, err)
	defer s2.Close()
	v, ok, err := s2.Get(ctx, "ventureCompass_ideasGenerated_u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	rec, err := s2.GetIdea(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, "Kept", rec.Title)
}

func TestGetIdeaRejectsCorruptTimestamp(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSQLStore(t)
	require.NoError(t, s.SaveIdea(ctx, IdeaRecord{ID: "bad", UserID: "u1", Title: "Broken", CreatedAt: time.Now()}))
	_, err := s.db.ExecContext(ctx, `UPDATE ideas SET created_at = 'yesterday-ish' WHERE id = 'bad'`)
	require.NoError(t, err)

	_, err = s.GetIdea(ctx, "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at")

	_, err = s.ListIdeas(ctx, "u1", 0)
	assert.Error(t, err)
}

func TestOpenSQLRejectsUnknownDriver(t *testing.T) {
	_, err := OpenSQL("oracle", "x")
	assert.Error(t, err)
}
