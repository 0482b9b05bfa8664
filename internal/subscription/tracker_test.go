package subscription

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1234bibhash/venture-idea-compass/internal/store"
)

// plainKV hides Memory's Add so the mutex fallback path is exercised.
type plainKV struct{ inner *store.Memory }

func (p plainKV) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, key)
}

func (p plainKV) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, key, value)
}

func TestFreeTierQuota(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(store.NewMemory(), 0)

	st, err := tr.Status(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Status{UserID: "u1", IdeasLimit: 2, RemainingIdeas: 2, CanGenerateMore: true}, st)

	st, err = tr.Reserve(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, st.IdeasGenerated)
	assert.Equal(t, 1, st.RemainingIdeas)
	st, err = tr.Reserve(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.RemainingIdeas)
	assert.False(t, st.CanGenerateMore)

	st, err = tr.Reserve(ctx, "u1")
	require.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 2, st.IdeasLimit)

	// A refused reservation leaves the counter at the limit.
	st, _ = tr.Status(ctx, "u1")
	assert.Equal(t, 2, st.IdeasGenerated)
	assert.Equal(t, 0, st.RemainingIdeas)
}

func TestReleaseReturnsSlot(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(store.NewMemory(), 1)

	_, err := tr.Reserve(ctx, "u1")
	require.NoError(t, err)
	_, err = tr.Reserve(ctx, "u1")
	require.ErrorIs(t, err, ErrQuotaExceeded)

	require.NoError(t, tr.Release(ctx, "u1"))
	st, err := tr.Reserve(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, st.IdeasGenerated)

	// Releasing more than was reserved bottoms out at zero.
	require.NoError(t, tr.Release(ctx, "u1"))
	require.NoError(t, tr.Release(ctx, "u1"))
	st, _ = tr.Status(ctx, "u1")
	assert.Equal(t, 0, st.IdeasGenerated)
}

func TestPremiumIsUnlimited(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	tr := NewTracker(kv, 2)

	require.NoError(t, tr.SetPremium(ctx, "u1", true))
	v, _, _ := kv.Get(ctx, PremiumKey("u1"))
	assert.Equal(t, "true", v)

	for i := 0; i < 5; i++ {
		_, err := tr.Reserve(ctx, "u1")
		require.NoError(t, err)
	}
	st, err := tr.Status(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, st.IsPremium)
	assert.Equal(t, Unlimited, st.IdeasLimit)
	assert.Equal(t, Unlimited, st.RemainingIdeas)
	assert.True(t, st.CanGenerateMore)
	assert.Equal(t, 5, st.IdeasGenerated)

	require.NoError(t, tr.SetPremium(ctx, "u1", false))
	st, _ = tr.Status(ctx, "u1")
	assert.False(t, st.IsPremium)
	assert.False(t, st.CanGenerateMore)
	_, err = tr.Reserve(ctx, "u1")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestAnonymousUsersAreNotTracked(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	tr := NewTracker(kv, 2)
	for range 5 {
		st, err := tr.Reserve(ctx, "  ")
		require.NoError(t, err)
		assert.True(t, st.CanGenerateMore)
	}
	require.NoError(t, tr.Release(ctx, ""))
	_, ok, _ := kv.Get(ctx, IdeasGeneratedKey(""))
	assert.False(t, ok)
	assert.Error(t, tr.SetPremium(ctx, "", true))
}

func TestGarbageCounterReadsAsZero(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, IdeasGeneratedKey("u1"), "lots"))
	st, err := NewTracker(kv, 2).Status(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.IdeasGenerated)
}

func TestConcurrentReservationsHonourLimit(t *testing.T) {
	ctx := context.Background()
	for name, kv := range map[string]store.KV{
		"incrementer": store.NewMemory(),
		"fallback":    plainKV{inner: store.NewMemory()},
	} {
		t.Run(name, func(t *testing.T) {
			tr := NewTracker(kv, 3)
			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				accepted int
				refused  int
			)
			for range 40 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := tr.Reserve(ctx, "u1")
					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						accepted++
					} else if errors.Is(err, ErrQuotaExceeded) {
						refused++
					}
				}()
			}
			wg.Wait()
			assert.Equal(t, 3, accepted)
			assert.Equal(t, 37, refused)
			v, _, _ := kv.Get(ctx, IdeasGeneratedKey("u1"))
			assert.Equal(t, "3", v)
		})
	}
}
