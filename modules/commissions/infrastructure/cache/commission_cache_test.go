package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexdi/studio/modules/commissions/domain/aggregates/commission"
	"github.com/plexdi/studio/modules/commissions/infrastructure/cache"
)

func seeded(t *testing.T, ids ...string) (*cache.CommissionCache, uint64) {
	t.Helper()
	items := make([]commission.Commission, 0, len(ids))
	for _, id := range ids {
		items = append(items, commission.New("Ada", "a@x.com", commission.KindBanner, commission.WithID(id)))
	}
	c := cache.New()
	revision := c.ReplaceAll(items)
	return c, revision
}

func TestCommissionCache_ReplaceAllRebuildsWholesale(t *testing.T) {
	t.Parallel()

	c, revision := seeded(t, "1", "2", "3")
	assert.Equal(t, 3, c.Len())

	next := c.ReplaceAll([]commission.Commission{
		commission.New("Bea", "b@x.com", commission.KindLogo, commission.WithID("9")),
	})
	assert.Greater(t, next, revision)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("1")
	assert.False(t, ok)
	_, ok = c.Get("9")
	assert.True(t, ok)
}

func TestCommissionCache_SetStatusReturnsPrevious(t *testing.T) {
	t.Parallel()

	c, revision := seeded(t, "1")
	previous, next, err := c.SetStatus(revision, "1", commission.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, commission.StatusQueued, previous)
	assert.Greater(t, next, revision)

	got, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, commission.StatusInProgress, got.Status())
}

func TestCommissionCache_StaleRevisionRejected(t *testing.T) {
	t.Parallel()

	c, revision := seeded(t, "1", "2")
	_, _, err := c.SetStatus(revision, "1", commission.StatusCompleted)
	require.NoError(t, err)

	// Second writer still holds the old revision.
	_, _, err = c.SetStatus(revision, "2", commission.StatusCompleted)
	assert.ErrorIs(t, err, cache.ErrRevisionMismatch)

	_, _, _, err = c.Remove(revision, "2")
	assert.ErrorIs(t, err, cache.ErrRevisionMismatch)
}

func TestCommissionCache_RemoveAndReinsertKeepsPosition(t *testing.T) {
	t.Parallel()

	c, revision := seeded(t, "1", "2", "3")
	removed, position, next, err := c.Remove(revision, "2")
	require.NoError(t, err)
	assert.Equal(t, 1, position)
	assert.Equal(t, 2, c.Len())

	_ = next
	c.Reinsert(removed, position)
	items, _ := c.All()
	require.Len(t, items, 3)
	assert.Equal(t, "2", items[1].ID())
}

func TestCommissionCache_OptimisticCreateLifecycle(t *testing.T) {
	t.Parallel()

	c, revision := seeded(t, "1")
	optimistic := commission.New("Ada", "a@x.com", commission.KindBanner)
	require.True(t, optimistic.IsOptimistic())

	_, err := c.InsertOptimistic(revision, optimistic)
	require.NoError(t, err)

	items, _ := c.All()
	require.Len(t, items, 2)
	assert.Equal(t, optimistic.ID(), items[0].ID(), "optimistic record goes to the head")
	assert.Equal(t, commission.StatusQueued, items[0].Status())

	confirmed := commission.New("Ada", "a@x.com", commission.KindBanner, commission.WithID("42"))
	_, err = c.Confirm(optimistic.ID(), confirmed)
	require.NoError(t, err)

	items, _ = c.All()
	assert.Equal(t, "42", items[0].ID())
	assert.False(t, items[0].IsOptimistic())
}

func TestCommissionCache_DiscardRemovesOptimisticRecord(t *testing.T) {
	t.Parallel()

	c, revision := seeded(t)
	optimistic := commission.New("Ada", "a@x.com", commission.KindBanner)
	_, err := c.InsertOptimistic(revision, optimistic)
	require.NoError(t, err)

	_, err = c.Discard(optimistic.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())

	_, err = c.Discard(optimistic.ID())
	assert.ErrorIs(t, err, cache.ErrNotCached)
}
