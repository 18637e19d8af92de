package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

func TestInteractionStore_AppendAssignsIDAndTimestamp(t *testing.T) {
	store := NewInteractionStore()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	store.now = func() time.Time { return fixed }

	first := &domain.InteractionRecord{Username: "ana", Question: "q1"}
	second := &domain.InteractionRecord{Username: "bia", Question: "q2"}
	require.NoError(t, store.Append(context.Background(), first))
	require.NoError(t, store.Append(context.Background(), second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, fixed.UTC(), first.Timestamp)
	assert.Equal(t, time.UTC, first.Timestamp.Location())
}

func TestInteractionStore_KeepsGivenTimestamp(t *testing.T) {
	store := NewInteractionStore()
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	rec := &domain.InteractionRecord{Question: "q", Timestamp: ts}
	require.NoError(t, store.Append(context.Background(), rec))

	assert.Equal(t, ts, rec.Timestamp)
}

func TestInteractionStore_Ordering(t *testing.T) {
	store := NewInteractionStore()
	ctx := context.Background()
	for _, q := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(ctx, &domain.InteractionRecord{Question: q}))
	}

	recent, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Question)
	assert.Equal(t, "b", recent[1].Question)

	all, err := store.ExportAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Question)
	assert.Equal(t, "c", all[2].Question)

	none, err := store.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	more, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, more, 3)
}

func TestInteractionStore_CancelledContext(t *testing.T) {
	store := NewInteractionStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Append(ctx, &domain.InteractionRecord{Question: "q"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, store.Len())
}

func TestInteractionStore_ConcurrentAppends(t *testing.T) {
	store := NewInteractionStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Append(context.Background(), &domain.InteractionRecord{Question: "q"})
		}()
	}
	wg.Wait()

	all, err := store.ExportAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 100)
	for i, rec := range all {
		assert.Equal(t, int64(i+1), rec.ID)
	}
}
