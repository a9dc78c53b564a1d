package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "redemptions.db"), "redemptions")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnqueueAndDrainInOrder(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	for i, booking := range []string{"bk-1", "bk-2", "bk-3"} {
		require.NoError(t, store.Enqueue(Item{
			BookingID: booking,
			Data:      json.RawMessage(`{}`),
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		}))
	}

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "bk-1", items[0].BookingID, "oldest item drains first")
	assert.Equal(t, "bk-3", items[2].BookingID)
}

func TestGetBatchRespectsLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Enqueue(Item{
			BookingID: "bk",
			Data:      json.RawMessage(`{}`),
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		}))
	}

	items, err := store.GetBatch(2)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// GetBatch is a peek, not a pop.
	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 5, size)
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{BookingID: "bk-1", Data: json.RawMessage(`{}`)}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, store.Remove(items[0]))
	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestRequeueKeepsRetryCount(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{BookingID: "bk-1", Data: json.RawMessage(`{}`)}))
	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	item.Retries++
	require.NoError(t, store.Remove(item))
	require.NoError(t, store.Requeue(item))

	items, err = store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Retries)
	assert.Equal(t, "bk-1", items[0].BookingID)
}

func TestCleanup(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, store.Enqueue(Item{BookingID: "stale", Data: json.RawMessage(`{}`), Timestamp: old}))
	require.NoError(t, store.Enqueue(Item{BookingID: "fresh", Data: json.RawMessage(`{}`)}))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].BookingID)
}
