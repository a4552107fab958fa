package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetSet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.Get(ctx, "users", "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "users", "alice", []byte(`{"name":"alice"}`)))

	value, err := store.Get(ctx, "users", "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"alice"}`), value)

	// Overwrite replaces the stored value.
	require.NoError(t, store.Set(ctx, "users", "alice", []byte(`{"name":"alice2"}`)))
	value, err = store.Get(ctx, "users", "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"alice2"}`), value)
}

func TestMemoryStoreCollectionsAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "users", "k", []byte("a")))

	_, err := store.Get(ctx, "stats", "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "users", "alice", []byte("x")))
	require.NoError(t, store.Delete(ctx, "users", "alice"))

	_, err := store.Get(ctx, "users", "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, "users", "ghost"))
}

func TestMemoryStoreList(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	empty, err := store.List(ctx, "users")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, store.Set(ctx, "users", "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "users", "b", []byte("2")))

	all, err := store.List(ctx, "users")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []byte("1"), all["a"])
	assert.Equal(t, []byte("2"), all["b"])
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	original := []byte("value")
	require.NoError(t, store.Set(ctx, "users", "k", original))
	original[0] = 'X'

	value, err := store.Get(ctx, "users", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)

	value[0] = 'Y'
	again, err := store.Get(ctx, "users", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}

func TestMemoryStoreSubscribe(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	events, cancel := store.Subscribe("users")
	defer cancel()

	require.NoError(t, store.Set(ctx, "users", "alice", []byte("v")))
	require.NoError(t, store.Set(ctx, "other", "bob", []byte("v")))
	require.NoError(t, store.Delete(ctx, "users", "alice"))

	ev := recvEvent(t, events)
	assert.Equal(t, EventSet, ev.Type)
	assert.Equal(t, "users", ev.Collection)
	assert.Equal(t, "alice", ev.Key)
	assert.Equal(t, []byte("v"), ev.Value)

	// The write to "other" must not show up here.
	ev = recvEvent(t, events)
	assert.Equal(t, EventDelete, ev.Type)
	assert.Equal(t, "alice", ev.Key)
}

func TestMemoryStoreSubscribeCancel(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	events, cancel := store.Subscribe("users")
	cancel()

	_, open := <-events
	assert.False(t, open)

	// Publishing after cancel must not panic.
	assert.NoError(t, store.Set(ctx, "users", "k", []byte("v")))
}

func TestMemoryStoreCloseEndsSubscriptions(t *testing.T) {
	store := NewMemoryStore()

	events, cancel := store.Subscribe("users")
	require.NoError(t, store.Close())

	_, open := <-events
	assert.False(t, open)

	// Cancel after close is a no-op.
	cancel()
}

func recvEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for storage event")
		return Event{}
	}
}
