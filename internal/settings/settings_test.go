package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuflow/internal/storage/memory"
)

func newStore() *Store {
	return NewStore(memory.NewBackend().Settings())
}

func TestGet_AbsentReturnsZero(t *testing.T) {
	store := newStore()

	prefs, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, prefs)
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore()

	saved := Preferences{
		Search:      "invoice",
		SearchField: "title",
		StatusFacet: "in_progress",
		PageSize:    25,
		Theme:       "dark",
	}
	require.NoError(t, store.Put(ctx, "u1", saved))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	// Preferences are per user.
	other, err := store.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, other)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := newStore()

	require.NoError(t, store.Put(ctx, "u1", Preferences{Theme: "dark"}))
	require.NoError(t, store.Reset(ctx, "u1"))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, got)

	// Resetting again is a no-op.
	require.NoError(t, store.Reset(ctx, "u1"))
}

func TestGet_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewBackend().Settings()
	require.NoError(t, kv.Put(ctx, "u1", []byte("not json")))

	store := NewStore(kv)
	_, err := store.Get(ctx, "u1")
	assert.Error(t, err)
}
