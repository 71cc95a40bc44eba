package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got, "missing session reads as nil, not an error")

	sess := Session{Token: "tok", Role: "USER", Email: "a@example.com", DisplayName: "A"}
	require.NoError(t, store.Set(ctx, "sid-1", sess))

	got, err = store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sess, *got)
}

func TestMemoryStoreSetReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "sid-1", Session{Token: "old", Role: "USER"}))
	require.NoError(t, store.Set(ctx, "sid-1", Session{Token: "new", Role: "VENDOR"}))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new", got.Token)
	assert.Equal(t, "VENDOR", got.Role)

	ids, err := store.IDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 1, "at most one session per id")
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "sid-1", Session{Token: "tok"}))
	require.NoError(t, store.Clear(ctx, "sid-1"))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, store.Clear(ctx, "sid-1"), "clearing an absent id is a no-op")
}

func TestUserBlobFieldNames(t *testing.T) {
	sess := Session{Token: "tok", Role: "ADMIN", Email: "ops@example.com", DisplayName: "Ops"}

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(sess.UserBlob()), &decoded))

	// These names are read directly by the rest of the application and
	// must not drift.
	assert.Equal(t, "tok", decoded["token"])
	assert.Equal(t, "ADMIN", decoded["userRole"])
	assert.Equal(t, "ops@example.com", decoded["userEmail"])
	assert.Equal(t, "Ops", decoded["username"])
}
