package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentoraid/internal/app/models"
)

func TestMemoryStoreSetGetClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	user := models.User{ID: "1", Email: "jane@school.edu", Name: "Jane", Role: models.RoleTeacher}

	require.NoError(t, store.Set(ctx, "abc", Session{User: user}))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, user, got.User)

	require.NoError(t, store.Clear(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Clear(ctx, "never-existed"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "short", Session{ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, store.Set(ctx, "forever", Session{}))

	_, err := store.Get(ctx, "short")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "a", Session{ExpiresAt: now.Add(-time.Second)}))
	require.NoError(t, store.Set(ctx, "b", Session{ExpiresAt: now.Add(time.Hour)}))

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	assert.ErrorIs(t, store.Set(ctx, "a", Session{}), context.Canceled)
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}
