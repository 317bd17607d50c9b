package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redflag/internal/model"
)

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	t.Parallel()

	store := NewMemorySessionStore(time.Hour)
	ctx := context.Background()

	session := model.NewSession("s1")
	session.APIKey = "secret"
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, "secret", got.APIKey)
	assert.Equal(t, model.PageIntake, got.Page)

	// Get hands out a copy; mutating it must not touch the stored session.
	got.APIKey = "changed"
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "secret", again.APIKey)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewMemorySessionStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, model.NewSession("s1")))
	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_UnknownID(t *testing.T) {
	t.Parallel()

	store := NewMemorySessionStore(time.Hour)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
