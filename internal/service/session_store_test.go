package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client, newTestLogger())
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Create(ctx, userID, "t1", time.Hour))
	require.NoError(t, store.Create(ctx, userID, "t2", time.Hour))
	other := uuid.New()
	require.NoError(t, store.Create(ctx, other, "t3", time.Hour))

	assert.True(t, mr.Exists("admin_session:"+userID.String()+":t1"))
	assert.Equal(t, time.Hour, mr.TTL("admin_session:"+userID.String()+":t1"))

	ok, err := store.Exists(ctx, userID, "t1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Revoke(ctx, userID, "t1"))
	ok, err = store.Exists(ctx, userID, "t1")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := store.RevokeAll(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err = store.Exists(ctx, other, "t3")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSessionStore_ExpiresWithTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client, newTestLogger())
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Create(ctx, userID, "t1", time.Minute))
	mr.FastForward(2 * time.Minute)

	ok, err := store.Exists(ctx, userID, "t1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_RevokeAllManySessions(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewSessionStore(client, newTestLogger())
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 250; i++ {
		require.NoError(t, store.Create(ctx, userID, fmt.Sprintf("t%d", i), time.Hour))
	}

	n, err := store.RevokeAll(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), n)

	keys, err := client.Keys(ctx, SessionKeyPrefix+userID.String()+":*").Result()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
