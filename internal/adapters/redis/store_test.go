package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sautiflow/sauti/internal/adapters/redis"
	"github.com/sautiflow/sauti/pkg/domain"
	"github.com/sautiflow/sauti/pkg/ports"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newTestClient(t)
	ports.RunSessionStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_Keys(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:"))
	ctx := context.Background()

	sess := domain.NewSession("s1", "app-1", "254700111222", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, store.Upsert(ctx, sess))

	assert.True(t, mr.Exists("custom:session:s1"), "session value should live under the prefix")

	// Index entry scored by creation time.
	members, err := client.ZRange(ctx, "custom:app:app-1:sessions", 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, members)

	require.NoError(t, store.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("custom:session:s1"))
	members, err = client.ZRange(ctx, "custom:app:app-1:sessions", 0, -1).Result()
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestRedisStore_ExpiredEntriesPruned(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"s1", "s2"} {
		require.NoError(t, store.Upsert(ctx, domain.NewSession(id, "app-1", "254700111222", base)))
	}

	// Let one value expire; its index entry becomes stale.
	mr.FastForward(2 * time.Minute)
	require.NoError(t, store.Upsert(ctx, domain.NewSession("s3", "app-1", "254700111222", base)))

	sessions, err := store.ListByApplication(ctx, "app-1", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s3", sessions[0].SessionID)

	// Stale index entries were dropped during the listing.
	members, err := client.ZRange(ctx, "sauti:app:app-1:sessions", 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"s3"}, members)
}

func TestRedisStore_DeleteMissingIsNoop(t *testing.T) {
	_, client := newTestClient(t)
	store := redis.NewFromClient(client)
	assert.NoError(t, store.Delete(context.Background(), "never-stored"))
}
