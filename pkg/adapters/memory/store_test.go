package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sautiflow/sauti/pkg/adapters/memory"
	"github.com/sautiflow/sauti/pkg/domain"
	"github.com/sautiflow/sauti/pkg/ports"
)

func testTime() time.Time {
	return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
}

func TestSessionStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.NewSessionStore())
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := domain.NewSession("shared", "app-1", "254700111222", testTime())
			sess.CurrentNodeID = "root"
			_ = store.Upsert(ctx, sess)
			_, _ = store.Get(ctx, "shared")
			_, _ = store.ListByApplication(ctx, "app-1", time.Time{}, time.Time{})
		}()
	}
	wg.Wait()

	loaded, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, "root", loaded.CurrentNodeID)
}

func TestGraphStore(t *testing.T) {
	store := memory.NewGraphStore()
	ctx := context.Background()

	t.Run("Get missing", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrGraphNotFound)
	})

	t.Run("Save and Get return isolated copies", func(t *testing.T) {
		g := domain.NewGraph("app-1")
		require.NoError(t, store.Save(ctx, g))

		g.Root().Prompt = "mutated after save"

		loaded, err := store.Get(ctx, "app-1")
		require.NoError(t, err)
		assert.NotEqual(t, "mutated after save", loaded.Root().Prompt)

		loaded.Root().Prompt = "mutated after load"
		again, err := store.Get(ctx, "app-1")
		require.NoError(t, err)
		assert.NotEqual(t, "mutated after load", again.Root().Prompt)
	})

	t.Run("List and Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewGraph("app-2")))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"app-1", "app-2"}, ids)

		require.NoError(t, store.Delete(ctx, "app-2"))
		ids, err = store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"app-1"}, ids)
	})
}
