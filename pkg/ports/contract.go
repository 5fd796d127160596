package ports

import (
	"context"
	"testing"
	"time"

	"github.com/sautiflow/sauti/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract verifies that a SessionStore implementation
// adheres to the interface contract. Adapter test suites call this with
// their concrete store.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	sessionID := "contract-" + time.Now().Format("20060102150405")

	t.Run("Upsert and Get", func(t *testing.T) {
		sess := domain.NewSession(sessionID, "app-contract", "254700111222", base)
		sess.Status = domain.StatusActive
		sess.CurrentNodeID = "root"
		sess.Steps = []domain.SessionStep{
			{Kind: domain.StepStart, NodeID: "root", At: base},
			{Kind: domain.StepReject, NodeID: "root", Input: "7", At: base.Add(time.Second)},
		}

		require.NoError(t, store.Upsert(ctx, sess))

		loaded, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, sess.CurrentNodeID, loaded.CurrentNodeID)
		assert.Equal(t, sess.SubscriberID, loaded.SubscriberID)
		require.Len(t, loaded.Steps, 2)
		assert.Equal(t, domain.StepReject, loaded.Steps[1].Kind)
		assert.Equal(t, "7", loaded.Steps[1].Input)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		sess := domain.NewSession(sessionID, "app-contract", "254700111222", base)
		require.NoError(t, store.Upsert(ctx, sess))

		require.NoError(t, store.Delete(ctx, sessionID))

		_, err := store.Get(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Get after Delete should return ErrSessionNotFound")
	})

	t.Run("ListByApplication window", func(t *testing.T) {
		appID := "app-window-" + sessionID
		ids := []string{sessionID + "-w1", sessionID + "-w2", sessionID + "-w3"}
		for i, id := range ids {
			sess := domain.NewSession(id, appID, "254700333444", base.Add(time.Duration(i)*time.Hour))
			require.NoError(t, store.Upsert(ctx, sess))
		}
		defer func() {
			for _, id := range ids {
				_ = store.Delete(ctx, id)
			}
		}()

		all, err := store.ListByApplication(ctx, appID, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		// [base+1h, base+3h) keeps the middle and last sessions only.
		windowed, err := store.ListByApplication(ctx, appID, base.Add(time.Hour), base.Add(3*time.Hour))
		require.NoError(t, err)
		require.Len(t, windowed, 2)
		assert.Equal(t, ids[1], windowed[0].SessionID)
		assert.Equal(t, ids[2], windowed[1].SessionID)
	})

	t.Run("Upsert isolates caller mutations", func(t *testing.T) {
		id := sessionID + "-iso"
		sess := domain.NewSession(id, "app-contract", "254700111222", base)
		sess.Steps = []domain.SessionStep{{Kind: domain.StepStart, NodeID: "root", At: base}}
		require.NoError(t, store.Upsert(ctx, sess))
		defer func() { _ = store.Delete(ctx, id) }()

		sess.Steps[0].NodeID = "mutated"
		sess.CurrentNodeID = "mutated"

		loaded, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", loaded.Steps[0].NodeID, "stored snapshot must not alias caller memory")
	})
}
