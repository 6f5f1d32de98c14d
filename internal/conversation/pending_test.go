package conversation

import (
	"testing"
	"time"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/hugohenrick/pedidozap/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingStoreConfirmationLifecycle(t *testing.T) {
	store := NewPendingStore()
	item := order.CandidateItem{Name: "bolo", Quantity: 2}
	snapshot := []inventory.Item{{ID: "item-1", Name: "Bolo de Chocolate"}}

	pc := store.PutConfirmation("biz-1", "chat-1", item, snapshot)
	require.NotEmpty(t, pc.ID)

	found := store.FindConfirmationByChat("chat-1")
	require.NotNil(t, found)
	assert.Equal(t, pc.ID, found.ID)
	assert.Equal(t, snapshot, found.InventorySnapshot)

	assert.Nil(t, store.FindConfirmationByChat("chat-2"))

	store.DeleteConfirmation(pc.ID)
	assert.Nil(t, store.FindConfirmationByChat("chat-1"))
}

func TestPendingStoreExpiresDialogsLazily(t *testing.T) {
	store := NewPendingStore()

	pc := store.PutConfirmation("biz-1", "chat-1", order.CandidateItem{Name: "bolo"}, nil)
	pc.CreatedAt = time.Now().Add(-pendingTTL - time.Minute)

	assert.Nil(t, store.FindConfirmationByChat("chat-1"))
}

func TestPendingStoreDeduplicatesSameChatAndItem(t *testing.T) {
	store := NewPendingStore()
	item := order.CandidateItem{Name: "bolo", Quantity: 1}

	first := store.PutConfirmation("biz-1", "chat-1", item, nil)
	second := store.PutConfirmation("biz-1", "chat-1", item, nil)

	found := store.FindConfirmationByChat("chat-1")
	require.NotNil(t, found)
	assert.Equal(t, second.ID, found.ID)
	assert.NotEqual(t, first.ID, found.ID)
}

func TestPendingStoreDetailsLifecycle(t *testing.T) {
	store := NewPendingStore()
	item := order.CandidateItem{Name: "jarra nova", Quantity: 1}

	pd := store.PutDetails("biz-1", "chat-1", "jarra nova", item)

	found := store.FindDetailsByChat("chat-1")
	require.NotNil(t, found)
	assert.Equal(t, pd.ID, found.ID)
	assert.Equal(t, "jarra nova", found.NewItemName)

	store.DeleteDetails(pd.ID)
	assert.Nil(t, store.FindDetailsByChat("chat-1"))
}

func TestSweepRemovesExpiredDialogs(t *testing.T) {
	store := NewPendingStore()

	pc := store.PutConfirmation("biz-1", "chat-1", order.CandidateItem{Name: "bolo"}, nil)
	pd := store.PutDetails("biz-1", "chat-2", "jarra", order.CandidateItem{Name: "jarra"})
	store.PutConfirmation("biz-1", "chat-3", order.CandidateItem{Name: "suco"}, nil)

	pc.CreatedAt = time.Now().Add(-pendingTTL - time.Minute)
	pd.CreatedAt = time.Now().Add(-pendingTTL - time.Minute)

	removed := store.Sweep()

	assert.Equal(t, 2, removed)
	assert.NotNil(t, store.FindConfirmationByChat("chat-3"))
}
