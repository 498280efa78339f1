package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

func setupCardTest(t *testing.T) LoyaltyCardRepository {
	t.Helper()
	return NewLoyaltyCardRepository(kv.NewMemoryStore())
}

func TestLoyaltyCardRepository_GetOrCreate(t *testing.T) {
	repo := setupCardTest(t)

	first, err := repo.GetOrCreate("cust-1", "camp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Stamps)
	assert.False(t, first.UpdatedAt.IsZero())

	// Repeated calls return the same card, never a second one
	again, err := repo.GetOrCreate("cust-1", "camp-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// A different pair gets its own card
	other, err := repo.GetOrCreate("cust-1", "camp-2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	items, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestLoyaltyCardRepository_AddStamp(t *testing.T) {
	repo := setupCardTest(t)

	card, err := repo.GetOrCreate("cust-1", "camp-1")
	require.NoError(t, err)
	before := card.UpdatedAt

	require.NoError(t, repo.AddStamp(card.ID, 1))
	require.NoError(t, repo.AddStamp(card.ID, 3))

	found, err := repo.FindByID(card.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 4, found.Stamps)
	assert.False(t, found.UpdatedAt.Before(before))

	// No upper bound: stamping past any campaign requirement is allowed
	require.NoError(t, repo.AddStamp(card.ID, 100))
	found, _ = repo.FindByID(card.ID)
	assert.Equal(t, 104, found.Stamps)
}

func TestLoyaltyCardRepository_SetStamps(t *testing.T) {
	repo := setupCardTest(t)

	card, err := repo.GetOrCreate("cust-1", "camp-1")
	require.NoError(t, err)

	require.NoError(t, repo.SetStamps(card.ID, 7))

	found, err := repo.FindByID(card.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, found.Stamps)

	// Absent id is a silent no-op
	assert.NoError(t, repo.SetStamps("missing", 3))
}

func TestLoyaltyCardRepository_ByCustomer(t *testing.T) {
	repo := setupCardTest(t)

	_, err := repo.GetOrCreate("cust-1", "camp-1")
	require.NoError(t, err)
	_, err = repo.GetOrCreate("cust-1", "camp-2")
	require.NoError(t, err)
	_, err = repo.GetOrCreate("cust-2", "camp-1")
	require.NoError(t, err)

	cards, err := repo.ByCustomer("cust-1")
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	for _, c := range cards {
		assert.Equal(t, "cust-1", c.CustomerID)
	}
}

func TestLoyaltyCardRepository_RoundTrip(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := NewLoyaltyCardRepository(store)

	card, err := repo.GetOrCreate("cust-9", "camp-9")
	require.NoError(t, err)

	// A fresh repository over the same store sees the same record
	reread := NewLoyaltyCardRepository(store)
	items, err := reread.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, card.ID, items[0].ID)
	assert.Equal(t, card.CustomerID, items[0].CustomerID)
	assert.Equal(t, card.CampaignID, items[0].CampaignID)
	assert.Equal(t, card.Stamps, items[0].Stamps)
	assert.True(t, card.UpdatedAt.Equal(items[0].UpdatedAt))
}
