package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

func TestReferralRepository_EnsureForUser_Idempotent(t *testing.T) {
	repo := NewReferralRepository(kv.NewMemoryStore())

	first, err := repo.EnsureForUser("demo-business-admin")
	require.NoError(t, err)
	assert.Equal(t, "REF-DEMO-B", first.Code)
	assert.Equal(t, 0, first.ReferredCount)

	second, err := repo.EnsureForUser("demo-business-admin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Code, second.Code)

	items, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestReferralRepository_CodeIsDeterministicAcrossStores(t *testing.T) {
	// Two independent stores hand out the same code for the same owner:
	// the code depends only on the owner id
	a, err := NewReferralRepository(kv.NewMemoryStore()).EnsureForUser("owner-abc123")
	require.NoError(t, err)
	b, err := NewReferralRepository(kv.NewMemoryStore()).EnsureForUser("owner-abc123")
	require.NoError(t, err)

	assert.Equal(t, a.Code, b.Code)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestReferralRepository_Increment(t *testing.T) {
	repo := NewReferralRepository(kv.NewMemoryStore())

	ref, err := repo.EnsureForUser("owner-1")
	require.NoError(t, err)

	require.NoError(t, repo.Increment(ref.ID, 1))
	require.NoError(t, repo.Increment(ref.ID, 2))

	found, err := repo.ByOwner("owner-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 3, found.ReferredCount)

	// Unknown id is a no-op
	require.NoError(t, repo.Increment("missing", 1))
}
