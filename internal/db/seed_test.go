package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/util"
)

func TestSeedStore_PopulatesDemoData(t *testing.T) {
	s := kv.NewMemoryStore()
	require.NoError(t, SeedStore(s))

	users, err := repository.NewUserRepository(s).List()
	require.NoError(t, err)
	require.Len(t, users, 3)

	businesses, err := repository.NewBusinessRepository(s).List()
	require.NoError(t, err)
	require.Len(t, businesses, 1)
	assert.Equal(t, "Demo Coffee Shop", businesses[0].Name)
	assert.Equal(t, "demo-coffee-shop", businesses[0].Slug)
	assert.Equal(t, "demo-business-admin", businesses[0].OwnerID)

	campaigns, err := repository.NewCampaignRepository(s).List()
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "Coffee Lovers", campaigns[0].Name)
	assert.Equal(t, "coffee-lovers", campaigns[0].Slug)
	assert.Equal(t, businesses[0].ID, campaigns[0].BusinessID)
	assert.Equal(t, 10, campaigns[0].StampsRequired)

	raw, ok, err := s.Get(repository.KeyInitialized)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", raw)
}

func TestSeedStore_DemoCredentials(t *testing.T) {
	s := kv.NewMemoryStore()
	require.NoError(t, SeedStore(s))

	userRepo := repository.NewUserRepository(s)
	admin, err := userRepo.FindByEmail("business@demo.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "demo-business-admin", admin.ID)
	assert.True(t, util.VerifyPassword(admin.PasswordHash, "demo123"))
}

func TestSeedStore_RunsOnce(t *testing.T) {
	s := kv.NewMemoryStore()
	require.NoError(t, SeedStore(s))
	require.NoError(t, SeedStore(s))

	businesses, err := repository.NewBusinessRepository(s).List()
	require.NoError(t, err)
	assert.Len(t, businesses, 1)

	campaigns, err := repository.NewCampaignRepository(s).List()
	require.NoError(t, err)
	assert.Len(t, campaigns, 1)
}

func TestSeedStore_FlagGatesReseed(t *testing.T) {
	s := kv.NewMemoryStore()
	require.NoError(t, SeedStore(s))

	// Emptying collections alone never retriggers seeding
	require.NoError(t, s.Delete(repository.KeyBusinesses))
	require.NoError(t, s.Delete(repository.KeyCampaigns))
	require.NoError(t, SeedStore(s))

	businesses, err := repository.NewBusinessRepository(s).List()
	require.NoError(t, err)
	assert.Empty(t, businesses)

	// Clearing the flag too makes the next run seed again
	require.NoError(t, s.Delete(repository.KeyInitialized))
	require.NoError(t, s.Delete(repository.KeyUsers))
	require.NoError(t, SeedStore(s))

	businesses, err = repository.NewBusinessRepository(s).List()
	require.NoError(t, err)
	assert.Len(t, businesses, 1)
}

func TestSetupSeededTestStore(t *testing.T) {
	s, err := SetupSeededTestStore()
	require.NoError(t, err)

	campaigns, err := repository.NewCampaignRepository(s).List()
	require.NoError(t, err)
	assert.Len(t, campaigns, 1)
}
