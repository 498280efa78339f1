package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

func TestMigrateStore_NormalizesLegacyCampaigns(t *testing.T) {
	s := kv.NewMemoryStore()
	require.NoError(t, s.Set(repository.LegacyKeyCampaigns,
		`[{"id":"c1","name":"Punch Card","business_id":"b1"},{"name":""}]`))

	require.NoError(t, MigrateStore(s))

	campaigns, err := repository.NewCampaignRepository(s).List()
	require.NoError(t, err)
	require.Len(t, campaigns, 2)

	assert.Equal(t, "c1", campaigns[0].ID)
	assert.Equal(t, "Punch Card", campaigns[0].Name)
	assert.Equal(t, "punch-card", campaigns[0].Slug)
	assert.Equal(t, 10, campaigns[0].StampsRequired)
	assert.True(t, campaigns[0].Active)

	// Record missing every field gets defaults and a fresh id
	assert.NotEmpty(t, campaigns[1].ID)
	assert.Equal(t, "Untitled Campaign", campaigns[1].Name)
	assert.Equal(t, "untitled-campaign", campaigns[1].Slug)

	// Legacy key is gone after the carry-over
	_, ok, err := s.Get(repository.LegacyKeyCampaigns)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMigrateStore_LegacyCampaignTimestamps(t *testing.T) {
	s := kv.NewMemoryStore()
	require.NoError(t, s.Set(repository.LegacyKeyCampaigns,
		`[{"id":"c1","name":"Dated","created_at":"2023-04-01T09:30:00Z"},{"id":"c2","name":"Undated"}]`))

	before := time.Now()
	require.NoError(t, MigrateStore(s))

	campaigns, err := repository.NewCampaignRepository(s).List()
	require.NoError(t, err)
	require.Len(t, campaigns, 2)

	// A parseable legacy timestamp is carried over
	want := time.Date(2023, 4, 1, 9, 30, 0, 0, time.UTC)
	assert.True(t, campaigns[0].CreatedAt.Equal(want))

	// A record without one gets the migration time, never zero
	assert.False(t, campaigns[1].CreatedAt.IsZero())
	assert.False(t, campaigns[1].CreatedAt.Before(before))
}

func TestMigrateStore_NeverResurrectsOverCanonicalData(t *testing.T) {
	s := kv.NewMemoryStore()
	require.NoError(t, s.Set(repository.KeyCampaigns,
		`[{"id":"current","name":"Current","slug":"current","stamps_required":5,"active":true}]`))
	require.NoError(t, s.Set(repository.LegacyKeyCampaigns,
		`[{"id":"stale","name":"Stale"}]`))

	require.NoError(t, MigrateStore(s))

	campaigns, err := repository.NewCampaignRepository(s).List()
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "current", campaigns[0].ID)

	_, ok, err := s.Get(repository.LegacyKeyCampaigns)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMigrateStore_CorruptLegacyPayload(t *testing.T) {
	s := kv.NewMemoryStore()
	require.NoError(t, s.Set(repository.LegacyKeyCampaigns, "{not json"))

	require.NoError(t, MigrateStore(s))

	campaigns, err := repository.NewCampaignRepository(s).List()
	require.NoError(t, err)
	assert.Empty(t, campaigns)

	// Corrupt or not, the legacy key is still cleaned up
	_, ok, err := s.Get(repository.LegacyKeyCampaigns)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMigrateStore_Idempotent(t *testing.T) {
	s := kv.NewMemoryStore()
	require.NoError(t, s.Set(repository.LegacyKeyCampaigns, `[{"id":"c1","name":"Punch Card"}]`))

	require.NoError(t, MigrateStore(s))
	require.NoError(t, MigrateStore(s))

	campaigns, err := repository.NewCampaignRepository(s).List()
	require.NoError(t, err)
	assert.Len(t, campaigns, 1)
}
