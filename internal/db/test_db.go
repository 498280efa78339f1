package db

import (
	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

// SetupTestStore creates an empty in-memory store for testing.
func SetupTestStore() *kv.MemoryStore {
	return kv.NewMemoryStore()
}

// SetupSeededTestStore creates an in-memory store with migrations run and
// demo data seeded.
func SetupSeededTestStore() (*kv.MemoryStore, error) {
	s := kv.NewMemoryStore()
	if err := MigrateStore(s); err != nil {
		return nil, err
	}
	if err := SeedStore(s); err != nil {
		return nil, err
	}
	return s, nil
}
