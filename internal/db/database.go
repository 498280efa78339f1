package db

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"

	"github.com/stampdeck/stampdeck-backend/config"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

var store kv.Store

// Initialize opens the key-value store backend selected by the configuration.
func Initialize(cfg *config.StoreConfig) error {
	logger.Info("Initializing key-value store", map[string]interface{}{
		"driver":    cfg.Driver,
		"namespace": cfg.Namespace,
	})

	var err error
	switch cfg.Driver {
	case "", "memory":
		store = kv.NewMemoryStore()
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err = kv.NewRedisStore(client, cfg.Namespace)
	case "postgres":
		store, err = kv.NewGormStore(postgres.Open(cfg.Postgres.DSN()))
	default:
		return fmt.Errorf("unknown store driver: %s", cfg.Driver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s store: %w", cfg.Driver, err)
	}

	logger.Info("Key-value store initialized", map[string]interface{}{
		"driver": cfg.Driver,
	})
	return nil
}

// Close closes the store.
func Close() error {
	if store == nil {
		return nil
	}
	return store.Close()
}

// GetStore returns the store instance.
func GetStore() kv.Store {
	return store
}
