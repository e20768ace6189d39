package repository

import (
	"context"
	"fmt"

	"github.com/lonsystemskt/evento-card-gestor-92/internal/config"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/database"
	"go.uber.org/zap"
)

// Open builds the KeyValueStore selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (KeyValueStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn("Using in-memory store, data will not survive a restart")
		return NewMemoryStore(), nil
	case config.DriverSQLite, config.DriverPostgres, config.DriverMySQL:
		db, err := database.Connect(cfg, log)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, log); err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	case config.DriverRedis:
		return NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case config.DriverBolt:
		return NewBoltStore(cfg.BoltPath)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
