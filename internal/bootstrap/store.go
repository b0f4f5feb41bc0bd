package bootstrap

import (
	"context"
	"fmt"

	"weather-lookup/internal/config"
	"weather-lookup/internal/db"
	"weather-lookup/internal/logger"
	"weather-lookup/internal/storage"
)

// OpenStore connects the key-value backend selected by STORE_BACKEND.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	log := logger.GetLogger()

	switch cfg.StoreBackend {
	case config.BackendMemory, "":
		log.Infow("Using in-memory store; history and settings are lost on restart")
		return storage.NewMemoryStore(), nil

	case config.BackendRedis:
		client, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStore(client, cfg.RedisPrefix), nil

	case config.BackendSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewSQLStore(ctx, conn, storage.SQLite)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return store, nil

	case config.BackendPostgres:
		conn, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewSQLStore(ctx, conn, storage.Postgres)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
