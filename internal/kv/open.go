package kv

import (
	"context"
	"fmt"

	"lg/body-progress-go-api/internal/config"
)

// Open builds the backend selected by cfg.StoreBackend. Backends that hold
// connections also implement Closer.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case config.BackendPostgres:
		pool, err := NewPostgresPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		store := NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure kv schema: %w", err)
		}
		return store, nil
	case config.BackendRedis:
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.RedisKeyPrefix), nil
	case config.BackendMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(client, cfg.MongoDatabase), nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownBackend, cfg.StoreBackend)
	}
}

// Close closes s if it holds connections.
func Close(ctx context.Context, s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close(ctx)
	}
	return nil
}
