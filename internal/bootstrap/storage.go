package bootstrap

import (
	"context"
	"fmt"

	"github.com/Domenick1991/railbooking/config"
	"github.com/Domenick1991/railbooking/internal/cache"
	"github.com/Domenick1991/railbooking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// OpenStore builds the blob store selected by cfg.Storage. The returned cleanup
// releases the backend connection and is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (repository.BlobStore, func(), error) {
	var (
		store   repository.BlobStore
		cleanup = func() {}
	)

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return repository.NewMemoryBlobStore(), cleanup, nil
	case config.StorageRedis:
		client := cache.NewRedisClient(cfg.Redis)
		rs := cache.NewRedisBlobStore(client, cfg.Redis.KeyPrefix)
		if err := rs.Ping(ctx); err != nil && !cfg.Storage.Failover {
			client.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		store, cleanup = rs, func() { client.Close() }
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		pg := repository.NewPGBlobStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil && !cfg.Storage.Failover {
			pool.Close()
			return nil, nil, err
		}
		store, cleanup = pg, pool.Close
	case config.StorageSQLite:
		sq, err := repository.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		store, cleanup = sq, func() { sq.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Storage.Failover {
		logger.Info().Str("driver", cfg.Storage.Driver).Msg("blob store failover to memory enabled")
		store = repository.NewFailoverBlobStore(store, repository.NewMemoryBlobStore(), logger)
	}
	return store, cleanup, nil
}
