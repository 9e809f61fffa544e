package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"trophyseeker/internal/adapters"
	"trophyseeker/internal/bootstrap"
	errs "trophyseeker/internal/errors"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// OpenKeyValueStore connects the driver named by cfg.StorageDriver. The
// returned func releases the underlying connection.
func OpenKeyValueStore(ctx context.Context, cfg *bootstrap.Config, log *zap.SugaredLogger) (KeyValueStore, func(context.Context) error, error) {
	switch cfg.StorageDriver {
	case DriverMemory, "":
		log.Info("using in-memory storage")
		return NewMapKVStorage(), func(context.Context) error { return nil }, nil

	case DriverRedis:
		redisAdapter := adapters.NewAdapterRedis(cfg, log)
		if err := redisAdapter.Init(ctx); err != nil {
			return nil, nil, err
		}
		return NewRedisKVStorage(redisAdapter.GetClient()), redisAdapter.Close, nil

	case DriverMongo:
		mongoAdapter := adapters.NewAdapterMongo(cfg, log)
		if err := mongoAdapter.Init(ctx); err != nil {
			return nil, nil, err
		}
		store := NewMongoKVStorage(mongoAdapter.Database)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = mongoAdapter.Close(ctx)
			return nil, nil, fmt.Errorf("create mongo indexes: %w", err)
		}
		return store, mongoAdapter.Close, nil

	case DriverPostgres:
		postgresAdapter := adapters.NewAdapterPostgres(cfg, log)
		if err := postgresAdapter.Init(ctx); err != nil {
			return nil, nil, err
		}
		store := NewPostgresKVStorage(postgresAdapter.DB, log)
		if err := store.Migrate(); err != nil {
			_ = postgresAdapter.Close(ctx)
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return store, postgresAdapter.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", errs.ErrUnknownStoreDriver, cfg.StorageDriver)
	}
}
