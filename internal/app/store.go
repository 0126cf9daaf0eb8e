package app

import (
	"fmt"

	"mindra_backend/internal/config"
	"mindra_backend/internal/repository"
	"mindra_backend/internal/util"
	"mindra_backend/pkg/database"
	"mindra_backend/pkg/logger"

	"go.uber.org/zap"
)

// OpenStore builds the snapshot backend selected by store.type. The returned
// closer releases any connection it opened.
func OpenStore(cfg *config.Config) (repository.SnapshotStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Type {
	case util.StoreFile:
		logger.Log.Info("Using file store", zap.String("path", cfg.Store.Path))
		return repository.NewFileStore(cfg.Store.Path), noop, nil

	case util.StoreDatabase:
		db, err := database.InitDB(&cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		closer := func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return repository.NewDBStore(db, cfg.Store.Key, cfg.Store.MaxRetries), closer, nil

	case util.StoreRedis:
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		return repository.NewRedisStore(rdb, cfg.Store.Key, cfg.Store.MaxRetries), rdb.Close, nil

	case util.StoreMinio:
		client, err := database.InitMinio(&cfg.Minio)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize minio: %w", err)
		}
		return repository.NewObjectStore(client, cfg.Minio.Bucket, cfg.Store.Key), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}
