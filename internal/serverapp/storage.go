package serverapp

import (
	"context"
	"fmt"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/config"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/storage"
)

// OpenStorage builds the backend named in cfg. The returned func releases
// any connections and is never nil.
func OpenStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func(), error) {
	noop := func() {}
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStorage(), noop, nil

	case config.BackendPostgres:
		pool, err := storage.Connect(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		pg := storage.NewPgStorage(pool, cfg.Storage.Key)
		if err := pg.EnsureTable(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return pg, pool.Close, nil

	case config.BackendFile, "":
		fs, err := storage.NewFileStorage(cfg.Server.DataDir, cfg.Storage.Key)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
