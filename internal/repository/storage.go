package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/docchat/internal/config"
	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/repository/memory"
	"github.com/Rrens/docchat/internal/repository/redis"
	"github.com/Rrens/docchat/internal/repository/sqlite"
)

// Storage is a closable local key-value backend
type Storage interface {
	domain.KeyValueStore
	io.Closer
}

// Open connects the backend selected by cfg.Driver. SQLite storage is
// migrated before it is returned.
func Open(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "sqlite":
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("Using SQLite storage")
		return db, nil
	case "redis":
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr()).Msg("Using Redis storage")
		return client, nil
	case "memory":
		log.Warn().Msg("Using in-memory storage, chat history will not survive a restart")
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
