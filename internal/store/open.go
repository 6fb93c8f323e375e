package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/solorun/internal/config"
)

// Open builds the progress store selected by cfg.Mode. Memory mode has no
// remote mirror.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*Layered, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	local, err := NewLocal(cfg.LocalDir)
	if err != nil {
		return nil, err
	}

	var remote Remote
	switch cfg.Mode {
	case "", config.StoreMemory:
	case config.StoreSQLite:
		remote, err = OpenSQLite(ctx, cfg.SQLitePath)
	case config.StorePostgres:
		remote, err = OpenPostgres(ctx, cfg.PostgresDSN)
	case config.StoreRedis:
		remote, err = OpenRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown store mode %q", cfg.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Mode, err)
	}

	logger.Info("progress store ready",
		zap.String("mode", cfg.Mode),
		zap.String("local_dir", cfg.LocalDir),
	)
	return NewLayered(LayeredConfig{
		Local:     local,
		Remote:    remote,
		Logger:    logger.Named("store"),
		Timeout:   cfg.Timeout,
		QueueSize: cfg.QueueSize,
	}), nil
}
