// Package repository selects and opens the key-value backend named in the config.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"nalevel/internal/config"
	"nalevel/internal/domain/repositories"
	"nalevel/internal/repository/kv"
	"nalevel/internal/repository/postgres"
	"nalevel/internal/repository/redisstore"
	"nalevel/internal/repository/sqlstore"
)

// OpenStore opens the backend selected by cfg.StoreBackend.
// The caller owns the returned store and must Close it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.KeyValueStore, error) {
	table := cfg.TablePrefix + "kv_entries"

	switch cfg.StoreBackend {
	case "memory":
		logger.Warn("using in-memory store: data is lost on restart")
		return kv.NewMemoryStore(), nil

	case "file":
		store, err := kv.NewFileStore(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		logger.Info("file store opened", "path", cfg.StorePath)
		return store, nil

	case "sqlite":
		store, err := sqlstore.OpenSQLite(ctx, cfg.StorePath, table)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite store opened", "path", cfg.StorePath, "table", table)
		return store, nil

	case "mysql":
		if cfg.MySQLDSN == "" {
			return nil, fmt.Errorf("MYSQL_DSN is required for the mysql backend")
		}
		store, err := sqlstore.OpenMySQL(ctx, cfg.MySQLDSN, table)
		if err != nil {
			return nil, err
		}
		logger.Info("mysql store opened", "table", table)
		return store, nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store, err := postgres.NewKVStore(ctx, &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		})
		if err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("postgres store opened",
			"max_conns", 10,
			"min_conns", 2,
		)
		return store, nil

	case "redis":
		store, err := redisstore.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TablePrefix)
		if err != nil {
			return nil, err
		}
		logger.Info("redis store opened", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
