package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"nalevel/internal/domain"
	"nalevel/internal/domain/repositories"
)

// PostgresKVStore implements KeyValueStore on a single JSONB table
type PostgresKVStore struct {
	pool      *pgxpool.Pool
	tables    *TableNames
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewKVStore creates the store and ensures its table exists
func NewKVStore(ctx context.Context, config *RepositoryConfig) (*PostgresKVStore, error) {
	s := &PostgresKVStore{
		pool:      config.Pool,
		tables:    config.Tables,
		txManager: NewTransactionManager(config.Pool, config.Logger),
		logger:    config.Logger,
	}

	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *PostgresKVStore) ensureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, s.tables.KeyValues)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", s.tables.KeyValues, err)
	}
	return nil
}

// Get retrieves the value stored under key
func (s *PostgresKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.tables.KeyValues)

	var value []byte
	executor := GetExecutor(ctx, s.pool)
	if err := executor.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("key %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get key %s: %w", key, err)
	}

	return value, nil
}

// Apply writes all mutations in one transaction
func (s *PostgresKVStore) Apply(ctx context.Context, mutations ...repositories.Mutation) error {
	upsert := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, s.tables.KeyValues)
	remove := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.tables.KeyValues)

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, s.pool)
		for _, m := range mutations {
			var err error
			if m.Delete {
				_, err = executor.Exec(txCtx, remove, m.Key)
			} else {
				_, err = executor.Exec(txCtx, upsert, m.Key, string(m.Value))
			}
			if err != nil {
				return fmt.Errorf("write key %s: %w", m.Key, err)
			}
		}
		return nil
	})
}

// Close releases the connection pool
func (s *PostgresKVStore) Close() error {
	s.pool.Close()
	return nil
}
