// Package sqlstore implements the key-value store on database/sql for
// SQLite (local single-node deployments) and MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"nalevel/internal/domain"
	"nalevel/internal/domain/repositories"
)

// dialect holds the statements that differ between drivers
type dialect struct {
	driver string
	schema string
	upsert string
}

func sqliteDialect(table string) dialect {
	return dialect{
		driver: "sqlite3",
		schema: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			store_key TEXT PRIMARY KEY,
			store_value TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, table),
		upsert: fmt.Sprintf(`INSERT INTO %s (store_key, store_value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(store_key) DO UPDATE SET store_value = excluded.store_value, updated_at = CURRENT_TIMESTAMP`, table),
	}
}

func mysqlDialect(table string) dialect {
	return dialect{
		driver: "mysql",
		schema: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			store_key VARCHAR(255) NOT NULL PRIMARY KEY,
			store_value LONGTEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) CHARACTER SET utf8mb4`, table),
		upsert: fmt.Sprintf(`INSERT INTO %s (store_key, store_value)
			VALUES (?, ?)
			ON DUPLICATE KEY UPDATE store_value = VALUES(store_value)`, table),
	}
}

// Store implements KeyValueStore on a single two-column table
type Store struct {
	db      *sql.DB
	table   string
	dialect dialect
}

var _ repositories.KeyValueStore = (*Store)(nil)

// OpenSQLite opens (or creates) the database file at path
func OpenSQLite(ctx context.Context, path, table string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// One writer keeps SQLite from returning SQLITE_BUSY under concurrent requests
	return open(ctx, path+"?_foreign_keys=on&_busy_timeout=5000", table, sqliteDialect(table), 1)
}

// OpenMySQL connects with a go-sql-driver DSN (user:pass@tcp(host:port)/db)
func OpenMySQL(ctx context.Context, dsn, table string) (*Store, error) {
	return open(ctx, dsn, table, mysqlDialect(table), 10)
}

func open(ctx context.Context, dsn, table string, d dialect, maxOpen int) (*Store, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driver, err)
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.driver, err)
	}

	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", table, err)
	}

	return &Store{db: db, table: table, dialect: d}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf("SELECT store_value FROM %s WHERE store_key = ?", s.table)

	var value string
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("key %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get key %s: %w", key, err)
	}
	return []byte(value), nil
}

// Apply writes all mutations in one transaction
func (s *Store) Apply(ctx context.Context, mutations ...repositories.Mutation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	remove := fmt.Sprintf("DELETE FROM %s WHERE store_key = ?", s.table)
	for _, m := range mutations {
		if m.Delete {
			_, err = tx.ExecContext(ctx, remove, m.Key)
		} else {
			_, err = tx.ExecContext(ctx, s.dialect.upsert, m.Key, string(m.Value))
		}
		if err != nil {
			return fmt.Errorf("write key %s: %w", m.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
