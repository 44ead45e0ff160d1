package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"nalevel/internal/config"
	"nalevel/internal/repository/postgres"
)

// Drops the key-value table of the postgres backend for the current ENVIRONMENT.
// The server recreates it empty on next start.
func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	if cfg.Environment == "prod" {
		log.Fatal("refusing to drop tables in the prod environment")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", tables.KeyValues)); err != nil {
		log.Fatalf("Failed to drop table: %v", err)
	}

	fmt.Printf("Dropped %s (prefix: %s)\n", tables.KeyValues, cfg.TablePrefix)
}
