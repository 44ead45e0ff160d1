package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"nalevel/internal/config"
	"nalevel/internal/domain/repositories"
)

func TestOpenStore(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"memory", config.Config{StoreBackend: "memory"}, false},
		{"file", config.Config{StoreBackend: "file", StorePath: filepath.Join(dir, "store.json")}, false},
		{"sqlite", config.Config{StoreBackend: "sqlite", StorePath: filepath.Join(dir, "store.db"), TablePrefix: "test_"}, false},
		{"mysql without dsn", config.Config{StoreBackend: "mysql"}, true},
		{"postgres without url", config.Config{StoreBackend: "postgres"}, true},
		{"unknown backend", config.Config{StoreBackend: "etcd"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := OpenStore(ctx, &tt.cfg, logger)
			if tt.wantErr {
				if err == nil {
					store.Close()
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenStore failed: %v", err)
			}
			defer store.Close()

			if err := store.Apply(ctx, repositories.Put("k", []byte(`"v"`))); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			got, err := store.Get(ctx, "k")
			if err != nil || string(got) != `"v"` {
				t.Errorf("Get = %q, %v", got, err)
			}
		})
	}
}
