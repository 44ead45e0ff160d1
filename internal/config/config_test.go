package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "STORE_BACKEND", "STORE_PATH", "TABLE_PREFIX", "SESSION_TTL", "TOKEN_TTL", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Environment != "dev" || cfg.StoreBackend != "file" {
		t.Errorf("environment/backend = %s/%s", cfg.Environment, cfg.StoreBackend)
	}
	if cfg.StorePath != "data/nalevel.json" {
		t.Errorf("store path = %q", cfg.StorePath)
	}
	if cfg.TablePrefix != "dev_" {
		t.Errorf("table prefix = %q", cfg.TablePrefix)
	}
	if cfg.SessionTTL != 24*time.Hour || cfg.TokenTTL != time.Hour {
		t.Errorf("ttls = %v/%v", cfg.SessionTTL, cfg.TokenTTL)
	}
	if cfg.BlogStoreKey != "blog-storage" {
		t.Errorf("blog store key = %q", cfg.BlogStoreKey)
	}
	if !cfg.Debug {
		t.Error("debug should default on in dev")
	}
}

func TestLoad_Overrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "prod environment",
			env:  map[string]string{"ENVIRONMENT": "prod", "TABLE_PREFIX": "", "DEBUG": ""},
			check: func(t *testing.T, cfg *Config) {
				if cfg.TablePrefix != "prod_" || cfg.Debug {
					t.Errorf("prefix=%q debug=%v", cfg.TablePrefix, cfg.Debug)
				}
			},
		},
		{
			name: "sqlite default path",
			env:  map[string]string{"STORE_BACKEND": "sqlite", "STORE_PATH": ""},
			check: func(t *testing.T, cfg *Config) {
				if cfg.StorePath != "data/nalevel.db" {
					t.Errorf("store path = %q", cfg.StorePath)
				}
			},
		},
		{
			name: "durations and ints",
			env:  map[string]string{"SESSION_TTL": "2h", "TOKEN_TTL": "15m", "REDIS_DB": "3", "BCRYPT_COST": "12"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.SessionTTL != 2*time.Hour || cfg.TokenTTL != 15*time.Minute {
					t.Errorf("ttls = %v/%v", cfg.SessionTTL, cfg.TokenTTL)
				}
				if cfg.RedisDB != 3 || cfg.BcryptCost != 12 {
					t.Errorf("redis db=%d bcrypt=%d", cfg.RedisDB, cfg.BcryptCost)
				}
			},
		},
		{
			name: "invalid values fall back",
			env:  map[string]string{"SESSION_TTL": "forever", "TOKEN_TTL": "-1h", "REDIS_DB": "x"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.SessionTTL != 24*time.Hour || cfg.TokenTTL != time.Hour || cfg.RedisDB != 0 {
					t.Errorf("got %v/%v/%d", cfg.SessionTTL, cfg.TokenTTL, cfg.RedisDB)
				}
			},
		},
		{
			name: "explicit table prefix",
			env:  map[string]string{"TABLE_PREFIX": "blog_"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.TablePrefix != "blog_" {
					t.Errorf("prefix = %q", cfg.TablePrefix)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, Load())
		})
	}
}

func TestValidateServer(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		tracking bool
		wantErr  bool
	}{
		{"base64 tracked", "base64", true, false},
		{"base64 untracked", "base64", false, true},
		{"default format untracked", "", false, true},
		{"jwt untracked", "jwt", false, false},
		{"jwt tracked", "jwt", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SessionTokenFormat: tt.format, SessionTracking: tt.tracking}
			if err := cfg.ValidateServer(); (err != nil) != tt.wantErr {
				t.Errorf("ValidateServer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_SessionTrackingDefaultsOn(t *testing.T) {
	t.Setenv("SESSION_TRACKING", "")
	if !Load().SessionTracking {
		t.Error("session tracking should default on")
	}
	t.Setenv("SESSION_TRACKING", "false")
	if Load().SessionTracking {
		t.Error("SESSION_TRACKING=false not honored")
	}
}

func TestSetupLogFile_KeepsNewestFiles(t *testing.T) {
	dir := t.TempDir()

	for i := 1; i <= 4; i++ {
		name := filepath.Join(dir, fmt.Sprintf("server-2024-01-0%dT00-00-00.log", i))
		if err := os.WriteFile(name, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	f, err := SetupLogFile(dir, "server", 3)
	if err != nil {
		t.Fatalf("SetupLogFile failed: %v", err)
	}
	defer f.Close()

	files, _ := filepath.Glob(filepath.Join(dir, "server-*.log"))
	if len(files) != 3 {
		t.Fatalf("kept %d files, want 3: %v", len(files), files)
	}
	if _, err := os.Stat(filepath.Join(dir, "server-2024-01-01T00-00-00.log")); !os.IsNotExist(err) {
		t.Error("oldest log file was not removed")
	}
}
