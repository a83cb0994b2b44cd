package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("load defaults failed: %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Fatalf("default port want 5000 got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Pool.MaxOpenConns != 1 {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.UserJWT.ExpireHours != 720 {
		t.Fatalf("default token expiry want 720h got %d", cfg.UserJWT.ExpireHours)
	}
	if cfg.Order.PriceSource != "client" {
		t.Fatalf("default price source want client got %s", cfg.Order.PriceSource)
	}
	if cfg.Queue.Queues["default"] != 10 {
		t.Fatalf("default queue weight want 10 got %v", cfg.Queue.Queues)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	content := []byte("server:\n  port: \"9000\"\norder:\n  price_source: \" Catalog \"\ncatalog:\n  seed_on_start: false\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	t.Setenv("DATABASE_DSN", "file:env_override?mode=memory")

	cfg, err := load(viper.New(), dir)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Fatalf("file port want 9000 got %s", cfg.Server.Port)
	}
	if cfg.Order.PriceSource != "catalog" {
		t.Fatalf("price source should be normalized, got %q", cfg.Order.PriceSource)
	}
	if cfg.Catalog.SeedOnStart {
		t.Fatalf("seed_on_start should be false from file")
	}
	if cfg.Database.DSN != "file:env_override?mode=memory" {
		t.Fatalf("env override failed, got %s", cfg.Database.DSN)
	}
}

func TestLoadDotEnvKeepsExistingEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("SHANTURE_TEST_A=from_file\nSHANTURE_TEST_B=from_file\n"), 0o644); err != nil {
		t.Fatalf("write env failed: %v", err)
	}
	t.Setenv("SHANTURE_TEST_A", "from_env")
	t.Cleanup(func() { _ = os.Unsetenv("SHANTURE_TEST_B") })

	loadDotEnv(filepath.Join(dir, "missing.env"), envFile)

	if got := os.Getenv("SHANTURE_TEST_A"); got != "from_env" {
		t.Fatalf("existing env should win, got %s", got)
	}
	if got := os.Getenv("SHANTURE_TEST_B"); got != "from_file" {
		t.Fatalf("env file value should be loaded, got %s", got)
	}
}
