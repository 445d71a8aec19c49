package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("server port default")
	}
	if cfg.Refresh.Interval != time.Hour {
		t.Fatalf("refresh interval default, got %v", cfg.Refresh.Interval)
	}
	if cfg.Refresh.BatchBudget != 5*time.Minute {
		t.Fatalf("batch budget default, got %v", cfg.Refresh.BatchBudget)
	}
	if cfg.Refresh.ThresholdDropPercent != 10 {
		t.Fatalf("threshold default, got %v", cfg.Refresh.ThresholdDropPercent)
	}
	if cfg.Source.Mode != "simulated" {
		t.Fatalf("source mode default, got %q", cfg.Source.Mode)
	}
	if cfg.Source.FetchTimeout != 10*time.Second {
		t.Fatalf("fetch timeout default, got %v", cfg.Source.FetchTimeout)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9090
source:
  mode: live
  endpoint: http://scraper.local/snapshot
  fetch_timeout: 3s
refresh:
  interval: 30m
  workers: 4
  threshold_drop_percent: 25
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("server port, got %d", cfg.Server.Port)
	}
	if cfg.Source.Mode != "live" || cfg.Source.Endpoint != "http://scraper.local/snapshot" {
		t.Fatalf("source: %+v", cfg.Source)
	}
	if cfg.Source.FetchTimeout != 3*time.Second {
		t.Fatalf("fetch timeout, got %v", cfg.Source.FetchTimeout)
	}
	if cfg.Refresh.Interval != 30*time.Minute || cfg.Refresh.Workers != 4 {
		t.Fatalf("refresh: %+v", cfg.Refresh)
	}
	if cfg.Refresh.ThresholdDropPercent != 25 {
		t.Fatalf("threshold, got %v", cfg.Refresh.ThresholdDropPercent)
	}
	// Unset sections keep defaults.
	if cfg.Refresh.BatchBudget != 5*time.Minute {
		t.Fatalf("batch budget default, got %v", cfg.Refresh.BatchBudget)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("THRESHOLD_DROP_PERCENT", "33.5")
	t.Setenv("SERVER_PORT", "8888")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PostgreSQL.Host != "db.internal" || cfg.PostgreSQL.Port != 5433 {
		t.Fatalf("postgres env: %+v", cfg.PostgreSQL)
	}
	if cfg.Redis.Host != "cache.internal" {
		t.Fatalf("redis env: %+v", cfg.Redis)
	}
	if cfg.Refresh.Interval != 15*time.Minute {
		t.Fatalf("interval env, got %v", cfg.Refresh.Interval)
	}
	if cfg.Refresh.ThresholdDropPercent != 33.5 {
		t.Fatalf("threshold env, got %v", cfg.Refresh.ThresholdDropPercent)
	}
	if cfg.Server.Port != 8888 {
		t.Fatalf("server port env, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Fatalf("logging env: %+v", cfg.Logging)
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("refresh:\n  interval: soon\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}

func TestDSNHelpers(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	dsn := cfg.PostgresDSN()
	if dsn == "" || cfg.RedisAddr() != "localhost:6379" {
		t.Fatalf("helpers: %q %q", dsn, cfg.RedisAddr())
	}
}
