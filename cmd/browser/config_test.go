package main

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig()
	if cfg.ListenAddress != ":8080" {
		t.Errorf("Expected :8080, got %s", cfg.ListenAddress)
	}
	if cfg.PageSize != 12 {
		t.Errorf("Expected page size 12, got %d", cfg.PageSize)
	}
	if cfg.CatalogRefreshInterval != 0 {
		t.Errorf("Expected scheduled refresh to be off, got %v", cfg.CatalogRefreshInterval)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDRESS", ":9000")
	t.Setenv("COUNTRY", "gh")
	t.Setenv("PAGE_SIZE", "24")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("CATALOG_LOAD_TIMEOUT", "-1s")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "10m")
	t.Setenv("MAX_SESSIONS", "50")
	cfg := loadConfig()
	if cfg.ListenAddress != ":9000" || cfg.Country != "gh" || cfg.PageSize != 24 {
		t.Errorf("Expected env overrides, got %+v", cfg)
	}
	if cfg.RedisDb != 0 {
		t.Errorf("Expected invalid REDIS_DB to fall back to 0, got %d", cfg.RedisDb)
	}
	if cfg.SessionTtl != 5*time.Minute {
		t.Errorf("Expected 5m session ttl, got %v", cfg.SessionTtl)
	}
	if cfg.CatalogLoadTimeout != 30*time.Second {
		t.Errorf("Expected default load timeout, got %v", cfg.CatalogLoadTimeout)
	}
	if cfg.CatalogRefreshInterval != 10*time.Minute || cfg.MaxSessions != 50 {
		t.Errorf("Expected refresh interval 10m and 50 sessions, got %v and %d", cfg.CatalogRefreshInterval, cfg.MaxSessions)
	}
}
