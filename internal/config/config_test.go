package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LEETCODE_GRAPHQL_URL", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("TRACKED_USERNAMES", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "local" {
		t.Fatalf("expected default env local, got %s", cfg.Env)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected default redis addr, got %s", cfg.RedisAddr)
	}
	if cfg.LeetCodeGraphQLURL != "https://leetcode.com/graphql" {
		t.Fatalf("expected default graphql url, got %s", cfg.LeetCodeGraphQLURL)
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("expected default cache ttl 1h, got %s", cfg.CacheTTL)
	}
	if len(cfg.TrackedUsernames) != 0 {
		t.Fatalf("expected no tracked usernames by default, got %v", cfg.TrackedUsernames)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("TRACKED_USERNAMES", "alice, bob ,,carol")

	cfg := Load()

	if cfg.Port != "9000" || cfg.Env != "dev" {
		t.Fatalf("config overrides not applied: %+v", cfg)
	}
	if cfg.RedisAddr != "redis:6380" || cfg.RedisDB != 2 {
		t.Fatalf("redis overrides not applied: %+v", cfg)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Fatalf("cache ttl override not applied, got %s", cfg.CacheTTL)
	}
	if cfg.UpstreamTimeout != 5*time.Second {
		t.Fatalf("upstream timeout override not applied, got %s", cfg.UpstreamTimeout)
	}
	if len(cfg.TrackedUsernames) != 3 || cfg.TrackedUsernames[1] != "bob" {
		t.Fatalf("tracked usernames not parsed: %v", cfg.TrackedUsernames)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "one hour")

	cfg := Load()

	if cfg.CacheTTL != time.Hour {
		t.Fatalf("expected fallback ttl 1h, got %s", cfg.CacheTTL)
	}
}
