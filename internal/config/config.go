package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port string
	Env  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LeetCodeGraphQLURL string
	UpstreamTimeout    time.Duration

	CacheTTL         time.Duration
	TrackedUsernames []string

	CORSAllowedOrigins []string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "local"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		LeetCodeGraphQLURL: getEnv("LEETCODE_GRAPHQL_URL", "https://leetcode.com/graphql"),
		UpstreamTimeout:    getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),

		CacheTTL:         getEnvDuration("CACHE_TTL", time.Hour),
		TrackedUsernames: getEnvList("TRACKED_USERNAMES", nil),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", nil),
	}
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		var out int
		_, err := fmt.Sscanf(v, "%d", &out)
		if err == nil {
			return out
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
