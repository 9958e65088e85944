package config

import (
	"time"
)

// RateLimitConfig controls the Redis token bucket applied to the public API.
// Checkout endpoints are the main reason this exists: a burst of
// create-payment-intent calls is almost always abuse, never a real guest.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// LoadRateLimitConfig reads environment variables to build a RateLimitConfig,
// clamping values into a sane range.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Capacity:       atoiDefault(getenv("RATE_LIMIT_CAPACITY", "60"), 60),
		RefillTokens:   atoiDefault(getenv("RATE_LIMIT_REFILL_TOKENS", "1"), 1),
		RefillInterval: parseDurDefault(getenv("RATE_LIMIT_REFILL_INTERVAL", "1s"), time.Second),
		TTL:            parseDurDefault(getenv("RATE_LIMIT_TTL", "10m"), 10*time.Minute),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func atoiDefault(s string, def int) int {
	if n := atoi(s); n != 0 {
		return n
	}
	return def
}

func parseDurDefault(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}
