package config

import (
	"time"
)

// CacheConfig defines settings for the season read cache.  When Enabled is
// false or no Redis client is available, caching is disabled entirely.  TTL
// bounds staleness between a slot-changing write and the next cache miss;
// writes additionally invalidate the prefix eagerly, so the TTL is only a
// backstop.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string // key namespace, e.g. "seasons"
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 30*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "seasons"),
	}
}
