package config

import "time"

// CacheConfig controls the Redis-backed search response cache.
type CacheConfig struct {
	Enabled      bool          // master switch
	TTL          time.Duration // lifetime of a cached response
	Prefix       string        // key namespace in Redis
	MaxBodyBytes int           // responses larger than this are not cached
}

// LoadCacheConfig reads cache settings from the environment.
// Defaults keep the cache on with a short TTL.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		TTL:          durenv("CACHE_TTL", 30*time.Second),
		Prefix:       getenv("CACHE_PREFIX", "shareit:cache"),
		MaxBodyBytes: intenv("CACHE_MAX_BODY_BYTES", 262144),
	}
}
