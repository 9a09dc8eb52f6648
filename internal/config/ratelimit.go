package config

import "time"

// RateLimitConfig controls the Redis token-bucket limiter in front of
// the gateway routes.
type RateLimitConfig struct {
	Enabled        bool          // master switch
	Capacity       int64         // bucket size (burst)
	RefillTokens   int64         // tokens added per interval
	RefillInterval time.Duration // refill period
	TTL            time.Duration // bucket key expiry in Redis
	Prefix         string        // key namespace in Redis
}

// LoadRateLimitConfig reads limiter settings from the environment.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Capacity:       int64(intenv("RATE_LIMIT_CAPACITY", 20)),
		RefillTokens:   int64(intenv("RATE_LIMIT_REFILL_TOKENS", 10)),
		RefillInterval: durenv("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            durenv("RATE_LIMIT_TTL", 10*time.Minute),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "shareit:rl"),
	}
}
