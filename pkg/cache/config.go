package cache

import "time"

// Data types with individually tuned TTLs.
const (
	DataFloatList  = "float_list"
	DataIndicators = "indicators"
)

// Config holds cache behavior settings.
type Config struct {
	KeyPrefix  string
	DefaultTTL time.Duration
	TTLs       map[string]time.Duration
}

// DefaultConfig returns the cache configuration used in production.
func DefaultConfig() Config {
	return Config{
		KeyPrefix:  "fleetops:",
		DefaultTTL: 60 * time.Second,
		TTLs: map[string]time.Duration{
			DataFloatList:  30 * time.Second,
			DataIndicators: 120 * time.Second,
		},
	}
}

// TTLFor returns the TTL for a data type, falling back to the default.
func (c Config) TTLFor(dataType string) time.Duration {
	if ttl, ok := c.TTLs[dataType]; ok {
		return ttl
	}
	return c.DefaultTTL
}
