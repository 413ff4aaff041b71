package clientip

import "time"

// Config configures the third-party address lookup used by GET /api/ip.
type Config struct {
	LookupURL     string        `mapstructure:"lookup_url"` // e.g. "https://api.ipify.org?format=json"; empty disables
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{LookupTimeout: 5 * time.Second}
}
