package generate

import "time"

// Config holds the generation client and route configuration.
type Config struct {
	BaseURL            string        `mapstructure:"base_url"`
	DeployedURL        string        `mapstructure:"deployed_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	PerIPInflight      int           `mapstructure:"per_ip_inflight"`
	RateLimitPerMinute int           `mapstructure:"rate_limit_per_minute"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:            2 * time.Minute,
		PerIPInflight:      1,
		RateLimitPerMinute: 4,
	}
}
