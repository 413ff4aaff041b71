package server

import (
	"fmt"
	"time"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host         string          `mapstructure:"host"`
	Port         int             `mapstructure:"port"`
	DevMode      bool            `mapstructure:"dev_mode"` // serves Swagger UI at /swagger/
	ReadTimeout  time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout time.Duration   `mapstructure:"write_timeout"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig is the global per-client token bucket.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// DefaultConfig returns sensible defaults. The write timeout covers a full
// generation round trip.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		RateLimit:    RateLimitConfig{RPS: 20, Burst: 40},
	}
}

// Addr returns the listen address as host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
