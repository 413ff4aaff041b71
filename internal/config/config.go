// Package config loads Slidecraft configuration from file, environment and
// defaults, and builds the process logger.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HerbHall/slidecraft/internal/clientip"
	"github.com/HerbHall/slidecraft/internal/export"
	"github.com/HerbHall/slidecraft/internal/generate"
	"github.com/HerbHall/slidecraft/internal/server"
	"github.com/HerbHall/slidecraft/internal/theme"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server     server.Config   `mapstructure:"server"`
	Logging    LoggingConfig   `mapstructure:"logging"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Generation generate.Config `mapstructure:"generation"`
	ClientIP   clientip.Config `mapstructure:"clientip"`
	Export     export.Config   `mapstructure:"export"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// DatabaseConfig locates the history database.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from configPath (or slidecraft.yaml in the usual
// locations), then SC_-prefixed environment variables, over the defaults.
// SC_GENERATION_BASE_URL overrides generation.base_url.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("slidecraft")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/slidecraft")
	}

	v.SetEnvPrefix("SC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file: defaults and environment only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	srv := server.DefaultConfig()
	v.SetDefault("server.host", srv.Host)
	v.SetDefault("server.port", srv.Port)
	v.SetDefault("server.dev_mode", false)
	v.SetDefault("server.read_timeout", srv.ReadTimeout)
	v.SetDefault("server.write_timeout", srv.WriteTimeout)
	v.SetDefault("server.rate_limit.rps", srv.RateLimit.RPS)
	v.SetDefault("server.rate_limit.burst", srv.RateLimit.Burst)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("database.path", "./data/slidecraft.db")

	gen := generate.DefaultConfig()
	v.SetDefault("generation.base_url", "")
	v.SetDefault("generation.deployed_url", "")
	v.SetDefault("generation.timeout", gen.Timeout)
	v.SetDefault("generation.per_ip_inflight", gen.PerIPInflight)
	v.SetDefault("generation.rate_limit_per_minute", gen.RateLimitPerMinute)

	ip := clientip.DefaultConfig()
	v.SetDefault("clientip.lookup_url", "")
	v.SetDefault("clientip.lookup_timeout", ip.LookupTimeout)

	exp := export.DefaultConfig()
	v.SetDefault("export.image_timeout", exp.ImageTimeout)
	v.SetDefault("export.max_image_bytes", exp.MaxImageBytes)
	v.SetDefault("export.image_workers", exp.ImageWorkers)
	v.SetDefault("export.default_theme", exp.DefaultTheme)
	v.SetDefault("export.block_private_images", exp.BlockPrivateImages)
}

// Validate reports every invalid setting at once. Commands that never call
// the generation service pass requireGeneration=false.
func (c *Config) Validate(requireGeneration bool) error {
	var errs []error
	if requireGeneration && strings.TrimSpace(c.Generation.BaseURL) == "" {
		errs = append(errs, errors.New("generation.base_url is required"))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Export.ImageWorkers < 1 {
		errs = append(errs, fmt.Errorf("export.image_workers must be positive, got %d", c.Export.ImageWorkers))
	}
	if c.Export.MaxImageBytes < 1 {
		errs = append(errs, fmt.Errorf("export.max_image_bytes must be positive, got %d", c.Export.MaxImageBytes))
	}
	if c.Export.DefaultTheme != "" {
		if _, ok := theme.Builtin().Lookup(c.Export.DefaultTheme); !ok {
			errs = append(errs, fmt.Errorf("export.default_theme: %w: %q", theme.ErrUnknownTheme, c.Export.DefaultTheme))
		}
	}
	if c.Generation.PerIPInflight < 0 || c.Generation.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("generation limits must not be negative"))
	}
	return errors.Join(errs...)
}
