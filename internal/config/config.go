// Package config defines all configuration structures for sitecast.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// RedisConfig holds Redis connection parameters for the result cache.
// When Enabled is false the service runs with caching disabled and every
// forecast/dashboard request recomputes; the engine is cheap enough that this
// is a legitimate deployment mode for single-user installs.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// CacheConfig holds TTLs for the computed-result caches.
type CacheConfig struct {
	ForecastTTL  time.Duration `mapstructure:"forecast_ttl"`
	DashboardTTL time.Duration `mapstructure:"dashboard_ttl"`
}

// ForecastConfig holds the curve-shaping parameters of the distribution
// engine.  The defaults are the long-standing values the existing forecast
// tables were tuned against; change them only with explicit sign-off, since
// they decide what "front-loaded" and "back-loaded" look like to users.
type ForecastConfig struct {
	BellSigma           float64 `mapstructure:"bell_sigma"`
	BellMidpointLow     float64 `mapstructure:"bell_midpoint_low"`
	BellMidpointHigh    float64 `mapstructure:"bell_midpoint_high"`
	FrontInflectionLow  float64 `mapstructure:"front_inflection_low"`
	FrontInflectionHigh float64 `mapstructure:"front_inflection_high"`
	BackInflectionLow   float64 `mapstructure:"back_inflection_low"`
	BackInflectionHigh  float64 `mapstructure:"back_inflection_high"`
	LogisticSteepness   float64 `mapstructure:"logistic_steepness"`
}

// NotifyConfig holds report email delivery settings.
type NotifyConfig struct {
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// MetricsConfig holds prometheus exposition settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Config is the root configuration structure for the service.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      logging.Config `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis.enabled is true")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be >= 0, got %d", c.Redis.DB)
	}

	if c.Cache.ForecastTTL < 0 || c.Cache.DashboardTTL < 0 {
		return fmt.Errorf("config: cache TTLs must not be negative")
	}

	fc := c.Forecast
	if fc.BellSigma <= 0 {
		return fmt.Errorf("config: forecast.bell_sigma must be > 0, got %g", fc.BellSigma)
	}
	if fc.LogisticSteepness <= 0 {
		return fmt.Errorf("config: forecast.logistic_steepness must be > 0, got %g", fc.LogisticSteepness)
	}
	for _, r := range []struct {
		name      string
		low, high float64
	}{
		{"bell_midpoint", fc.BellMidpointLow, fc.BellMidpointHigh},
		{"front_inflection", fc.FrontInflectionLow, fc.FrontInflectionHigh},
		{"back_inflection", fc.BackInflectionLow, fc.BackInflectionHigh},
	} {
		if r.low < 0 || r.high > 1 || r.low > r.high {
			return fmt.Errorf("config: forecast.%s range [%g, %g] must satisfy 0 <= low <= high <= 1", r.name, r.low, r.high)
		}
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
