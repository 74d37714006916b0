package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "SITECAST"

// newViper builds a pre-configured viper instance: YAML file type, SITECAST_
// env prefix, automatic env binding, and a key replacer mapping "." to "_"
// so that nested keys like "redis.addr" resolve to "SITECAST_REDIS_ADDR".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads the YAML file at configPath, merges SITECAST_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from SITECAST_* environment variables
// and defaults, with no config file required.  This is the preferred loading
// strategy for containerised deployments.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// setViperDefaults registers every known key with viper.  AutomaticEnv only
// resolves keys viper has seen, so without this an env-only deployment would
// silently ignore SITECAST_* variables.
func setViperDefaults(v *viper.Viper) {
	defaults := NewDefaultConfig()

	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.mode", defaults.Server.Mode)
	v.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", defaults.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	v.SetDefault("server.cors_origins", defaults.Server.CORSOrigins)

	v.SetDefault("redis.enabled", defaults.Redis.Enabled)
	v.SetDefault("redis.addr", defaults.Redis.Addr)
	v.SetDefault("redis.password", defaults.Redis.Password)
	v.SetDefault("redis.db", defaults.Redis.DB)
	v.SetDefault("redis.pool_size", defaults.Redis.PoolSize)
	v.SetDefault("redis.dial_timeout", defaults.Redis.DialTimeout)
	v.SetDefault("redis.read_timeout", defaults.Redis.ReadTimeout)
	v.SetDefault("redis.write_timeout", defaults.Redis.WriteTimeout)
	v.SetDefault("redis.key_prefix", defaults.Redis.KeyPrefix)

	v.SetDefault("cache.forecast_ttl", defaults.Cache.ForecastTTL)
	v.SetDefault("cache.dashboard_ttl", defaults.Cache.DashboardTTL)

	v.SetDefault("forecast.bell_sigma", defaults.Forecast.BellSigma)
	v.SetDefault("forecast.bell_midpoint_low", defaults.Forecast.BellMidpointLow)
	v.SetDefault("forecast.bell_midpoint_high", defaults.Forecast.BellMidpointHigh)
	v.SetDefault("forecast.front_inflection_low", defaults.Forecast.FrontInflectionLow)
	v.SetDefault("forecast.front_inflection_high", defaults.Forecast.FrontInflectionHigh)
	v.SetDefault("forecast.back_inflection_low", defaults.Forecast.BackInflectionLow)
	v.SetDefault("forecast.back_inflection_high", defaults.Forecast.BackInflectionHigh)
	v.SetDefault("forecast.logistic_steepness", defaults.Forecast.LogisticSteepness)

	v.SetDefault("notify.from_address", defaults.Notify.FromAddress)
	v.SetDefault("notify.from_name", defaults.Notify.FromName)

	v.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	v.SetDefault("metrics.namespace", defaults.Metrics.Namespace)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.output_paths", defaults.Log.OutputPaths)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	setViperDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath and invokes onChange with a freshly parsed Config
// whenever the file is modified on disk.  It is intended for hot-reloading
// non-critical settings such as log level and cache TTLs; callers decide
// which subset of changes is safe to apply at runtime.
//
// Watch is non-blocking; viper manages the fsnotify goroutine.  A change that
// fails to parse or validate is dropped without invoking onChange, so the
// application never observes a broken config.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read primes viper's state; callers should have used Load first,
	// so errors here are ignored.
	_ = v.ReadInConfig()

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
