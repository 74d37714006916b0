package config

import "time"

// ApplyDefaults fills every zero-valued field of cfg with the platform
// default.  Explicit values from file or environment are never overwritten.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "sitecast:"
	}

	if cfg.Cache.ForecastTTL == 0 {
		cfg.Cache.ForecastTTL = 5 * time.Minute
	}
	if cfg.Cache.DashboardTTL == 0 {
		cfg.Cache.DashboardTTL = time.Minute
	}

	// Legacy curve constants.  See ForecastConfig for the sign-off note.
	if cfg.Forecast.BellSigma == 0 {
		cfg.Forecast.BellSigma = 0.15
	}
	if cfg.Forecast.BellMidpointLow == 0 {
		cfg.Forecast.BellMidpointLow = 0.4
	}
	if cfg.Forecast.BellMidpointHigh == 0 {
		cfg.Forecast.BellMidpointHigh = 0.6
	}
	if cfg.Forecast.FrontInflectionLow == 0 {
		cfg.Forecast.FrontInflectionLow = 0.25
	}
	if cfg.Forecast.FrontInflectionHigh == 0 {
		cfg.Forecast.FrontInflectionHigh = 0.5
	}
	if cfg.Forecast.BackInflectionLow == 0 {
		cfg.Forecast.BackInflectionLow = 0.5
	}
	if cfg.Forecast.BackInflectionHigh == 0 {
		cfg.Forecast.BackInflectionHigh = 0.75
	}
	if cfg.Forecast.LogisticSteepness == 0 {
		cfg.Forecast.LogisticSteepness = 10
	}

	if cfg.Notify.FromAddress == "" {
		cfg.Notify.FromAddress = "reports@sitecast.local"
	}
	if cfg.Notify.FromName == "" {
		cfg.Notify.FromName = "Sitecast Reports"
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "sitecast"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// NewDefaultConfig returns a Config consisting solely of defaults.  Used by
// entry points when no config file is present.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
