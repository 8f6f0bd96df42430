// Package config loads runtime settings for the rideflow CLI. Sources are
// layered: built-in defaults, then a .env / process environment, then a
// JSON file (-c/-config), then command-line flags. Later sources win.
package config

import "time"

// Config holds the runtime settings.
//
// Fields:
//   - DatabasePath: SQLite DSN or file path for the local store.
//   - AnalyticsWindowDays: default rolling window for the stats view.
//   - BookingNoticeDelay: how long after booking the simulated
//     "driver on the way" notice appears.
type Config struct {
	DatabasePath        string
	AnalyticsWindowDays int
	BookingNoticeDelay  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "rideflow.db"
	c.AnalyticsWindowDays = 30
	c.BookingNoticeDelay = 2 * time.Second
}

// LoadConfig constructs a Config from all sources in precedence order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
