package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first when present; it never
// overrides variables already set in the environment.
//
// Recognized variables:
//
//	RIDEFLOW_DATABASE      store path/DSN
//	RIDEFLOW_WINDOW_DAYS   analytics window in days
//	RIDEFLOW_NOTICE_DELAY  booking notice delay, e.g. "2s"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("RIDEFLOW_DATABASE"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("RIDEFLOW_WINDOW_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			cfg.AnalyticsWindowDays = days
		}
	}
	if v := os.Getenv("RIDEFLOW_NOTICE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.BookingNoticeDelay = d
		}
	}
}
