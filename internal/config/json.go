package config

import (
	"encoding/json"
	"os"

	"github.com/rideflow-labs/rideflow/internal/flagx"
	"github.com/rideflow-labs/rideflow/internal/timex"
)

// jsonConfig is the DTO for file-based configuration. Durations accept
// either strings like "2s" or integer nanoseconds via timex.Duration.
type jsonConfig struct {
	DatabasePath        string         `json:"database_path"`
	AnalyticsWindowDays int            `json:"analytics_window_days"`
	BookingNoticeDelay  timex.Duration `json:"booking_notice_delay"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flag. No flag, no file read. Read or decode errors panic;
// a config file that exists but cannot be used is a startup defect.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.AnalyticsWindowDays > 0 {
		cfg.AnalyticsWindowDays = jc.AnalyticsWindowDays
	}
	if jc.BookingNoticeDelay.Duration > 0 {
		cfg.BookingNoticeDelay = jc.BookingNoticeDelay.Duration
	}
}
