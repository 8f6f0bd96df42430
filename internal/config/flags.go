package config

import (
	"flag"
	"os"

	"github.com/rideflow-labs/rideflow/internal/flagx"
)

// parseFlags overlays Config with command-line flags. os.Args is filtered
// to just the flags owned here so the config flag (-c/-config) parsed
// elsewhere does not interfere.
//
// Supported flags:
//
//	-d string     database path/DSN
//	-w int        analytics window in days
//	-n duration   booking notice delay (e.g. 2s)
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-w", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "database path")
	fs.IntVar(&cfg.AnalyticsWindowDays, "w", cfg.AnalyticsWindowDays, "analytics window (days)")
	fs.DurationVar(&cfg.BookingNoticeDelay, "n", cfg.BookingNoticeDelay, "booking notice delay")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
