package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/rideflow-labs/rideflow/internal/cli"
	"github.com/rideflow-labs/rideflow/internal/config"
	"github.com/rideflow-labs/rideflow/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
