// Package cli is the presentation surface: a REPL that renders rides and
// analytics and issues commands into the services. Nothing here owns
// business rules; every outcome, including failures, surfaces as a
// one-line message.
package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/rideflow-labs/rideflow/internal/config"
	"github.com/rideflow-labs/rideflow/internal/events"
	"github.com/rideflow-labs/rideflow/internal/logging"
	"github.com/rideflow-labs/rideflow/internal/models"
	"github.com/rideflow-labs/rideflow/internal/randx"
	"github.com/rideflow-labs/rideflow/internal/services"
	"github.com/rideflow-labs/rideflow/internal/store"
	"github.com/rideflow-labs/rideflow/internal/timex"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	store     *store.Store
	auth      services.AuthService
	rides     services.RideService
	analytics services.AnalyticsService
	bus       *events.Bus
	reader    *bufio.Reader

	// user mirrors the persisted session pointer for the prompt.
	user *models.User

	// filters persist across list commands within the session, like the
	// filter controls staying put between renders.
	filters models.Filters
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	st, err := store.Open(ctx, cfg.DatabasePath, log)
	if err != nil {
		log.Error(ctx, "error initializing store", "error", err)
		return nil, err
	}

	bus := events.NewBus()
	clock := timex.RealClock{}
	auth := services.NewAuthService(st, clock, log)
	ride := services.NewRideService(st, auth, randx.New(), clock, bus, log)
	stats := services.NewAnalyticsService(st, clock, log)

	app := &App{
		config:    cfg,
		log:       log,
		store:     st,
		auth:      auth,
		rides:     ride,
		analytics: stats,
		bus:       bus,
		reader:    bufio.NewReader(os.Stdin),
		filters:   models.DefaultFilters(),
	}

	bus.Subscribe(app.onRideEvent)

	// restore a session left over from the previous run
	if user, err := auth.CurrentUser(ctx); err == nil {
		app.user = user
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// onRideEvent turns mutation events into toasts. The booking toast is
// handled in Book so it can carry ride details.
func (a *App) onRideEvent(e events.Event) {
	switch e.Kind {
	case events.RideUpdated:
		toast("Ride updated successfully!")
	case events.RideCompleted:
		toast("Ride completed!")
	case events.RideCancelled:
		toast("Ride cancelled")
	case events.RideDeleted:
		toast("Ride deleted")
	}
}

// scheduleBookingNotice fires the simulated dispatch update a moment
// after booking.
func (a *App) scheduleBookingNotice() {
	if a.config.BookingNoticeDelay <= 0 {
		return
	}
	time.AfterFunc(a.config.BookingNoticeDelay, func() {
		toast("Driver is on the way")
	})
}
