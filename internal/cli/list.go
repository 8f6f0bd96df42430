package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rideflow-labs/rideflow/internal/models"
)

func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		toast("Please login to continue")
		return nil
	}

	rides, err := a.rides.List(ctx, a.user.ID, a.filters)
	if err != nil {
		toast(err.Error())
		return err
	}

	if len(rides) == 0 {
		printlnFn("No rides found")
		return nil
	}

	for _, r := range rides {
		printlnFn(formatRide(r))
	}
	return nil
}

// Filter updates the listing criteria kept on the app, then re-renders.
// Empty answers keep the current value.
func (a *App) Filter(ctx context.Context) error {
	if !a.isLoggedIn() {
		toast("Please login to continue")
		return nil
	}

	search, err := GetSimpleText(a.reader, "Search (empty for none)", os.Stdout)
	if err != nil {
		return err
	}
	status, err := GetSimpleText(a.reader, "Status (all/upcoming/completed/cancelled)", os.Stdout)
	if err != nil {
		return err
	}
	rideType, err := GetSimpleText(a.reader, "Type (all/economy/comfort/premium/xl)", os.Stdout)
	if err != nil {
		return err
	}
	sortBy, err := GetSimpleText(a.reader, "Sort (dateDesc/dateAsc/priceDesc/priceAsc)", os.Stdout)
	if err != nil {
		return err
	}

	a.filters.Search = search
	if status != "" {
		a.filters.Status = status
	}
	if rideType != "" {
		a.filters.Type = rideType
	}
	if sortBy != "" {
		a.filters.SortBy = models.SortOrder(sortBy)
	}

	return a.List(ctx)
}

func formatRide(r models.Ride) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s  %s ride: %s -> %s\n", r.Status, r.ID, r.Type, r.Pickup, r.Dropoff)
	fmt.Fprintf(&b, "    %s | %s (%.1f) | %s - %s | %d passenger(s) | $%d",
		r.DateTime, r.Driver.Name, r.Driver.Rating, r.Vehicle.Model, r.Vehicle.Plate, r.Passengers, r.Price)
	return b.String()
}
