package cli

import (
	"context"
	"os"

	"github.com/rideflow-labs/rideflow/internal/models"
	"github.com/rideflow-labs/rideflow/internal/services"
)

func (a *App) Edit(ctx context.Context) error {
	if !a.isLoggedIn() {
		toast("Please login to continue")
		return nil
	}

	id, err := GetSimpleText(a.reader, "Ride id", os.Stdout)
	if err != nil {
		return err
	}
	pickup, err := GetSimpleText(a.reader, "Pickup location", os.Stdout)
	if err != nil {
		return err
	}
	dropoff, err := GetSimpleText(a.reader, "Dropoff location", os.Stdout)
	if err != nil {
		return err
	}
	when, err := GetSimpleText(a.reader, "Date and time (YYYY-MM-DDTHH:MM)", os.Stdout)
	if err != nil {
		return err
	}
	passengers, err := GetInt(a.reader, "Passengers", os.Stdout)
	if err != nil {
		toast(err.Error())
		return err
	}
	rideType, err := GetSimpleText(a.reader, "Ride type (economy/comfort/premium/xl)", os.Stdout)
	if err != nil {
		return err
	}

	_, err = a.rides.Update(ctx, id, services.RideInput{
		Pickup:     pickup,
		Dropoff:    dropoff,
		DateTime:   when,
		Passengers: passengers,
		Type:       models.RideType(rideType),
	})
	if err != nil {
		toast(err.Error())
		return err
	}
	return nil
}
