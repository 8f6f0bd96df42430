package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rideflow-labs/rideflow/internal/models"
	"github.com/rideflow-labs/rideflow/internal/services"
)

func (a *App) Book(ctx context.Context) error {
	if !a.isLoggedIn() {
		toast("Please login to continue")
		return nil
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
	rideType, err := GetSimpleText(a.reader, "Ride type (economy/comfort/premium/xl, empty for comfort)", os.Stdout)
	if err != nil {
		return err
	}

	ride, err := a.rides.Create(ctx, a.user.ID, services.RideInput{
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

	toast("Ride booked successfully!")
	toast(fmt.Sprintf("%s will pick you up in a %s (%s), $%d",
		ride.Driver.Name, ride.Vehicle.Model, ride.Vehicle.Plate, ride.Price))
	a.scheduleBookingNotice()
	return nil
}
