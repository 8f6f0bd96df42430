package cli

import (
	"context"
	"os"
	"strings"
)

func (a *App) Complete(ctx context.Context) error {
	return a.withRideID(ctx, "Ride id to complete", func(ctx context.Context, id string) error {
		_, err := a.rides.Complete(ctx, id)
		return err
	})
}

func (a *App) Cancel(ctx context.Context) error {
	return a.withRideID(ctx, "Ride id to cancel", func(ctx context.Context, id string) error {
		_, err := a.rides.Cancel(ctx, id)
		return err
	})
}

func (a *App) Delete(ctx context.Context) error {
	return a.withRideID(ctx, "Ride id to delete", func(ctx context.Context, id string) error {
		answer, err := GetSimpleText(a.reader, "Are you sure you want to delete this ride? (y/N)", os.Stdout)
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			return nil
		}
		return a.rides.Delete(ctx, id)
	})
}

func (a *App) withRideID(ctx context.Context, prompt string, fn func(ctx context.Context, id string) error) error {
	if !a.isLoggedIn() {
		toast("Please login to continue")
		return nil
	}

	id, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return err
	}

	if err := fn(ctx, id); err != nil {
		toast(err.Error())
		return err
	}
	return nil
}
