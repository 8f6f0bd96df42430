package cli

import (
	"context"
	"os"
)

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		toast(err.Error())
		return err
	}

	a.user = user
	toast("Welcome back!")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		toast(err.Error())
		return err
	}
	a.user = nil
	toast("Logged out successfully")
	return nil
}
