package cli

import (
	"context"
	"os"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.SignUp(ctx, name, email, password)
	if err != nil {
		toast(err.Error())
		return err
	}

	a.user = user
	toast("Account created successfully!")
	return nil
}
