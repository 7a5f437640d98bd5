package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	email, err := a.in.text("Email")
	if err != nil {
		return err
	}

	password, err := a.in.password()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s, you can login now\n", u.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := a.in.text("Email")
	if err != nil {
		return err
	}

	password, err := a.in.password()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		return err
	}

	a.email = email
	fmt.Fprintf(a.out, "Logged in as %s\n", email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.email = ""
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// report prints a command error. A rejected token ends the local session.
func (a *App) report(err error) {
	fmt.Fprintf(a.out, "Error: %v\n", err)

	if errors.Is(err, client.ErrUnauthorized) && a.isLoggedIn() {
		a.email = ""
		if err := a.authService.Logout(context.Background()); err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
		fmt.Fprintln(a.out, "Session is no longer valid, please login again")
	}
}
