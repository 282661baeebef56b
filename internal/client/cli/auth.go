package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/staffdesk/staffdesk/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and attempts to authenticate. On failure the
// server's message (when one was given) is shown and the failed state is
// acknowledged so the session returns to anonymous.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		snap := a.session.Snapshot()
		a.log.Error().Msgf("Login failed: %s", snap.Reason)
		a.session.Acknowledge()
		return err
	}

	fmt.Println("Logged in as", a.session.Snapshot().Identity.Username)
	return nil
}

// Register prompts for account details and signs up. Registration followed by
// a failed automatic login is still reported as a successful signup.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	err = a.session.Register(ctx, username, email, password)
	switch {
	case err == nil:
		fmt.Println("Registered and logged in as", username)
	case errors.Is(err, session.ErrAutoLoginFailed):
		fmt.Println("Registered! Please log in.")
	default:
		snap := a.session.Snapshot()
		a.log.Error().Msgf("Registration failed: %s", snap.Reason)
		a.session.Acknowledge()
	}
	return err
}

// Logout clears the persisted token and resets the session. Idempotent.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	fmt.Println("Logged out")
	return nil
}

// Whoami prints the authenticated identity and its roles.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.State != session.StateAuthenticated {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s %v\n", snap.Identity.Username, snap.Identity.Roles)
	return nil
}
