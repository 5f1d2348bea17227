package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/alumniauth/internal/client/client"
	"github.com/dmitrijs2005/alumniauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for a name, email and password and creates an account.
// The new session has an access token only; log in to get a refresh token.
func (a *App) Signup(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Signup(ctx, fullName, email, string(password)); err != nil {
		return err
	}

	a.email = email
	printf(a.out, "Account created, you are logged in.\n")
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.email = email
	a.logger.Debug(ctx, "logged in", "email", email)
	printf(a.out, "Login successful.\n")
	return nil
}

// Profile prints the current user's profile.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.api.Profile(ctx)
	if err != nil {
		if errors.Is(err, client.ErrSessionExpired) {
			a.email = ""
		}
		return err
	}

	printf(a.out, "ID:        %d\nFull name: %s\nEmail:     %s\n", p.ID, p.FullName, p.Email)
	return nil
}

// Refresh obtains a new access token with the stored refresh token.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.api.Refresh(ctx); err != nil {
		if errors.Is(err, client.ErrSessionExpired) {
			a.email = ""
		}
		return err
	}
	printf(a.out, "Access token refreshed.\n")
	return nil
}

// Status reports whether the server and its database are reachable.
func (a *App) Status(ctx context.Context) error {
	s, err := a.api.DatabaseStatus(ctx)
	if err != nil {
		return err
	}
	printf(a.out, "%s (%s)\n", s.Message, s.Time.Local().Format(time.RFC3339))
	return nil
}

// Logout forgets the session tokens.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.email = ""
	printf(a.out, "Logged out.\n")
	return nil
}

// describe turns client errors into short user-facing text.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrUnauthorized):
		return "not logged in"
	case errors.Is(err, client.ErrSessionExpired):
		return "session expired, please log in again"
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return err.Error()
	}
}
