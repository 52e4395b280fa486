package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/placeholder/internal/client/client"
	"github.com/dmitrijs2005/placeholder/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login authenticates userName and prints the issued token. An empty
// userName is prompted for. The password is always read from the terminal.
func (a *App) Login(ctx context.Context, userName string) error {
	var err error
	if userName == "" {
		userName, err = getSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, client.ErrInvalidCredentials) {
			return client.ErrInvalidCredentials
		}
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintln(a.out, token)
	return nil
}

// Register creates an account. Missing username and email are prompted for.
func (a *App) Register(ctx context.Context, r client.Registration) error {
	var err error
	if r.Username == "" {
		if r.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
	}
	if r.Email == "" {
		if r.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	r.Password = string(password)

	u, err := a.api.Register(ctx, r)
	if err != nil {
		return fmt.Errorf("register failed: %w", err)
	}

	fmt.Fprintf(a.out, "Registered %s (id=%s)\n", u.Username, u.ID)
	return nil
}

// WhoAmI prints the user token was issued for.
func (a *App) WhoAmI(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token is required")
	}

	u, err := a.api.Me(ctx, token)
	if err != nil {
		return fmt.Errorf("whoami failed: %w", err)
	}

	fmt.Fprintf(a.out, "%s <%s> id=%s\n", u.Username, u.Email, u.ID)
	return nil
}
