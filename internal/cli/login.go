package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/keyring"
	"github.com/squashclub/courtbook/internal/logger"
)

type LoginCmd struct {
	Username string `arg:"" optional:"" help:"Member number used to sign in."`
	Server   string `help:"Booking server URL. Defaults to the saved setting."`
	Password string `help:"Password. Prompted for when omitted." env:"COURTBOOK_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	if c.Server != "" {
		settings.ServerURL = c.Server
	}
	if c.Username != "" {
		settings.Username = c.Username
	}
	if settings.Username == "" {
		return fmt.Errorf("no member number given, run 'courtbook login <member-no>'")
	}

	password := c.Password
	if password == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Password for member %s", settings.Username)).
				EchoMode(huh.EchoModePassword).
				Value(&password),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	client, err := api.New(settings.ServerURL)
	if err != nil {
		return err
	}
	member, err := client.Login(context.Background(), settings.Username, password)
	if err != nil {
		return err
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}
	if err := keyring.SetPassword(settings.Username, password); err != nil {
		// The session worked, so only the convenience of a saved
		// password is lost.
		fmt.Printf("Warning: could not save password: %v\n", err)
	}

	fmt.Printf("Welcome %s. Lights credit: %.2f\n", member.FullName(), member.Credit)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.Username == "" {
		fmt.Println("Not logged in.")
		return nil
	}

	// Best effort: tell the server too, so a session cookie lying
	// around in a jar elsewhere is invalidated.
	if client, err := api.New(settings.ServerURL); err == nil {
		if err := client.Logout(context.Background()); err != nil {
			logger.Debug("server logout failed", "err", err)
		}
	}

	if err := keyring.DeletePassword(settings.Username); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	settings.Username = ""
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}
