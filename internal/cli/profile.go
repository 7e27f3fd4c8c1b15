package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/constants"
	"github.com/squashclub/courtbook/internal/storage"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.Connect(bg)
	if err != nil {
		return err
	}

	profile, err := client.Profile(bg)
	if err != nil {
		return err
	}

	fmt.Printf("Member no:  %d\n", profile.MemberNo)
	fmt.Printf("Name:       %s %s\n", profile.FirstName, profile.Surname)
	fmt.Printf("Cell phone: %s\n", profile.CellPhone)
	fmt.Printf("Email:      %s\n", profile.Email)
	fmt.Printf("Credit:     %.2f\n", profile.Credit)
	return nil
}

type ProfileEditCmd struct{}

func (c *ProfileEditCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, _, err := ctx.Connect(bg)
	if err != nil {
		return err
	}

	profile, err := client.Profile(bg)
	if err != nil {
		return err
	}

	upd := api.ProfileUpdate{
		FirstName: profile.FirstName,
		LastName:  profile.Surname,
		CellPhone: profile.CellPhone,
		Email:     profile.Email,
		Credit:    profile.Credit,
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("First name").Value(&upd.FirstName).
			Validate(notBlank("first name")),
		huh.NewInput().Title("Last name").Value(&upd.LastName).
			Validate(notBlank("last name")),
		huh.NewInput().Title("Cell phone").Value(&upd.CellPhone),
		huh.NewInput().Title("Email").Value(&upd.Email).
			Validate(validEmail),
	))
	if err := form.Run(); err != nil {
		return err
	}

	if err := client.UpdateProfile(bg, upd); err != nil {
		return err
	}

	err = ctx.Store.AppendJournal(storage.JournalEntry{
		Action:  constants.ActionProfileUpdate,
		Outcome: "ok",
	})
	if err != nil {
		fmt.Printf("Warning: journal write failed: %v\n", err)
	}

	fmt.Println("Profile updated.")
	return nil
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// validEmail mirrors the server's check: exactly one "@". The waiting
// list refuses members without a usable address, so catching it here
// saves a round trip.
func validEmail(s string) error {
	if s == "" {
		return nil
	}
	if strings.Count(s, "@") != 1 {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
