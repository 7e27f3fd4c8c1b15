package cli

import (
	"context"
	"fmt"

	"github.com/squashclub/courtbook/internal/constants"
	"github.com/squashclub/courtbook/internal/storage"
)

type WaitlistAddCmd struct {
	Date string `arg:"" help:"Date of the full slot (YYYY-MM-DD, 'today' or 'tomorrow')."`
	Time string `arg:"" help:"Slot time (HH:MM)."`
}

func (c *WaitlistAddCmd) Run(ctx *Context) error {
	isoDate, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	bg := context.Background()
	client, _, err := ctx.Connect(bg)
	if err != nil {
		return err
	}

	result, err := client.WaitlistAdd(bg, isoDate, c.Time)
	if err != nil {
		return err
	}
	if result.AlreadyInList {
		fmt.Printf("Already on the waiting list for %s at %s.\n", isoDate, c.Time)
		return nil
	}

	ctx.recordWaitlist(constants.ActionWaitlistAdd, isoDate, c.Time, result.Message)
	fmt.Printf("Added to the waiting list for %s at %s.\n", isoDate, c.Time)
	if result.EmailAddress != "" {
		fmt.Printf("You will be notified at %s when the slot frees up.\n", result.EmailAddress)
	}
	return nil
}

type WaitlistRemoveCmd struct {
	Date string `arg:"" help:"Date of the slot (YYYY-MM-DD, 'today' or 'tomorrow')."`
	Time string `arg:"" help:"Slot time (HH:MM)."`
}

func (c *WaitlistRemoveCmd) Run(ctx *Context) error {
	isoDate, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	bg := context.Background()
	client, _, err := ctx.Connect(bg)
	if err != nil {
		return err
	}

	if err := client.WaitlistRemove(bg, isoDate, c.Time); err != nil {
		return err
	}

	ctx.recordWaitlist(constants.ActionWaitlistRemove, isoDate, c.Time, "")
	fmt.Printf("Removed from the waiting list for %s at %s.\n", isoDate, c.Time)
	return nil
}

func (ctx *Context) recordWaitlist(action, isoDate, slotTime, message string) {
	err := ctx.Store.AppendJournal(storage.JournalEntry{
		Action:  action,
		Date:    isoDate,
		Time:    slotTime,
		Outcome: "ok",
		Message: message,
	})
	if err != nil {
		fmt.Printf("Warning: journal write failed: %v\n", err)
	}
}
