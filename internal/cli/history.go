package cli

import (
	"fmt"
	"time"
)

type HistoryCmd struct {
	Limit int `help:"Maximum number of journal entries to show." default:"20"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries, err := ctx.Store.Journal(c.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No booking activity recorded yet.")
		return nil
	}

	for _, entry := range entries {
		when := entry.At.Local().Format(time.DateTime)
		slot := ""
		if entry.Date != "" {
			slot = fmt.Sprintf("  %s %s", entry.Date, entry.Time)
			if entry.Court > 0 {
				slot += fmt.Sprintf(" court %d", entry.Court)
			}
		}
		fmt.Printf("%s  %-15s %-10s%s\n", when, entry.Action, entry.Outcome, slot)
	}
	return nil
}
