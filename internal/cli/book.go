package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/squashclub/courtbook/internal/booking"
	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/schedule"
)

type BookCmd struct {
	Date  string `arg:"" help:"Date of the slot (YYYY-MM-DD, 'today' or 'tomorrow')."`
	Time  string `arg:"" help:"Slot time (HH:MM)."`
	Court int    `arg:"" help:"Court number."`
}

func (c *BookCmd) Run(ctx *Context) error {
	return pressSlot(ctx, c.Date, c.Time, c.Court, false)
}

type CancelCmd struct {
	Date  string `arg:"" help:"Date of the booking (YYYY-MM-DD, 'today' or 'tomorrow')."`
	Time  string `arg:"" help:"Slot time (HH:MM)."`
	Court int    `arg:"" help:"Court number."`
}

func (c *CancelCmd) Run(ctx *Context) error {
	return pressSlot(ctx, c.Date, c.Time, c.Court, true)
}

// pressSlot runs the shared click flow for book and cancel; the flow
// itself decides which one applies from the cell state.
func pressSlot(ctx *Context, date, slotTime string, court int, expectCancel bool) error {
	isoDate, err := resolveDate(date)
	if err != nil {
		return err
	}

	bg := context.Background()
	client, member, err := ctx.Connect(bg)
	if err != nil {
		return err
	}

	day, err := fetchDay(bg, client, isoDate)
	if err != nil {
		return err
	}
	grid := schedule.Build(day, time.Now())

	cell, err := findCell(grid, slotTime, court)
	if err != nil {
		return err
	}

	if expectCancel && cell.State != models.CellBooked {
		return fmt.Errorf("no booking at %s on court %d", slotTime, court)
	}
	if expectCancel && cell.PlayerName != member.FullName() {
		return fmt.Errorf("the booking at %s on court %d is not yours", slotTime, court)
	}
	if !expectCancel && cell.State == models.CellBooked {
		if cell.PlayerName == member.FullName() {
			return fmt.Errorf("you already hold %s on court %d, use 'courtbook cancel' to release it", slotTime, court)
		}
		return fmt.Errorf("%s on court %d is already booked", slotTime, court)
	}

	outcome, err := ctx.NewFlow(client).Click(bg, cell)
	if err != nil {
		return err
	}
	printOutcome(outcome)
	return nil
}

func printOutcome(outcome booking.Outcome) {
	switch outcome.Kind {
	case booking.OutcomeBooked:
		fmt.Printf("Booked. Lights credit is now %.2f\n", outcome.UpdatedCredit)
	case booking.OutcomeCancelled:
		fmt.Printf("Cancelled. Lights credit is now %.2f\n", outcome.UpdatedCredit)
	case booking.OutcomeConflict:
		fmt.Println("Too late: the slot was taken by another member.")
	case booking.OutcomeSuppressed:
		fmt.Println("Ignored: an identical request was just sent.")
	case booking.OutcomeBlocked:
		fmt.Printf("Blocked: %s\n", outcome.Message)
		if outcome.Limits != nil {
			printLimitRows("Daily", outcome.Limits.Daily)
			printLimitRows("Weekly", outcome.Limits.Weekly)
		}
	default:
		fmt.Printf("Not possible: %s\n", outcome.Message)
	}
}

func printLimitRows(label string, rows []models.LimitRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Printf("\n%s limits:\n", label)
	for _, row := range rows {
		marker := " "
		if booking.AtCap(row) {
			marker = "!"
		}
		fmt.Printf("  %s %-20s %d of %d\n", marker, row.PeriodDescription, row.BookingsCount, row.Limit)
	}
}
