package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/squashclub/courtbook/internal/booking"
	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/utils"
)

type BookingsCmd struct {
	Date string `arg:"" help:"Any date inside the week to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *BookingsCmd) Run(ctx *Context) error {
	isoDate, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	weekStart, weekEnd, err := utils.WeekWindow(isoDate)
	if err != nil {
		return err
	}

	bg := context.Background()
	client, member, err := ctx.Connect(bg)
	if err != nil {
		return err
	}

	bookings, err := client.MyBookings(bg, weekStart, weekEnd)
	if err != nil {
		return err
	}

	fmt.Printf("Bookings for %s, week %s to %s:\n\n", member.FullName(), weekStart, weekEnd)
	if len(bookings) == 0 {
		fmt.Println("  No bookings this week")
		return nil
	}
	for _, b := range bookings {
		fmt.Printf("  %s  %s  %s\n", b.Date, b.Time, b.CourtDescription)
	}
	return nil
}

type LimitsCmd struct {
	Date string `arg:"" help:"Date to check (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
}

func (c *LimitsCmd) Run(ctx *Context) error {
	isoDate, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	bg := context.Background()
	client, _, err := ctx.Connect(bg)
	if err != nil {
		return err
	}

	// No slot is in play here, so pass no period: the command reports
	// usage instead of deciding a booking.
	result, err := booking.CheckLimits(bg, client, isoDate, 0)
	if err != nil {
		return err
	}

	fmt.Printf("Booking limits for %s:\n", isoDate)
	printLimitRows("Daily", result.Daily)
	printLimitRows("Weekly", result.Weekly)

	capped := cappedPeriods(result.Daily, result.Weekly)
	if len(capped) > 0 {
		fmt.Printf("\nAt their cap: %s. Slots in these periods cannot be booked.\n", strings.Join(capped, ", "))
	} else {
		fmt.Println("\nAll periods are within their caps.")
	}
	return nil
}

func cappedPeriods(reports ...[]models.LimitRow) []string {
	var names []string
	seen := map[string]bool{}
	for _, rows := range reports {
		for _, row := range rows {
			if booking.AtCap(row) && !seen[row.PeriodDescription] {
				seen[row.PeriodDescription] = true
				names = append(names, row.PeriodDescription)
			}
		}
	}
	return names
}
