package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/schedule"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	isoDate, err := resolveDate(c.Date)
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

	fmt.Printf("Schedule for %s (credit: %.2f)\n\n", isoDate, member.Credit)
	if len(grid.Rows) == 0 {
		fmt.Println("  No bookable slots on this day")
		return nil
	}

	fmt.Printf("%-7s", "Time")
	for _, court := range grid.Courts {
		fmt.Printf("  %-18s", court.Description)
	}
	fmt.Println()

	for _, row := range grid.Rows {
		fmt.Printf("%-7s", row.Time)
		for _, cell := range row.Cells {
			fmt.Printf("  %-18s", describeCell(cell, member))
		}
		fmt.Println()
	}

	printPeriodLegend(bg, client, grid)
	return nil
}

// printPeriodLegend names the tariff periods that appear on the day.
func printPeriodLegend(bg context.Context, client *api.Client, grid schedule.Grid) {
	periods, err := client.Periods(bg)
	if err != nil {
		return
	}
	seen := map[int]bool{}
	for _, row := range grid.Rows {
		for _, cell := range row.Cells {
			seen[cell.PeriodID] = true
		}
	}
	var parts []string
	for _, p := range periods {
		if seen[p.ID] {
			parts = append(parts, fmt.Sprintf("%d=%s", p.ID, p.Description))
		}
	}
	if len(parts) > 0 {
		fmt.Printf("\nPeriods: %s\n", strings.Join(parts, ", "))
	}
}

func describeCell(cell models.BookingCell, member models.Member) string {
	switch cell.State {
	case models.CellBooked:
		if cell.PlayerName == member.FullName() {
			return "* " + cell.PlayerName
		}
		return cell.PlayerName
	case models.CellPast:
		return "-"
	default:
		return "Available"
	}
}
