package schedule

import (
	"context"
	"fmt"

	"github.com/squashclub/courtbook/internal/models"
)

// Fetcher is the slice of the server client a day grid needs.
type Fetcher interface {
	Courts(ctx context.Context) ([]models.Court, error)
	TimeSlots(ctx context.Context, isoDate string) ([]models.TimeSlot, error)
	PeriodsForDay(ctx context.Context, isoDate string) ([]models.PeriodRow, error)
	Usage(ctx context.Context, isoDate string) ([]models.UsageCell, error)
}

// Fetch pulls the four feeds for one ISO date.
func Fetch(ctx context.Context, f Fetcher, isoDate string) (DayData, error) {
	courts, err := f.Courts(ctx)
	if err != nil {
		return DayData{}, fmt.Errorf("fetch courts: %w", err)
	}
	slots, err := f.TimeSlots(ctx, isoDate)
	if err != nil {
		return DayData{}, fmt.Errorf("fetch time slots: %w", err)
	}
	periods, err := f.PeriodsForDay(ctx, isoDate)
	if err != nil {
		return DayData{}, fmt.Errorf("fetch periods: %w", err)
	}
	usage, err := f.Usage(ctx, isoDate)
	if err != nil {
		return DayData{}, fmt.Errorf("fetch usage: %w", err)
	}
	return DayData{
		Date:    isoDate,
		Courts:  courts,
		Slots:   slots,
		Periods: periods,
		Usage:   usage,
	}, nil
}
