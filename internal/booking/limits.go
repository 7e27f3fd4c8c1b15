package booking

import (
	"context"
	"fmt"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/utils"
)

// LimitsAPI is the slice of the server client the checker needs.
type LimitsAPI interface {
	DailyLimits(ctx context.Context, isoDate string) (api.LimitReport, error)
	WeeklyLimits(ctx context.Context, startISO, endISO string) (api.LimitReport, error)
}

// LimitResult carries both limit reports plus the local verdict.
type LimitResult struct {
	Blocked bool
	Reason  string
	Daily   []models.LimitRow
	Weekly  []models.LimitRow
}

// CheckLimits fetches the daily report for the date and the weekly
// report for its Monday..Sunday week, and blocks when the slot's own
// period has reached its cap in either. Other periods never block a
// booking; their rows are still returned so the popup can show the
// whole picture. The server only refuses after a cap is exceeded;
// refusing at the cap keeps the member from going over in the first
// place.
func CheckLimits(ctx context.Context, client LimitsAPI, isoDate string, periodID int) (LimitResult, error) {
	daily, err := client.DailyLimits(ctx, isoDate)
	if err != nil {
		return LimitResult{}, fmt.Errorf("daily limits: %w", err)
	}
	weekStart, weekEnd, err := utils.WeekWindow(isoDate)
	if err != nil {
		return LimitResult{}, err
	}
	weekly, err := client.WeeklyLimits(ctx, weekStart, weekEnd)
	if err != nil {
		return LimitResult{}, fmt.Errorf("weekly limits: %w", err)
	}

	result := LimitResult{Daily: daily.Limits, Weekly: weekly.Limits}
	if row, ok := periodAtCap(daily.Limits, periodID); ok {
		result.Blocked = true
		result.Reason = fmt.Sprintf("daily limit reached for %s (%d of %d)",
			row.PeriodDescription, row.BookingsCount, row.Limit)
		return result, nil
	}
	if row, ok := periodAtCap(weekly.Limits, periodID); ok {
		result.Blocked = true
		result.Reason = fmt.Sprintf("weekly limit reached for %s (%d of %d)",
			row.PeriodDescription, row.BookingsCount, row.Limit)
	}
	return result, nil
}

// AtCap reports whether a period's bookings have reached its cap. A
// zero cap means unlimited.
func AtCap(row models.LimitRow) bool {
	return row.Limit > 0 && row.BookingsCount >= row.Limit
}

// periodAtCap finds the row for the given period id, if it is at cap.
func periodAtCap(rows []models.LimitRow, periodID int) (models.LimitRow, bool) {
	for _, row := range rows {
		if row.PeriodID == periodID && AtCap(row) {
			return row, true
		}
	}
	return models.LimitRow{}, false
}
