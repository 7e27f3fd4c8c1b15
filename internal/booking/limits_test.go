package booking

import (
	"context"
	"strings"
	"testing"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/models"
)

type fakeLimits struct {
	daily  api.LimitReport
	weekly api.LimitReport
}

func (s fakeLimits) DailyLimits(ctx context.Context, isoDate string) (api.LimitReport, error) {
	return s.daily, nil
}

func (s fakeLimits) WeeklyLimits(ctx context.Context, startISO, endISO string) (api.LimitReport, error) {
	return s.weekly, nil
}

func report(rows ...models.LimitRow) api.LimitReport {
	return api.LimitReport{Status: "success", Limits: rows}
}

func TestCheckLimits_OnlyTheSlotsPeriodBlocks(t *testing.T) {
	normal := models.LimitRow{PeriodID: 1, PeriodDescription: "Normal", BookingsCount: 1, Limit: 3}
	peak := models.LimitRow{PeriodID: 2, PeriodDescription: "Peak", BookingsCount: 2, Limit: 2}
	srv := fakeLimits{daily: report(normal, peak), weekly: report(normal, peak)}

	result, err := CheckLimits(context.Background(), srv, "2030-01-07", 1)
	if err != nil {
		t.Fatalf("CheckLimits failed: %v", err)
	}
	if result.Blocked {
		t.Errorf("period 1 is under its cap, must not block: %s", result.Reason)
	}
	if len(result.Daily) != 2 || len(result.Weekly) != 2 {
		t.Errorf("all rows must be carried for the popup: %+v", result)
	}

	result, err = CheckLimits(context.Background(), srv, "2030-01-07", 2)
	if err != nil {
		t.Fatalf("CheckLimits failed: %v", err)
	}
	if !result.Blocked {
		t.Fatal("period 2 is at its cap, must block")
	}
	if !strings.Contains(result.Reason, "Peak") {
		t.Errorf("reason must name the blocking period, got %q", result.Reason)
	}
}

func TestCheckLimits_WeeklyCapOnSlotsPeriodBlocks(t *testing.T) {
	srv := fakeLimits{
		daily:  report(models.LimitRow{PeriodID: 1, PeriodDescription: "Normal", BookingsCount: 0, Limit: 2}),
		weekly: report(models.LimitRow{PeriodID: 1, PeriodDescription: "Normal", BookingsCount: 4, Limit: 4}),
	}

	result, err := CheckLimits(context.Background(), srv, "2030-01-07", 1)
	if err != nil {
		t.Fatalf("CheckLimits failed: %v", err)
	}
	if !result.Blocked {
		t.Fatal("weekly cap on the slot's period must block")
	}
	if !strings.Contains(result.Reason, "weekly") {
		t.Errorf("reason must say which window, got %q", result.Reason)
	}
}

func TestCheckLimits_ZeroCapMeansUnlimited(t *testing.T) {
	srv := fakeLimits{
		daily:  report(models.LimitRow{PeriodID: 1, PeriodDescription: "Normal", BookingsCount: 9, Limit: 0}),
		weekly: report(),
	}

	result, err := CheckLimits(context.Background(), srv, "2030-01-07", 1)
	if err != nil {
		t.Fatalf("CheckLimits failed: %v", err)
	}
	if result.Blocked {
		t.Errorf("a zero cap is unlimited, must not block: %s", result.Reason)
	}
}
