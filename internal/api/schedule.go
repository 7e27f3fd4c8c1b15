package api

import (
	"context"
	"net/url"

	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/utils"
)

// Courts lists the club's courts with their 1-based ids.
func (c *Client) Courts(ctx context.Context) ([]models.Court, error) {
	var out struct {
		Courts []models.Court `json:"courts"`
	}
	if err := c.getJSON(ctx, "/bookings/descriptions", nil, &out); err != nil {
		return nil, err
	}
	return out.Courts, nil
}

// TimeSlots fetches the bookable times for one ISO date. Slot ids are
// per-day positions, so they must never be reused across dates.
func (c *Client) TimeSlots(ctx context.Context, isoDate string) ([]models.TimeSlot, error) {
	apiDate, err := utils.ToAPIDate(isoDate)
	if err != nil {
		return nil, err
	}
	var out struct {
		TimeSlots []models.TimeSlot `json:"time_slots"`
	}
	q := url.Values{"date": {apiDate}}
	if err := c.getJSON(ctx, "/main/courts/time_slots", q, &out); err != nil {
		return nil, err
	}
	return out.TimeSlots, nil
}

// Periods lists all pricing periods with their hex colors.
func (c *Client) Periods(ctx context.Context) ([]models.Period, error) {
	var out struct {
		Status string          `json:"status"`
		Data   []models.Period `json:"data"`
	}
	if err := c.getJSON(ctx, "/periods/get_periods_with_hex", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// PeriodsForDay fetches, per slot time, the period in force on each
// court. Cancellation fees depend on the period id resolved here.
func (c *Client) PeriodsForDay(ctx context.Context, isoDate string) ([]models.PeriodRow, error) {
	apiDate, err := utils.ToAPIDate(isoDate)
	if err != nil {
		return nil, err
	}
	var rows []models.PeriodRow
	q := url.Values{"date": {apiDate}}
	if err := c.getJSON(ctx, "/main/courts/periods_for_day", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Usage fetches the occupancy of every (time, court) cell for one date:
// the booked player's name or "Available", plus the period color.
func (c *Client) Usage(ctx context.Context, isoDate string) ([]models.UsageCell, error) {
	apiDate, err := utils.ToAPIDate(isoDate)
	if err != nil {
		return nil, err
	}
	var cells []models.UsageCell
	q := url.Values{"date": {apiDate}}
	if err := c.getJSON(ctx, "/main/courts/periods_usage", q, &cells); err != nil {
		return nil, err
	}
	return cells, nil
}
