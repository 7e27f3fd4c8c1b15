package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/utils"
)

// BookingResult is the server's answer to a booking write. Status
// "already_booked" means another member took the slot first.
type BookingResult struct {
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	UpdatedCredit float64 `json:"updated_credit"`
}

// AlreadyBooked reports whether the write lost a race for the slot.
func (r BookingResult) AlreadyBooked() bool {
	return r.Status == "already_booked"
}

// CreateBooking books a slot. The 409 conflict answer carries the
// already_booked status in its body, so it decodes as a normal result
// rather than an error.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (BookingResult, error) {
	var out BookingResult
	if err := c.postJSON(ctx, "/bookings/add", req, &out, http.StatusConflict); err != nil {
		return BookingResult{}, err
	}
	return out, nil
}

// DeleteBooking cancels one of the member's own bookings.
func (c *Client) DeleteBooking(ctx context.Context, req models.CancelRequest) (BookingResult, error) {
	var out BookingResult
	if err := c.postJSON(ctx, "/bookings/delete", req, &out); err != nil {
		return BookingResult{}, err
	}
	return out, nil
}

// LimitReport is the per-period usage-against-cap answer from the
// limits endpoints. Status is "failed" when any period is over.
type LimitReport struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Limits  []models.LimitRow `json:"limits"`
}

// DailyLimits fetches the member's booking counts against the daily
// caps for one ISO date. The server answers 403 with the same body when
// a cap is exceeded, so that decodes as a report too.
func (c *Client) DailyLimits(ctx context.Context, isoDate string) (LimitReport, error) {
	apiDate, err := utils.ToAPIDate(isoDate)
	if err != nil {
		return LimitReport{}, err
	}
	var out LimitReport
	q := url.Values{"date": {apiDate}}
	if err := c.getJSON(ctx, "/bookings/booking_daily_limits", q, &out, http.StatusForbidden); err != nil {
		return LimitReport{}, err
	}
	return out, nil
}

// WeeklyLimits is DailyLimits over a Monday..Sunday window.
func (c *Client) WeeklyLimits(ctx context.Context, startISO, endISO string) (LimitReport, error) {
	startAPI, err := utils.ToAPIDate(startISO)
	if err != nil {
		return LimitReport{}, err
	}
	endAPI, err := utils.ToAPIDate(endISO)
	if err != nil {
		return LimitReport{}, err
	}
	var out LimitReport
	q := url.Values{"start_date": {startAPI}, "end_date": {endAPI}}
	if err := c.getJSON(ctx, "/bookings/booking_weekly_limits", q, &out, http.StatusForbidden); err != nil {
		return LimitReport{}, err
	}
	return out, nil
}

// MyBookings lists the member's own bookings in the given ISO date
// window, each row carrying what a cancellation needs.
func (c *Client) MyBookings(ctx context.Context, startISO, endISO string) ([]models.MyBooking, error) {
	startAPI, err := utils.ToAPIDate(startISO)
	if err != nil {
		return nil, err
	}
	endAPI, err := utils.ToAPIDate(endISO)
	if err != nil {
		return nil, err
	}
	var out struct {
		Status   string             `json:"status"`
		Bookings []models.MyBooking `json:"bookings"`
	}
	q := url.Values{"start_date": {startAPI}, "end_date": {endAPI}}
	if err := c.getJSON(ctx, "/bookings/viewbookings", q, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}
