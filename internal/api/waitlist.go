package api

import (
	"context"

	"github.com/squashclub/courtbook/internal/utils"
)

// WaitlistResult is the answer to a waiting-list add. EmailAddress is
// where the freed-slot notification will go.
type WaitlistResult struct {
	Message       string `json:"message"`
	EmailAddress  string `json:"email_address"`
	AlreadyInList bool   `json:"already_in_list"`
}

type waitlistRequest struct {
	Date     string `json:"date"` // dd/MM/yyyy
	TimeSlot string `json:"time_slot"`
}

// WaitlistAdd joins the waiting list for a slot time on one ISO date.
// Joining twice is not an error; AlreadyInList is set instead.
func (c *Client) WaitlistAdd(ctx context.Context, isoDate, timeSlot string) (WaitlistResult, error) {
	apiDate, err := utils.ToAPIDate(isoDate)
	if err != nil {
		return WaitlistResult{}, err
	}
	var out WaitlistResult
	req := waitlistRequest{Date: apiDate, TimeSlot: timeSlot}
	if err := c.postJSON(ctx, "/waitinglist/add", req, &out); err != nil {
		return WaitlistResult{}, err
	}
	return out, nil
}

// WaitlistRemove leaves the waiting list for a slot time. The list is
// keyed by dd/MM/yyyy dates, so the conversion here is load-bearing.
func (c *Client) WaitlistRemove(ctx context.Context, isoDate, timeSlot string) error {
	apiDate, err := utils.ToAPIDate(isoDate)
	if err != nil {
		return err
	}
	req := waitlistRequest{Date: apiDate, TimeSlot: timeSlot}
	return c.postJSON(ctx, "/waitinglist/remove", req, nil)
}
