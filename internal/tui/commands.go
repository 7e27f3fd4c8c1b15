package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/booking"
	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/schedule"
	"github.com/squashclub/courtbook/internal/utils"
)

type dayLoadedMsg struct {
	day schedule.DayData
	err error
}

type pressResultMsg struct {
	outcome booking.Outcome
	err     error
}

type bookingsLoadedMsg struct {
	bookings []models.MyBooking
	err      error
}

type profileLoadedMsg struct {
	profile models.Profile
	err     error
}

type profileSavedMsg struct {
	err error
}

type waitlistResultMsg struct {
	joined bool
	cell   models.BookingCell
	result api.WaitlistResult
	err    error
}

func (m Model) loadDayCmd() tea.Cmd {
	client, date := m.client, m.selectedDate
	return func() tea.Msg {
		day, err := schedule.Fetch(context.Background(), client, date)
		return dayLoadedMsg{day: day, err: err}
	}
}

func (m Model) pressCmd(cell models.BookingCell) tea.Cmd {
	flow := m.flow
	return func() tea.Msg {
		outcome, err := flow.Click(context.Background(), cell)
		return pressResultMsg{outcome: outcome, err: err}
	}
}

func (m Model) loadBookingsCmd() tea.Cmd {
	client, date := m.client, m.selectedDate
	return func() tea.Msg {
		start, end, err := utils.WeekWindow(date)
		if err != nil {
			return bookingsLoadedMsg{err: err}
		}
		bookings, err := client.MyBookings(context.Background(), start, end)
		return bookingsLoadedMsg{bookings: bookings, err: err}
	}
}

// cancelBookingCmd turns a listed booking into a press on its cell. The
// list rows carry no period id, so it is resolved from the day's period
// feed before the press.
func (m Model) cancelBookingCmd(b models.MyBooking) tea.Cmd {
	client, flow, member := m.client, m.flow, m.member
	return func() tea.Msg {
		ctx := context.Background()
		rows, err := client.PeriodsForDay(ctx, b.DateContainer)
		if err != nil {
			return pressResultMsg{err: err}
		}
		periodID := 0
		for _, row := range rows {
			if row.Time == b.Time {
				periodID = row.Periods[b.Court]
				break
			}
		}
		cell := models.BookingCell{
			Date:       b.DateContainer,
			Time:       b.Time,
			SlotID:     b.SlotID,
			Court:      b.Court,
			PeriodID:   periodID,
			State:      models.CellBooked,
			PlayerName: member.FullName(),
		}
		outcome, err := flow.Click(ctx, cell)
		return pressResultMsg{outcome: outcome, err: err}
	}
}

func (m Model) loadProfileCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		profile, err := client.Profile(context.Background())
		return profileLoadedMsg{profile: profile, err: err}
	}
}

func (m Model) saveProfileCmd(upd api.ProfileUpdate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return profileSavedMsg{err: client.UpdateProfile(context.Background(), upd)}
	}
}

func (m Model) waitlistJoinCmd(cell models.BookingCell) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.WaitlistAdd(context.Background(), cell.Date, cell.Time)
		return waitlistResultMsg{joined: true, cell: cell, result: result, err: err}
	}
}

func (m Model) waitlistLeaveCmd(cell models.BookingCell) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.WaitlistRemove(context.Background(), cell.Date, cell.Time)
		return waitlistResultMsg{joined: false, cell: cell, err: err}
	}
}
