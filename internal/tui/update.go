package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/booking"
	"github.com/squashclub/courtbook/internal/constants"
	"github.com/squashclub/courtbook/internal/schedule"
	"github.com/squashclub/courtbook/internal/tui/components/courtgrid"
	"github.com/squashclub/courtbook/internal/tui/components/mybookings"
	"github.com/squashclub/courtbook/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bookingsComp.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dayLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// One silent retry per date covers the transient fetch
			// failures a shared schedule screen runs into.
			if m.reloadArmed {
				m.reloadArmed = false
				m.loading = true
				return m, m.loadDayCmd()
			}
			return m.showAlert(msg.err.Error()), nil
		}
		m.gridComp.SetGrid(schedule.Build(msg.day, time.Now()))
		return m, nil

	case pressResultMsg:
		return m.handlePressResult(msg)

	case bookingsLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.bookingsComp.SetBookings(msg.bookings)
		return m, nil

	case profileLoadedMsg:
		if msg.err != nil {
			return m.showAlert(msg.err.Error()), nil
		}
		m.profile = msg.profile
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			return m.showAlert(msg.err.Error()), nil
		}
		m.status = "Profile updated."
		return m, m.loadProfileCmd()

	case waitlistResultMsg:
		if msg.err != nil {
			return m.showAlert(msg.err.Error()), nil
		}
		switch {
		case msg.joined && msg.result.AlreadyInList:
			// Pressing w on a slot you already queue for offers the
			// way out instead of an error.
			m.previousState = m.state
			m.state = StateWaitlistConfirm
			m.waitlistCell = msg.cell
		case msg.joined:
			m.status = fmt.Sprintf("On the waiting list, we will mail %s when the slot frees up.", msg.result.EmailAddress)
		default:
			m.status = "Left the waiting list."
		}
		return m, nil

	case courtgrid.PressMsg:
		m.status = "Sending..."
		return m, m.pressCmd(msg.Cell)

	case courtgrid.WaitlistJoinMsg:
		return m, m.waitlistJoinCmd(msg.Cell)

	case courtgrid.WaitlistLeaveMsg:
		return m, m.waitlistLeaveCmd(msg.Cell)

	case mybookings.CancelMsg:
		m.status = "Cancelling..."
		return m, m.cancelBookingCmd(msg.Booking)
	}

	if m.state == StateEditProfile && m.profileForm != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == StateEditProfile && m.profileForm != nil {
		return m.updateForm(msg)
	}

	// Modal states swallow everything and dismiss on any close key.
	if m.state == StateAlert || m.state == StateLimits {
		switch msg.String() {
		case "enter", "esc", "q", " ":
			m.state = m.previousState
			m.alert = ""
			m.limits = nil
		}
		return m, nil
	}
	if m.state == StateWaitlistConfirm {
		switch msg.String() {
		case "y", "Y":
			cell := m.waitlistCell
			m.state = m.previousState
			return m, m.waitlistLeaveCmd(cell)
		case "n", "N", "esc", "enter":
			m.state = m.previousState
		}
		return m, nil
	}

	filtering := m.state == StateBookings && m.bookingsComp.Filtering()
	if !filtering {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			return m.switchTab(1)
		case key.Matches(msg, m.keys.ShiftTab):
			return m.switchTab(-1)
		case key.Matches(msg, m.keys.PrevDay):
			if m.state == StateSchedule {
				return m.gotoDay(-1)
			}
		case key.Matches(msg, m.keys.NextDay):
			if m.state == StateSchedule {
				return m.gotoDay(1)
			}
		case key.Matches(msg, m.keys.Today):
			if m.state == StateSchedule {
				m.selectedDate = time.Now().Format(constants.DateFormat)
				return m.reloadDay()
			}
		case key.Matches(msg, m.keys.Refresh):
			if m.state == StateSchedule {
				return m.reloadDay()
			}
			if m.state == StateBookings {
				return m, m.loadBookingsCmd()
			}
			if m.state == StateProfile {
				return m, m.loadProfileCmd()
			}
		case key.Matches(msg, m.keys.Edit):
			if m.state == StateProfile {
				return m.startProfileEdit()
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateSchedule:
		m.gridComp, cmd = m.gridComp.Update(msg)
	case StateBookings:
		m.bookingsComp, cmd = m.bookingsComp.Update(msg)
	}
	return m, cmd
}

func (m Model) handlePressResult(msg pressResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.showAlert(msg.err.Error()), nil
	}

	out := msg.outcome
	switch out.Kind {
	case booking.OutcomeBooked, booking.OutcomeCancelled:
		if out.CreditKnown {
			m.member.Credit = out.UpdatedCredit
			m.gridComp.SetMember(m.member)
		}
		if out.Kind == booking.OutcomeBooked {
			m.status = "Booked."
		} else {
			m.status = "Cancelled."
		}
		if out.Message != "" {
			m.status = out.Message
		}
		return m, tea.Batch(m.reloadDayCmd(), m.loadBookingsCmd())

	case booking.OutcomeConflict:
		m = m.showAlert("That slot was just taken by another member.")
		return m, m.reloadDayCmd()

	case booking.OutcomeBlocked:
		if out.Limits != nil {
			m.previousState = m.state
			m.state = StateLimits
			m.limits = out.Limits
			return m, nil
		}
		return m.showAlert(out.Message), nil

	case booking.OutcomeSuppressed:
		m.status = out.Message
		return m, nil

	default: // OutcomeRejected
		m.status = out.Message
		return m, nil
	}
}

func (m Model) switchTab(dir int) (tea.Model, tea.Cmd) {
	next := (int(m.state) + dir + len(tabNames)) % len(tabNames)
	m.state = SessionState(next)
	m.status = ""
	switch m.state {
	case StateBookings:
		return m, m.loadBookingsCmd()
	case StateProfile:
		return m, m.loadProfileCmd()
	}
	return m, nil
}

func (m Model) gotoDay(days int) (tea.Model, tea.Cmd) {
	next, err := utils.AddDays(m.selectedDate, days)
	if err != nil {
		return m.showAlert(err.Error()), nil
	}
	m.selectedDate = next
	return m.reloadDay()
}

func (m Model) reloadDay() (tea.Model, tea.Cmd) {
	m.loading = true
	m.status = ""
	m.reloadArmed = true
	return m, m.loadDayCmd()
}

// reloadDayCmd refreshes the grid without re-arming the silent retry.
func (m Model) reloadDayCmd() tea.Cmd {
	return m.loadDayCmd()
}

func (m Model) startProfileEdit() (tea.Model, tea.Cmd) {
	m.profileDraft = &api.ProfileUpdate{
		FirstName: m.profile.FirstName,
		LastName:  m.profile.Surname,
		CellPhone: m.profile.CellPhone,
		Email:     m.profile.Email,
		Credit:    m.profile.Credit,
	}
	m.profileForm = newProfileForm(m.profileDraft)
	m.state = StateEditProfile
	return m, m.profileForm.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.profileForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.profileForm = f
	}

	switch m.profileForm.State {
	case huh.StateCompleted:
		upd := *m.profileDraft
		m.profileForm = nil
		m.state = StateProfile
		m.status = "Saving..."
		return m, m.saveProfileCmd(upd)
	case huh.StateAborted:
		m.profileForm = nil
		m.state = StateProfile
		return m, nil
	}
	return m, cmd
}

func (m Model) showAlert(text string) Model {
	if m.state != StateAlert {
		m.previousState = m.state
	}
	m.state = StateAlert
	m.alert = text
	m.loading = false
	return m
}
