// Package tui is the interactive schedule screen: a week of court
// grids, the member's own bookings, and a profile editor, all backed by
// the same click flow the CLI commands use.
package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/booking"
	"github.com/squashclub/courtbook/internal/constants"
	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/tui/components/courtgrid"
	"github.com/squashclub/courtbook/internal/tui/components/mybookings"
)

type SessionState int

const (
	StateSchedule SessionState = iota
	StateBookings
	StateProfile
	StateEditProfile
	StateAlert
	StateLimits
	StateWaitlistConfirm
)

var tabNames = []string{"Schedule", "Bookings", "Profile"}

type Model struct {
	client *api.Client
	flow   *booking.Flow
	member models.Member

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	width         int
	height        int

	selectedDate string // ISO
	gridComp     courtgrid.Model
	bookingsComp mybookings.Model
	profile      models.Profile
	profileDraft *api.ProfileUpdate
	profileForm  *huh.Form

	loading bool
	status  string
	alert   string
	limits  *booking.LimitResult

	// waitlistCell is the slot behind the leave-the-list confirm popup.
	waitlistCell models.BookingCell

	// reloadArmed allows one silent re-fetch per date selection before
	// a fetch error is surfaced.
	reloadArmed bool

	quitting bool
}

func NewModel(client *api.Client, member models.Member, flow *booking.Flow) Model {
	return Model{
		client:       client,
		flow:         flow,
		member:       member,
		state:        StateSchedule,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		selectedDate: time.Now().Format(constants.DateFormat),
		gridComp:     courtgrid.New(member),
		bookingsComp: mybookings.New(nil, 0, 0),
		loading:      true,
		reloadArmed:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadDayCmd()
}

func newProfileForm(draft *api.ProfileUpdate) *huh.Form {
	notBlank := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errFieldRequired(field)
			}
			return nil
		}
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&draft.FirstName).
				Validate(notBlank("first name")),
			huh.NewInput().
				Title("Last name").
				Value(&draft.LastName).
				Validate(notBlank("last name")),
			huh.NewInput().
				Title("Cell phone").
				Value(&draft.CellPhone),
			huh.NewInput().
				Title("Email").
				Value(&draft.Email).
				Validate(validEmail),
		),
	)
}

type errFieldRequired string

func (e errFieldRequired) Error() string {
	return string(e) + " cannot be blank"
}

var errInvalidEmail = errors.New("enter a valid email address")

// validEmail mirrors the server's check: exactly one "@" with text on
// both sides.
func validEmail(s string) error {
	if strings.Count(s, "@") != 1 || strings.HasPrefix(s, "@") || strings.HasSuffix(s, "@") {
		return errInvalidEmail
	}
	return nil
}
