// Package mybookings lists the member's own bookings for the week.
package mybookings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/squashclub/courtbook/internal/models"
)

// CancelMsg asks to cancel the selected booking.
type CancelMsg struct {
	Booking models.MyBooking
}

type Item struct {
	Booking models.MyBooking
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %s", i.Booking.Date, i.Booking.Time)
}

func (i Item) Description() string {
	return i.Booking.CourtDescription
}

func (i Item) FilterValue() string { return i.Booking.Date }

type KeyMap struct {
	Cancel key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cancel booking"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(bookings []models.MyBooking, width, height int) Model {
	l := list.New(toItems(bookings), list.NewDefaultDelegate(), width, height)
	l.Title = "My Bookings"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is handled globally

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Cancel}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Cancel}
	}

	return Model{list: l, keys: keys}
}

func toItems(bookings []models.MyBooking) []list.Item {
	items := make([]list.Item, len(bookings))
	for i, b := range bookings {
		items[i] = Item{Booking: b}
	}
	return items
}

func (m *Model) SetBookings(bookings []models.MyBooking) {
	m.list.SetItems(toItems(bookings))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Cancel) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return CancelMsg{Booking: i.Booking} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No bookings this week."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keystrokes for a
// filter, so global bindings can stand down.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
