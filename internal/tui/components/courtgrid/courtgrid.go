// Package courtgrid renders one day's schedule grid and moves a cursor
// over it. Presses bubble up as messages; the component never talks to
// the server itself.
package courtgrid

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/schedule"
)

// PressMsg is emitted when the member presses the selected cell.
type PressMsg struct {
	Cell models.BookingCell
}

// WaitlistJoinMsg asks to join the waiting list for the selected slot.
type WaitlistJoinMsg struct {
	Cell models.BookingCell
}

// WaitlistLeaveMsg asks to leave the waiting list for the selected slot.
type WaitlistLeaveMsg struct {
	Cell models.BookingCell
}

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Press    key.Binding
	Waitlist key.Binding
	Leave    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "book/cancel"),
		),
		Waitlist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "join waiting list"),
		),
		Leave: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "leave waiting list"),
		),
	}
}

const cellWidth = 18

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Width(cellWidth)
	timeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(7)
	availableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Width(cellWidth)
	bookedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Width(cellWidth)
	mineStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Width(cellWidth)
	pastStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(cellWidth)
	cursorStyle    = lipgloss.NewStyle().Reverse(true).Width(cellWidth)
)

type Model struct {
	grid   schedule.Grid
	member models.Member
	keys   KeyMap
	row    int
	col    int
}

func New(member models.Member) Model {
	return Model{member: member, keys: DefaultKeyMap()}
}

// SetGrid swaps in a freshly built grid and keeps the cursor inside it.
func (m *Model) SetGrid(g schedule.Grid) {
	m.grid = g
	m.clampCursor()
}

func (m *Model) SetMember(member models.Member) {
	m.member = member
}

func (m *Model) clampCursor() {
	if m.row >= len(m.grid.Rows) {
		m.row = len(m.grid.Rows) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	cols := len(m.grid.Courts)
	if m.col >= cols {
		m.col = cols - 1
	}
	if m.col < 0 {
		m.col = 0
	}
}

// Selected returns the cell under the cursor.
func (m Model) Selected() (models.BookingCell, bool) {
	return m.grid.At(m.row, m.col)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.row--
	case key.Matches(keyMsg, m.keys.Down):
		m.row++
	case key.Matches(keyMsg, m.keys.Left):
		m.col--
	case key.Matches(keyMsg, m.keys.Right):
		m.col++
	case key.Matches(keyMsg, m.keys.Press):
		if cell, ok := m.Selected(); ok {
			return m, func() tea.Msg { return PressMsg{Cell: cell} }
		}
	case key.Matches(keyMsg, m.keys.Waitlist):
		// The waiting list is for slots someone else holds.
		if cell, ok := m.Selected(); ok && cell.State == models.CellBooked && cell.PlayerName != m.member.FullName() {
			return m, func() tea.Msg { return WaitlistJoinMsg{Cell: cell} }
		}
	case key.Matches(keyMsg, m.keys.Leave):
		if cell, ok := m.Selected(); ok {
			return m, func() tea.Msg { return WaitlistLeaveMsg{Cell: cell} }
		}
	}
	m.clampCursor()
	return m, nil
}

func (m Model) View() string {
	if len(m.grid.Rows) == 0 {
		return "\n  No bookable slots on this day."
	}

	var b strings.Builder

	b.WriteString(timeStyle.Render("Time"))
	for _, court := range m.grid.Courts {
		b.WriteString(headerStyle.Render(court.Description))
	}
	b.WriteString("\n")

	for r, row := range m.grid.Rows {
		b.WriteString(timeStyle.Render(row.Time))
		for c, cell := range row.Cells {
			b.WriteString(m.renderCell(cell, r == m.row && c == m.col))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCell(cell models.BookingCell, selected bool) string {
	var label string
	var style lipgloss.Style

	switch cell.State {
	case models.CellBooked:
		label = cell.PlayerName
		style = bookedStyle
		if cell.Color != "" {
			style = style.Foreground(lipgloss.Color(cell.Color))
		}
		if cell.PlayerName == m.member.FullName() {
			style = mineStyle
		}
	case models.CellPast:
		label = "-"
		style = pastStyle
	default:
		label = "Available"
		style = availableStyle
	}

	if len(label) > cellWidth-2 {
		label = label[:cellWidth-2]
	}
	if selected {
		return cursorStyle.Render(" " + label)
	}
	return style.Render(" " + label)
}

// Keys exposes the bindings for the global help view.
func (m Model) Keys() KeyMap {
	return m.keys
}
