package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/squashclub/courtbook/internal/booking"
	"github.com/squashclub/courtbook/internal/constants"
	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateAlert:
		return m.overlay(m.alertView())
	case StateLimits:
		return m.overlay(m.limitsView())
	case StateWaitlistConfirm:
		return m.overlay(m.waitlistConfirmView())
	case StateEditProfile:
		if m.profileForm != nil {
			return docStyle.Render(m.tabsView() + "\n\n" + m.profileForm.View())
		}
	}

	var body string
	switch m.state {
	case StateSchedule:
		body = m.scheduleView()
	case StateBookings:
		body = m.bookingsComp.View()
	case StateProfile:
		body = m.profileView()
	}

	sections := []string{
		m.tabsView(),
		m.headerView(),
		body,
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return docStyle.Render(strings.Join(sections, "\n\n"))
}

func (m Model) tabsView() string {
	var tabs []string
	for i, name := range tabNames {
		style := inactiveTabStyle
		if active := m.activeTab(); i == active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// activeTab maps modal and edit states back to the tab they sit over.
func (m Model) activeTab() int {
	switch m.state {
	case StateSchedule, StateBookings, StateProfile:
		return int(m.state)
	case StateEditProfile:
		return int(StateProfile)
	default:
		return int(m.previousState)
	}
}

func (m Model) headerView() string {
	day, err := time.Parse(constants.DateFormat, m.selectedDate)
	label := m.selectedDate
	if err == nil {
		label = day.Format("Mon 02 Jan 2006")
	}
	return headerStyle.Render(fmt.Sprintf("%s    %s    credit %.2f",
		label, m.member.FullName(), m.member.Credit))
}

func (m Model) scheduleView() string {
	strip := m.weekStripView()
	if m.loading {
		return strip + "\n\n  Loading schedule..."
	}
	return strip + "\n\n" + m.gridComp.View()
}

// weekStripView shows the Monday..Sunday strip around the selected
// date.
func (m Model) weekStripView() string {
	days, err := utils.WeekStrip(m.selectedDate)
	if err != nil {
		return ""
	}
	var parts []string
	for _, iso := range days {
		d, err := time.Parse(constants.DateFormat, iso)
		if err != nil {
			continue
		}
		label := d.Format("Mon 02")
		if iso == m.selectedDate {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) profileView() string {
	p := m.profile
	lines := []string{
		fmt.Sprintf("Member no   %d", p.MemberNo),
		fmt.Sprintf("First name  %s", p.FirstName),
		fmt.Sprintf("Last name   %s", p.Surname),
		fmt.Sprintf("Cell phone  %s", p.CellPhone),
		fmt.Sprintf("Email       %s", p.Email),
		fmt.Sprintf("Credit      %.2f", p.Credit),
		"",
		"Press e to edit.",
	}
	return strings.Join(lines, "\n")
}

func (m Model) waitlistConfirmView() string {
	text := fmt.Sprintf("You are already on the waiting list for %s at %s.\n\nLeave the list? (y/n)",
		m.waitlistCell.Date, m.waitlistCell.Time)
	return modalStyle.Render(text)
}

func (m Model) alertView() string {
	return modalStyle.Render(dangerStyle.Render(m.alert) + "\n\nPress enter to continue.")
}

func (m Model) limitsView() string {
	var b strings.Builder
	b.WriteString(dangerStyle.Render("Booking limit reached") + "\n\n")
	if m.limits != nil {
		if m.limits.Reason != "" {
			b.WriteString(m.limits.Reason + "\n\n")
		}
		writeLimitRows(&b, "Daily", m.limits.Daily)
		writeLimitRows(&b, "Weekly", m.limits.Weekly)
	}
	b.WriteString("\nPress enter to continue.")
	return modalStyle.Render(b.String())
}

func writeLimitRows(b *strings.Builder, title string, rows []models.LimitRow) {
	if len(rows) == 0 {
		return
	}
	b.WriteString(title + "\n")
	for _, row := range rows {
		marker := " "
		if booking.AtCap(row) {
			marker = "!"
		}
		fmt.Fprintf(b, "  %s %-20s %d of %d\n", marker, row.PeriodDescription, row.BookingsCount, row.Limit)
	}
}

func (m Model) overlay(modal string) string {
	w, h := m.width, m.height
	if w <= 0 {
		w = lipgloss.Width(modal) + 4
	}
	if h <= 0 {
		h = lipgloss.Height(modal) + 2
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modal)
}
