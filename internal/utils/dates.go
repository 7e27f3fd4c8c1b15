package utils

import (
	"fmt"
	"time"

	"github.com/squashclub/courtbook/internal/constants"
)

// ToAPIDate converts an internal ISO date (YYYY-MM-DD) to the
// dd/MM/yyyy form the booking server expects on the wire.
func ToAPIDate(iso string) (string, error) {
	t, err := time.Parse(constants.DateFormat, iso)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", iso, err)
	}
	return t.Format(constants.APIDateFormat), nil
}

// FromAPIDate converts a dd/MM/yyyy wire date back to ISO form.
func FromAPIDate(apiDate string) (string, error) {
	t, err := time.Parse(constants.APIDateFormat, apiDate)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", apiDate, err)
	}
	return t.Format(constants.DateFormat), nil
}

// isoWeekday maps a date to the 1..7 scheme the limits use: Monday is 1
// and Sunday is 7, so a Sunday still belongs to the week it closes.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeekWindow returns the Monday and Sunday (both ISO) of the week
// containing the given ISO date.
func WeekWindow(iso string) (start, end string, err error) {
	t, err := time.Parse(constants.DateFormat, iso)
	if err != nil {
		return "", "", fmt.Errorf("invalid date %q: %w", iso, err)
	}
	monday := t.AddDate(0, 0, -(isoWeekday(t) - 1))
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(constants.DateFormat), sunday.Format(constants.DateFormat), nil
}

// WeekStrip returns the seven ISO dates (Monday through Sunday) of the
// week containing the given ISO date.
func WeekStrip(iso string) ([]string, error) {
	start, _, err := WeekWindow(iso)
	if err != nil {
		return nil, err
	}
	monday, _ := time.Parse(constants.DateFormat, start)
	days := make([]string, constants.DaysPerWeek)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i).Format(constants.DateFormat)
	}
	return days, nil
}

// SlotTime combines an ISO date and an HH:MM slot time into a local
// time.Time.
func SlotTime(iso, hhmm string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, iso+" "+hhmm, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot time %q %q: %w", iso, hhmm, err)
	}
	return t, nil
}

// IsPast reports whether the slot at date+time has already started.
// Unparseable inputs count as past so they can never be booked.
func IsPast(iso, hhmm string, now time.Time) bool {
	t, err := SlotTime(iso, hhmm)
	if err != nil {
		return true
	}
	return t.Before(now)
}

// AddDays shifts an ISO date by n days.
func AddDays(iso string, n int) (string, error) {
	t, err := time.Parse(constants.DateFormat, iso)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", iso, err)
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}
