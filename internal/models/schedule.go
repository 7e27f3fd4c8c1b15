package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Court is a bookable court with its 1-based server id.
type Court struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// TimeSlot is one bookable time of day for a given date. SlotID is the
// 1-based position the server uses to resolve the actual time; SlotKey
// carries the ISO date the slot list was fetched for.
type TimeSlot struct {
	Time    string `json:"time"` // HH:MM
	SlotID  int    `json:"slot_id"`
	SlotKey string `json:"slot_key"`
}

// Period is a pricing/limit band (normal, peak, ...) with its display color.
type Period struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Color       string `json:"color"` // hex, e.g. "#FFCCCB"
}

// PeriodRow maps one slot time to the period id in force on each court.
// The server sends per-court data under dynamic "court_N" keys.
type PeriodRow struct {
	Time    string
	Periods map[int]int // court id -> period id
}

func (r *PeriodRow) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Periods = make(map[int]int)
	for key, val := range raw {
		if key == "time" {
			if err := json.Unmarshal(val, &r.Time); err != nil {
				return err
			}
			continue
		}
		if !strings.HasPrefix(key, "court_") {
			continue
		}
		court, err := strconv.Atoi(strings.TrimPrefix(key, "court_"))
		if err != nil {
			continue
		}
		var cell struct {
			PeriodID int `json:"period_id"`
		}
		if err := json.Unmarshal(val, &cell); err != nil {
			continue
		}
		r.Periods[court] = cell.PeriodID
	}
	return nil
}

// UsageCell is one (time, court) entry from the usage endpoint: the
// booked player's name, or "Available", plus the period color.
type UsageCell struct {
	Time       string `json:"time"`
	CourtID    int    `json:"court_id"`
	PlayerName string `json:"player_name"`
	Color      string `json:"color"`
}

// CellState is the displayed state of a schedule cell.
type CellState int

const (
	CellAvailable CellState = iota
	CellBooked
	CellPast
)

// BookingCell is a (date, slot, court) triple with everything the click
// handler needs: the resolved period and the server-confirmed occupant.
// State transitions happen only on confirmed server writes.
type BookingCell struct {
	Date       string // ISO YYYY-MM-DD
	Time       string // HH:MM
	SlotID     int
	Court      int
	PeriodID   int
	State      CellState
	PlayerName string
	Color      string
}

// PlayerColumn returns the server-side column name a cancellation
// payload must target for this cell's court.
func (c BookingCell) PlayerColumn() string {
	return "PlayerNo_" + strconv.Itoa(c.Court)
}
