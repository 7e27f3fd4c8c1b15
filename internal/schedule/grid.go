// Package schedule assembles the per-day court grid out of the four
// server feeds: courts, time slots, period rows, and usage cells.
package schedule

import (
	"strings"
	"time"

	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/utils"
)

// DayData bundles everything one day's grid needs. All four feeds must
// come from the same date or the slot ids will not line up.
type DayData struct {
	Date    string // ISO YYYY-MM-DD
	Courts  []models.Court
	Slots   []models.TimeSlot
	Periods []models.PeriodRow
	Usage   []models.UsageCell
}

// Row is one slot time across all courts.
type Row struct {
	Time   string
	SlotID int
	Cells  []models.BookingCell
}

// Grid is the rendered day: rows ordered by slot id, cells ordered by
// court id.
type Grid struct {
	Date   string
	Courts []models.Court
	Rows   []Row
}

// At returns the cell at (row, col), reporting false when the cursor is
// outside the grid.
func (g Grid) At(row, col int) (models.BookingCell, bool) {
	if row < 0 || row >= len(g.Rows) {
		return models.BookingCell{}, false
	}
	cells := g.Rows[row].Cells
	if col < 0 || col >= len(cells) {
		return models.BookingCell{}, false
	}
	return cells[col], true
}

// Build assembles the grid. Usage cells whose player name is empty or
// "Available" render as free; past free slots render as past. A booked
// cell keeps its occupant even when the slot has started, the press
// handler refuses it separately.
func Build(d DayData, now time.Time) Grid {
	usage := indexUsage(d.Usage)
	periods := indexPeriods(d.Periods)

	grid := Grid{Date: d.Date, Courts: d.Courts}
	for _, slot := range d.Slots {
		row := Row{Time: slot.Time, SlotID: slot.SlotID}
		for _, court := range d.Courts {
			cell := models.BookingCell{
				Date:     d.Date,
				Time:     slot.Time,
				SlotID:   slot.SlotID,
				Court:    court.ID,
				PeriodID: periods[slot.Time][court.ID],
			}
			if u, ok := usage[slot.Time][court.ID]; ok {
				cell.Color = u.Color
				if name := strings.TrimSpace(u.PlayerName); name != "" && !strings.EqualFold(name, "Available") {
					cell.State = models.CellBooked
					cell.PlayerName = name
				}
			}
			if cell.State == models.CellAvailable && utils.IsPast(d.Date, slot.Time, now) {
				cell.State = models.CellPast
			}
			row.Cells = append(row.Cells, cell)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

func indexUsage(cells []models.UsageCell) map[string]map[int]models.UsageCell {
	idx := make(map[string]map[int]models.UsageCell)
	for _, cell := range cells {
		byCourt := idx[cell.Time]
		if byCourt == nil {
			byCourt = make(map[int]models.UsageCell)
			idx[cell.Time] = byCourt
		}
		byCourt[cell.CourtID] = cell
	}
	return idx
}

func indexPeriods(rows []models.PeriodRow) map[string]map[int]int {
	idx := make(map[string]map[int]int)
	for _, row := range rows {
		byCourt := idx[row.Time]
		if byCourt == nil {
			byCourt = make(map[int]int)
			idx[row.Time] = byCourt
		}
		for court, period := range row.Periods {
			byCourt[court] = period
		}
	}
	return idx
}
