// Package cli holds the kong command implementations.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/backup"
	"github.com/squashclub/courtbook/internal/booking"
	"github.com/squashclub/courtbook/internal/constants"
	"github.com/squashclub/courtbook/internal/keyring"
	"github.com/squashclub/courtbook/internal/logger"
	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/schedule"
	"github.com/squashclub/courtbook/internal/storage"
)

// Context is shared by all commands. The server client is built lazily
// so offline commands (init, history, backup) never touch the network.
type Context struct {
	Store storage.Provider
	Debug bool

	client *api.Client
	member models.Member
}

// Connect loads settings, builds the client, and logs in with the
// password saved in the OS keyring.
func (ctx *Context) Connect(c context.Context) (*api.Client, models.Member, error) {
	if ctx.client != nil {
		return ctx.client, ctx.member, nil
	}
	if err := ctx.Store.Load(); err != nil {
		return nil, models.Member{}, err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return nil, models.Member{}, err
	}
	if settings.Username == "" {
		return nil, models.Member{}, fmt.Errorf("not logged in, run 'courtbook login' first")
	}

	password, err := keyring.GetPassword(settings.Username)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, models.Member{}, fmt.Errorf("no saved password for member %s, run 'courtbook login' again", settings.Username)
		}
		return nil, models.Member{}, err
	}

	client, err := api.New(settings.ServerURL)
	if err != nil {
		return nil, models.Member{}, err
	}
	member, err := client.Login(c, settings.Username, password)
	if err != nil {
		return nil, models.Member{}, err
	}
	logger.Debug("session established", "member", member.MemberNo)

	ctx.client = client
	ctx.member = member
	return client, member, nil
}

// NewFlow builds the slot-press flow with the journal wired in.
func (ctx *Context) NewFlow(client booking.ServerAPI) *booking.Flow {
	return booking.NewFlow(client, booking.NewGuard(constants.GuardWindow), journalRecorder{ctx.Store})
}

// PerformAutomaticBackup snapshots the local database, logging rather
// than failing on error.
func (ctx *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("automatic backup failed", "err", err)
	}
}

// journalRecorder adapts the local store to the flow's Recorder.
type journalRecorder struct {
	store storage.Provider
}

func (r journalRecorder) Record(rec booking.Record) error {
	return r.store.AppendJournal(storage.JournalEntry{
		Action:  rec.Action,
		Date:    rec.Date,
		Time:    rec.Time,
		Court:   rec.Court,
		Outcome: rec.Outcome,
		Message: rec.Message,
	})
}

// resolveDate accepts an ISO date, "today", or "tomorrow".
func resolveDate(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return time.Now().Format(constants.DateFormat), nil
	case "tomorrow":
		return time.Now().AddDate(0, 0, 1).Format(constants.DateFormat), nil
	}
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD, 'today' or 'tomorrow'", s)
	}
	return t.Format(constants.DateFormat), nil
}

// fetchDay pulls the four feeds a day grid needs.
func fetchDay(c context.Context, client *api.Client, isoDate string) (schedule.DayData, error) {
	return schedule.Fetch(c, client, isoDate)
}

// findCell locates the grid cell for a slot time and court id.
func findCell(grid schedule.Grid, slotTime string, court int) (models.BookingCell, error) {
	for r, row := range grid.Rows {
		if row.Time != slotTime {
			continue
		}
		for col, cell := range row.Cells {
			if cell.Court == court {
				found, _ := grid.At(r, col)
				return found, nil
			}
		}
		return models.BookingCell{}, fmt.Errorf("court %d not found for %s", court, slotTime)
	}
	return models.BookingCell{}, fmt.Errorf("no slot at %s on %s", slotTime, grid.Date)
}
