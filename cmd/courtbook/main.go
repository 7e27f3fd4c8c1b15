package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/squashclub/courtbook/internal/cli"
	"github.com/squashclub/courtbook/internal/constants"
	"github.com/squashclub/courtbook/internal/logger"
	"github.com/squashclub/courtbook/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Local database path." type:"path" default:"~/.config/courtbook/courtbook.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize local courtbook storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive schedule." default:"1"`
	Login    cli.LoginCmd    `cmd:"" help:"Log in to the booking server."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Log out and forget the saved password."`
	Day      cli.DayCmd      `cmd:"" help:"Show the schedule for a day."`
	Book     cli.BookCmd     `cmd:"" help:"Book a court slot."`
	Cancel   cli.CancelCmd   `cmd:"" help:"Cancel one of your bookings."`
	Bookings cli.BookingsCmd `cmd:"" help:"List your bookings for the week."`
	Limits   cli.LimitsCmd   `cmd:"" help:"Show your booking limits for a day."`
	Waitlist struct {
		Add    cli.WaitlistAddCmd    `cmd:"" help:"Join the waiting list for a slot."`
		Remove cli.WaitlistRemoveCmd `cmd:"" help:"Leave the waiting list for a slot."`
	} `cmd:"" help:"Manage waiting-list entries."`
	Profile struct {
		Show cli.ProfileShowCmd `cmd:"" help:"Show your member profile."`
		Edit cli.ProfileEditCmd `cmd:"" help:"Edit your member profile."`
	} `cmd:"" help:"Manage your member profile."`
	History cli.HistoryCmd `cmd:"" help:"Show the local booking journal."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Diagnose common setup problems."`
	Backup  struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the local database."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the local database from a backup."`
	} `cmd:"" help:"Manage local database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Court booking client for the club schedule server"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Setup(filepath.Dir(CLI.Config), CLI.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store: storage.NewSQLiteStore(CLI.Config),
		Debug: CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
