package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/backup"
	"github.com/squashclub/courtbook/internal/constants"
	"github.com/squashclub/courtbook/internal/keyring"
	"github.com/squashclub/courtbook/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: local database reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Local database: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Local database: OK\n")
	}

	// Check 2: booking server reachable
	if err := checkServerReachable(ctx); err != nil {
		fmt.Printf("❌ Booking server: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Booking server: OK\n")
	}

	// Check 3: OS keyring available
	if !keyring.IsAvailable() {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   The keyring is not usable; passwords cannot be saved.\n")
	} else {
		fmt.Printf("✓ OS keyring: OK\n")
	}

	// Check 4: no second courtbook instance (warning only)
	if err := checkSingleInstance(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	// Check 5: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 6: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

// checkServerReachable only proves the server answers; a 401 from an
// expired session is still a reachable server.
func checkServerReachable(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	client, err := api.New(settings.ServerURL)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()
	if _, err := client.UserInfo(c); err != nil {
		if api.IsStatus(err, 401) {
			return nil
		}
		return fmt.Errorf("server at %s did not answer: %w", settings.ServerURL, err)
	}
	return nil
}

// checkSingleInstance looks for another running courtbook process. Two
// instances pressing slots defeat the duplicate guard, which only sees
// its own writes.
func checkSingleInstance() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	ownName := filepath.Base(os.Args[0])
	for _, proc := range processes {
		if proc.Pid() == self {
			continue
		}
		name := proc.Executable()
		if name == ownName || strings.HasPrefix(name, constants.AppName) {
			return fmt.Errorf("another %s process is running (pid %d); its bookings bypass this instance's duplicate guard", constants.AppName, proc.Pid())
		}
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'courtbook backup create'")
	}
	return nil
}

// checkClock matters more here than usual: past-slot detection compares
// the local clock against server slot times.
func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}
	return nil
}
