package constants

import "time"

const (
	AppName           = "courtbook"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/courtbook/courtbook.db"
	DefaultServerURL  = "http://localhost:5000"

	// DateFormat is the ISO date format used for internal identity (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// APIDateFormat is the format the booking server expects on the wire (dd/MM/yyyy)
	APIDateFormat = "02/01/2006"

	// TimeFormat is the 24-hour slot time format (HH:MM)
	TimeFormat = "15:04"

	// GuardWindow is how long an identical booking payload is suppressed
	// after a submission attempt.
	GuardWindow = 5 * time.Second

	// RequestTimeout bounds every call to the booking server.
	RequestTimeout = 15 * time.Second

	// DaysPerWeek is the length of the schedule date strip.
	DaysPerWeek = 7
)

// Journal action codes, mirrored from the server's audit activity scheme.
const (
	ActionBook           = "book"
	ActionCancel         = "cancel"
	ActionWaitlistAdd    = "waitlist_add"
	ActionWaitlistRemove = "waitlist_remove"
	ActionProfileUpdate  = "profile_update"
)

// Backup constants
const (
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "courtbook-"
	BackupFileSuffix = ".db"
)
