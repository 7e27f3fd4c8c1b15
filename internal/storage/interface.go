// Package storage persists the client's local state: connection
// settings and the journal of booking writes.
package storage

import "time"

// Settings is the locally persisted configuration.
type Settings struct {
	ServerURL string
	Username  string
}

// JournalEntry is one line of the local audit trail, written after
// every server write. It mirrors the club's own internet log so a
// member can reconcile disputes from their side.
type JournalEntry struct {
	ID      string
	At      time.Time
	Action  string
	Date    string // ISO YYYY-MM-DD of the slot, not of the write
	Time    string // HH:MM
	Court   int
	Outcome string
	Message string
}

// Provider defines the persistence interface.
type Provider interface {
	Init() error
	Load() error
	Close() error

	GetSettings() (Settings, error)
	SaveSettings(settings Settings) error

	AppendJournal(entry JournalEntry) error
	Journal(limit int) ([]JournalEntry, error)

	GetConfigPath() string
}
