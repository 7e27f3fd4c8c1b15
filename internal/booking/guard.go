// Package booking implements the slot-click decision flow: ownership
// checks, credit and limit gates, and the duplicate-submission guard in
// front of every server write.
package booking

import (
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/squashclub/courtbook/internal/constants"
	"github.com/squashclub/courtbook/internal/logger"
)

// Guard suppresses duplicate booking writes fired in quick succession,
// a double press on the same cell before the first write settles. It
// remembers one (payload hash, time) pair, nothing more.
type Guard struct {
	window time.Duration
	now    func() time.Time

	lastHash uint64
	lastAt   time.Time
	armed    bool
}

// NewGuard builds a guard with the given suppression window. A zero or
// negative window falls back to the default.
func NewGuard(window time.Duration) *Guard {
	if window <= 0 {
		window = constants.GuardWindow
	}
	return &Guard{window: window, now: time.Now}
}

// Allow reports whether the payload may go to the server. A payload
// identical to one allowed less than the window ago is suppressed; the
// remembered pair is left untouched on suppression so a burst of
// presses cannot keep extending its own window. Payloads that cannot
// be hashed are always allowed.
func (g *Guard) Allow(payload any) bool {
	hash, err := hashstructure.Hash(payload, hashstructure.FormatV2, nil)
	if err != nil {
		logger.Warn("duplicate guard could not hash payload", "err", err)
		return true
	}
	now := g.now()
	if g.armed && hash == g.lastHash && now.Sub(g.lastAt) < g.window {
		logger.Warn("duplicate submission suppressed", "hash", hash, "age", now.Sub(g.lastAt))
		return false
	}
	g.lastHash = hash
	g.lastAt = now
	g.armed = true
	return true
}

// Reset forgets the remembered payload, re-arming the guard for the
// next write regardless of timing.
func (g *Guard) Reset() {
	g.armed = false
}
