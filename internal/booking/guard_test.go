package booking

import (
	"testing"
	"time"

	"github.com/squashclub/courtbook/internal/models"
)

func newTestGuard(window time.Duration) (*Guard, *time.Time) {
	g := NewGuard(window)
	now := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	return g, &now
}

func TestGuard_SuppressesIdenticalWithinWindow(t *testing.T) {
	g, now := newTestGuard(5 * time.Second)
	req := models.BookingRequest{PlayerNo: 1042, DateContainer: "2025-03-07", SlotID: 3, SelectedCourt: 2}

	if !g.Allow(req) {
		t.Fatal("first submission must pass")
	}
	*now = now.Add(2 * time.Second)
	if g.Allow(req) {
		t.Error("identical submission inside the window must be suppressed")
	}
}

func TestGuard_AllowsAfterWindow(t *testing.T) {
	g, now := newTestGuard(5 * time.Second)
	req := models.BookingRequest{PlayerNo: 1042, DateContainer: "2025-03-07", SlotID: 3, SelectedCourt: 2}

	g.Allow(req)
	*now = now.Add(5 * time.Second)
	if !g.Allow(req) {
		t.Error("submission at the window boundary must pass")
	}
}

func TestGuard_SuppressionDoesNotExtendWindow(t *testing.T) {
	g, now := newTestGuard(5 * time.Second)
	req := models.BookingRequest{PlayerNo: 1042, DateContainer: "2025-03-07", SlotID: 3, SelectedCourt: 2}

	g.Allow(req) // t=0
	*now = now.Add(4 * time.Second)
	if g.Allow(req) { // t=4, suppressed
		t.Fatal("submission at t=4s must be suppressed")
	}
	*now = now.Add(2 * time.Second)
	if !g.Allow(req) { // t=6, window measured from t=0, not t=4
		t.Error("suppressed attempts must not refresh the remembered pair")
	}
}

func TestGuard_DifferentPayloadPasses(t *testing.T) {
	g, _ := newTestGuard(5 * time.Second)
	first := models.BookingRequest{PlayerNo: 1042, DateContainer: "2025-03-07", SlotID: 3, SelectedCourt: 2}
	second := first
	second.SelectedCourt = 3

	g.Allow(first)
	if !g.Allow(second) {
		t.Error("a different payload must pass immediately")
	}
}

func TestGuard_ResetRearms(t *testing.T) {
	g, _ := newTestGuard(5 * time.Second)
	req := models.BookingRequest{PlayerNo: 1042, DateContainer: "2025-03-07", SlotID: 3, SelectedCourt: 2}

	g.Allow(req)
	g.Reset()
	if !g.Allow(req) {
		t.Error("Reset must allow the same payload again")
	}
}
