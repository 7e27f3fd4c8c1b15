package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/constants"
	"github.com/squashclub/courtbook/internal/logger"
	"github.com/squashclub/courtbook/internal/models"
	"github.com/squashclub/courtbook/internal/utils"
)

// ServerAPI is the slice of the client the click flow needs.
type ServerAPI interface {
	LimitsAPI
	UserInfo(ctx context.Context) (models.Member, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (api.BookingResult, error)
	DeleteBooking(ctx context.Context, req models.CancelRequest) (api.BookingResult, error)
}

// Record is one line of the local audit trail, written after every
// server write regardless of outcome.
type Record struct {
	Action  string
	Date    string
	Time    string
	Court   int
	Outcome string
	Message string
}

// Recorder persists Records. Failures are logged, never fatal.
type Recorder interface {
	Record(rec Record) error
}

// OutcomeKind classifies what a slot press ended up doing.
type OutcomeKind int

const (
	// OutcomeBooked means the server confirmed a new booking.
	OutcomeBooked OutcomeKind = iota
	// OutcomeCancelled means the server confirmed a cancellation.
	OutcomeCancelled
	// OutcomeRejected means a local precondition failed: no date,
	// period data missing, past slot, or someone else's booking.
	OutcomeRejected
	// OutcomeBlocked means credit or a booking limit stopped the write.
	OutcomeBlocked
	// OutcomeSuppressed means the duplicate guard swallowed the press.
	OutcomeSuppressed
	// OutcomeConflict means another member took the slot first.
	OutcomeConflict
)

// Outcome is the settled result of one slot press.
type Outcome struct {
	Kind          OutcomeKind
	Message       string
	UpdatedCredit float64
	CreditKnown   bool
	Limits        *LimitResult
}

// Flow runs the slot-press state machine. Cell state is only ever
// changed by the caller after a confirmed server write, so Flow itself
// holds no schedule state.
type Flow struct {
	client  ServerAPI
	guard   *Guard
	journal Recorder
	now     func() time.Time
}

// NewFlow builds a Flow. journal may be nil.
func NewFlow(client ServerAPI, guard *Guard, journal Recorder) *Flow {
	if guard == nil {
		guard = NewGuard(constants.GuardWindow)
	}
	return &Flow{client: client, guard: guard, journal: journal, now: time.Now}
}

// Click decides and executes the action for one schedule cell: cancel
// when the member holds it, book when it is free, refuse otherwise.
// Identity and credit are re-fetched on every press so a stale screen
// can never spend credit that is gone.
func (f *Flow) Click(ctx context.Context, cell models.BookingCell) (Outcome, error) {
	if cell.Date == "" {
		return Outcome{Kind: OutcomeRejected, Message: "select a date first"}, nil
	}
	if cell.PeriodID == 0 {
		return Outcome{Kind: OutcomeRejected, Message: "period data is still loading, try again"}, nil
	}
	if utils.IsPast(cell.Date, cell.Time, f.now()) {
		return Outcome{Kind: OutcomeRejected, Message: "past slots cannot be changed"}, nil
	}

	member, err := f.client.UserInfo(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("refresh member info: %w", err)
	}

	if cell.State == models.CellBooked {
		if strings.TrimSpace(cell.PlayerName) != member.FullName() {
			return Outcome{Kind: OutcomeRejected, Message: "slot is held by another member"}, nil
		}
		return f.cancel(ctx, cell, member)
	}

	// Cancellations must stay possible at zero credit; only new
	// bookings are credit-gated.
	if member.Credit <= 0 {
		return Outcome{
			Kind:    OutcomeBlocked,
			Message: "booking not allowed, lights credit is used up",
		}, nil
	}

	limits, err := CheckLimits(ctx, f.client, cell.Date, cell.PeriodID)
	if err != nil {
		return Outcome{}, fmt.Errorf("check booking limits: %w", err)
	}
	if limits.Blocked {
		return Outcome{Kind: OutcomeBlocked, Message: limits.Reason, Limits: &limits}, nil
	}

	return f.book(ctx, cell, member)
}

func (f *Flow) book(ctx context.Context, cell models.BookingCell, member models.Member) (Outcome, error) {
	req := models.BookingRequest{
		PlayerNo:      member.MemberNo,
		DateContainer: cell.Date,
		SlotID:        cell.SlotID,
		SelectedCourt: cell.Court,
	}
	if !f.guard.Allow(req) {
		return Outcome{Kind: OutcomeSuppressed, Message: "duplicate press ignored"}, nil
	}

	result, err := f.client.CreateBooking(ctx, req)
	if err != nil {
		f.record(constants.ActionBook, cell, "error", err.Error())
		return Outcome{}, fmt.Errorf("create booking: %w", err)
	}
	if result.AlreadyBooked() {
		f.record(constants.ActionBook, cell, "conflict", result.Message)
		return Outcome{Kind: OutcomeConflict, Message: "slot was taken by another member"}, nil
	}

	f.record(constants.ActionBook, cell, "booked", result.Message)
	logger.Info("booking confirmed",
		"date", cell.Date, "time", cell.Time, "court", cell.Court, "credit", result.UpdatedCredit)
	return Outcome{
		Kind:          OutcomeBooked,
		Message:       result.Message,
		UpdatedCredit: result.UpdatedCredit,
		CreditKnown:   true,
	}, nil
}

func (f *Flow) cancel(ctx context.Context, cell models.BookingCell, member models.Member) (Outcome, error) {
	req := models.CancelRequest{
		DateContainer:  cell.Date,
		SlotID:         cell.SlotID,
		PlayerNoColumn: cell.PlayerColumn(),
		PlayerNo:       member.MemberNo,
		SelectedCourt:  cell.Court,
		PeriodID:       cell.PeriodID,
	}
	if !f.guard.Allow(req) {
		return Outcome{Kind: OutcomeSuppressed, Message: "duplicate press ignored"}, nil
	}

	result, err := f.client.DeleteBooking(ctx, req)
	if err != nil {
		f.record(constants.ActionCancel, cell, "error", err.Error())
		return Outcome{}, fmt.Errorf("cancel booking: %w", err)
	}

	f.record(constants.ActionCancel, cell, "cancelled", result.Message)
	logger.Info("booking cancelled",
		"date", cell.Date, "time", cell.Time, "court", cell.Court, "credit", result.UpdatedCredit)
	return Outcome{
		Kind:          OutcomeCancelled,
		Message:       result.Message,
		UpdatedCredit: result.UpdatedCredit,
		CreditKnown:   true,
	}, nil
}

func (f *Flow) record(action string, cell models.BookingCell, outcome, message string) {
	if f.journal == nil {
		return
	}
	err := f.journal.Record(Record{
		Action:  action,
		Date:    cell.Date,
		Time:    cell.Time,
		Court:   cell.Court,
		Outcome: outcome,
		Message: message,
	})
	if err != nil {
		logger.Warn("journal write failed", "action", action, "err", err)
	}
}
