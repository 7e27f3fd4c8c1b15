package booking

import (
	"context"
	"testing"
	"time"

	"github.com/squashclub/courtbook/internal/api"
	"github.com/squashclub/courtbook/internal/models"
)

type fakeServer struct {
	member    models.Member
	daily     api.LimitReport
	weekly    api.LimitReport
	create    api.BookingResult
	delete    api.BookingResult
	createErr error

	userInfoCalls int
	createCalls   int
	deleteCalls   int
	lastCreate    models.BookingRequest
	lastDelete    models.CancelRequest
}

func (s *fakeServer) UserInfo(ctx context.Context) (models.Member, error) {
	s.userInfoCalls++
	return s.member, nil
}

func (s *fakeServer) CreateBooking(ctx context.Context, req models.BookingRequest) (api.BookingResult, error) {
	s.createCalls++
	s.lastCreate = req
	if s.createErr != nil {
		return api.BookingResult{}, s.createErr
	}
	return s.create, nil
}

func (s *fakeServer) DeleteBooking(ctx context.Context, req models.CancelRequest) (api.BookingResult, error) {
	s.deleteCalls++
	s.lastDelete = req
	return s.delete, nil
}

func (s *fakeServer) DailyLimits(ctx context.Context, isoDate string) (api.LimitReport, error) {
	return s.daily, nil
}

func (s *fakeServer) WeeklyLimits(ctx context.Context, startISO, endISO string) (api.LimitReport, error) {
	return s.weekly, nil
}

type fakeJournal struct {
	records []Record
}

func (j *fakeJournal) Record(rec Record) error {
	j.records = append(j.records, rec)
	return nil
}

func underLimits() api.LimitReport {
	return api.LimitReport{
		Status: "success",
		Limits: []models.LimitRow{
			{PeriodID: 1, PeriodDescription: "Normal", BookingsCount: 0, Limit: 2},
		},
	}
}

func newTestFlow(srv *fakeServer, journal Recorder) *Flow {
	f := NewFlow(srv, NewGuard(5*time.Second), journal)
	f.now = func() time.Time {
		return time.Date(2030, 1, 1, 9, 0, 0, 0, time.Local)
	}
	return f
}

func freeCell() models.BookingCell {
	return models.BookingCell{
		Date:     "2030-01-07",
		Time:     "10:30",
		SlotID:   7,
		Court:    2,
		PeriodID: 1,
		State:    models.CellAvailable,
	}
}

func TestClick_BooksFreeSlotAndUpdatesCredit(t *testing.T) {
	srv := &fakeServer{
		member: models.Member{MemberNo: 1042, FirstName: "Jane", LastName: "Smith", Credit: 50},
		daily:  underLimits(),
		weekly: underLimits(),
		create: api.BookingResult{Message: "Booking successfully saved.", UpdatedCredit: 44.5},
	}
	journal := &fakeJournal{}
	f := newTestFlow(srv, journal)

	outcome, err := f.Click(context.Background(), freeCell())
	if err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if outcome.Kind != OutcomeBooked {
		t.Fatalf("expected OutcomeBooked, got %v (%s)", outcome.Kind, outcome.Message)
	}
	if !outcome.CreditKnown || outcome.UpdatedCredit != 44.5 {
		t.Errorf("server credit not carried through: %+v", outcome)
	}
	if srv.userInfoCalls != 1 {
		t.Errorf("identity must be re-fetched on the press, got %d calls", srv.userInfoCalls)
	}
	if srv.createCalls != 1 {
		t.Errorf("expected exactly one create, got %d", srv.createCalls)
	}
	if srv.lastCreate.DateContainer != "2030-01-07" || srv.lastCreate.SelectedCourt != 2 {
		t.Errorf("unexpected booking payload: %+v", srv.lastCreate)
	}
	if len(journal.records) != 1 || journal.records[0].Outcome != "booked" {
		t.Errorf("booking must land in the journal: %+v", journal.records)
	}
}

func TestClick_ZeroCreditNeverWrites(t *testing.T) {
	srv := &fakeServer{
		member: models.Member{MemberNo: 1042, FirstName: "Jane", LastName: "Smith", Credit: 0},
		daily:  underLimits(),
		weekly: underLimits(),
	}
	f := newTestFlow(srv, nil)

	outcome, err := f.Click(context.Background(), freeCell())
	if err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if outcome.Kind != OutcomeBlocked {
		t.Fatalf("expected OutcomeBlocked, got %v", outcome.Kind)
	}
	if srv.createCalls != 0 || srv.deleteCalls != 0 {
		t.Errorf("zero credit must produce zero writes: create=%d delete=%d", srv.createCalls, srv.deleteCalls)
	}
}

func TestClick_CancelOwnBookingWorksAtZeroCredit(t *testing.T) {
	srv := &fakeServer{
		member: models.Member{MemberNo: 1042, FirstName: "Jane", LastName: "Smith", Credit: 0},
		delete: api.BookingResult{Message: "Booking successfully deleted.", UpdatedCredit: 2.5},
	}
	journal := &fakeJournal{}
	f := newTestFlow(srv, journal)

	cell := freeCell()
	cell.State = models.CellBooked
	cell.PlayerName = "Jane Smith"

	outcome, err := f.Click(context.Background(), cell)
	if err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if outcome.Kind != OutcomeCancelled {
		t.Fatalf("expected OutcomeCancelled, got %v (%s)", outcome.Kind, outcome.Message)
	}
	if srv.deleteCalls != 1 {
		t.Fatalf("expected one delete, got %d", srv.deleteCalls)
	}
	if srv.lastDelete.PlayerNoColumn != "PlayerNo_2" || srv.lastDelete.PeriodID != 1 {
		t.Errorf("unexpected cancel payload: %+v", srv.lastDelete)
	}
	if len(journal.records) != 1 || journal.records[0].Outcome != "cancelled" {
		t.Errorf("cancellation must land in the journal: %+v", journal.records)
	}
}

func TestClick_SomeoneElsesBookingIsRejected(t *testing.T) {
	srv := &fakeServer{
		member: models.Member{MemberNo: 1042, FirstName: "Jane", LastName: "Smith", Credit: 50},
	}
	f := newTestFlow(srv, nil)

	cell := freeCell()
	cell.State = models.CellBooked
	cell.PlayerName = "Bob Jones"

	outcome, err := f.Click(context.Background(), cell)
	if err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if outcome.Kind != OutcomeRejected {
		t.Fatalf("expected OutcomeRejected, got %v", outcome.Kind)
	}
	if srv.createCalls != 0 || srv.deleteCalls != 0 {
		t.Errorf("another member's slot must produce zero writes")
	}
}

func TestClick_PreconditionsShortCircuitBeforeTheServer(t *testing.T) {
	srv := &fakeServer{
		member: models.Member{MemberNo: 1042, FirstName: "Jane", LastName: "Smith", Credit: 50},
	}
	f := newTestFlow(srv, nil)

	cases := []struct {
		name string
		cell models.BookingCell
	}{
		{"no date", models.BookingCell{Time: "10:30", SlotID: 7, Court: 2, PeriodID: 1}},
		{"period missing", models.BookingCell{Date: "2030-01-07", Time: "10:30", SlotID: 7, Court: 2}},
		{"past slot", models.BookingCell{Date: "2020-01-07", Time: "10:30", SlotID: 7, Court: 2, PeriodID: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, err := f.Click(context.Background(), tc.cell)
			if err != nil {
				t.Fatalf("Click failed: %v", err)
			}
			if outcome.Kind != OutcomeRejected {
				t.Errorf("expected OutcomeRejected, got %v", outcome.Kind)
			}
		})
	}
	if srv.userInfoCalls != 0 {
		t.Errorf("failed preconditions must not reach the server, got %d user-info calls", srv.userInfoCalls)
	}
}

func TestClick_LimitAtCapBlocks(t *testing.T) {
	capped := api.LimitReport{
		Status: "success",
		Limits: []models.LimitRow{
			{PeriodID: 1, PeriodDescription: "Normal", BookingsCount: 2, Limit: 2},
		},
	}
	srv := &fakeServer{
		member: models.Member{MemberNo: 1042, FirstName: "Jane", LastName: "Smith", Credit: 50},
		daily:  capped,
		weekly: underLimits(),
	}
	f := newTestFlow(srv, nil)

	outcome, err := f.Click(context.Background(), freeCell())
	if err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if outcome.Kind != OutcomeBlocked {
		t.Fatalf("expected OutcomeBlocked at the cap, got %v", outcome.Kind)
	}
	if outcome.Limits == nil || len(outcome.Limits.Daily) != 1 {
		t.Errorf("blocked outcome must carry the limit reports")
	}
	if srv.createCalls != 0 {
		t.Errorf("a blocked press must not write, got %d creates", srv.createCalls)
	}
}

func TestClick_OtherPeriodAtCapDoesNotBlock(t *testing.T) {
	// Peak is full, but the pressed slot is a Normal one with room
	// left, so the booking must go through.
	mixed := api.LimitReport{
		Status: "success",
		Limits: []models.LimitRow{
			{PeriodID: 1, PeriodDescription: "Normal", BookingsCount: 0, Limit: 2},
			{PeriodID: 2, PeriodDescription: "Peak", BookingsCount: 2, Limit: 2},
		},
	}
	srv := &fakeServer{
		member: models.Member{MemberNo: 1042, FirstName: "Jane", LastName: "Smith", Credit: 50},
		daily:  mixed,
		weekly: mixed,
		create: api.BookingResult{Message: "Booking successfully saved.", UpdatedCredit: 44.5},
	}
	f := newTestFlow(srv, nil)

	outcome, err := f.Click(context.Background(), freeCell())
	if err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if outcome.Kind != OutcomeBooked {
		t.Fatalf("a full unrelated period must not block, got %v (%s)", outcome.Kind, outcome.Message)
	}
	if srv.createCalls != 1 {
		t.Errorf("expected the create to be sent, got %d", srv.createCalls)
	}
}

func TestClick_DoublePressWritesOnce(t *testing.T) {
	srv := &fakeServer{
		member: models.Member{MemberNo: 1042, FirstName: "Jane", LastName: "Smith", Credit: 50},
		daily:  underLimits(),
		weekly: underLimits(),
		create: api.BookingResult{Message: "Booking successfully saved.", UpdatedCredit: 44.5},
	}
	f := newTestFlow(srv, nil)

	cell := freeCell()
	first, err := f.Click(context.Background(), cell)
	if err != nil {
		t.Fatalf("first press failed: %v", err)
	}
	if first.Kind != OutcomeBooked {
		t.Fatalf("first press must book, got %v", first.Kind)
	}

	// Screen state has not refreshed yet, so the cell still looks free.
	second, err := f.Click(context.Background(), cell)
	if err != nil {
		t.Fatalf("second press failed: %v", err)
	}
	if second.Kind != OutcomeSuppressed {
		t.Fatalf("expected OutcomeSuppressed, got %v", second.Kind)
	}
	if srv.createCalls != 1 {
		t.Errorf("double press must produce exactly one write, got %d", srv.createCalls)
	}
}

func TestClick_ConflictWhenSlotTakenFirst(t *testing.T) {
	srv := &fakeServer{
		member: models.Member{MemberNo: 1042, FirstName: "Jane", LastName: "Smith", Credit: 50},
		daily:  underLimits(),
		weekly: underLimits(),
		create: api.BookingResult{Status: "already_booked", Message: "Slot already booked."},
	}
	journal := &fakeJournal{}
	f := newTestFlow(srv, journal)

	outcome, err := f.Click(context.Background(), freeCell())
	if err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if outcome.Kind != OutcomeConflict {
		t.Fatalf("expected OutcomeConflict, got %v", outcome.Kind)
	}
	if len(journal.records) != 1 || journal.records[0].Outcome != "conflict" {
		t.Errorf("conflicts must land in the journal: %+v", journal.records)
	}
}
