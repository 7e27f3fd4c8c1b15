package models

// BookingRequest is the create-booking payload. DateContainer stays in
// ISO form; the server converts it for storage.
type BookingRequest struct {
	PlayerNo      int    `json:"player_no"`
	DateContainer string `json:"date_container"` // ISO YYYY-MM-DD
	SlotID        int    `json:"slot_id"`
	SelectedCourt int    `json:"selected_court"`
}

// CancelRequest is the delete-booking payload.
type CancelRequest struct {
	DateContainer  string `json:"date_container"` // ISO YYYY-MM-DD
	SlotID         int    `json:"slot_id"`
	PlayerNoColumn string `json:"player_no_column"` // e.g. "PlayerNo_2"
	PlayerNo       int    `json:"player_no"`
	SelectedCourt  int    `json:"selected_court"`
	PeriodID       int    `json:"period_id"`
}

// LimitRow is one period's usage against its daily or weekly cap, as
// reported by the limits endpoints.
type LimitRow struct {
	PeriodID          int    `json:"period_id"`
	PeriodDescription string `json:"period_description"`
	BookingsCount     int    `json:"bookings_count"`
	Limit             int    `json:"limit"`
}

// MyBooking is one row from the view-bookings endpoint: a booking held
// by the current member, with everything needed to cancel it.
type MyBooking struct {
	Date             string `json:"date"` // dd/MM/yyyy display form
	DateContainer    string `json:"date_container"`
	Time             string `json:"time"`
	SlotID           int    `json:"slot_id"`
	Court            int    `json:"court"`
	CourtDescription string `json:"court_description"`
	PlayerNoColumn   string `json:"player_no_column"`
	SelectedCourt    int    `json:"selected_court"`
}
