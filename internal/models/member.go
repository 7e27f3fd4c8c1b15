package models

import "strings"

// Member is the session identity returned by the server's user-info
// endpoint. Credit is the lights-credit balance bookings draw from.
type Member struct {
	MemberNo  int     `json:"member_no"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Credit    float64 `json:"credit"`
}

// FullName returns the display name booked cells carry, e.g. "J Smith"
// style names come back from the server verbatim so we compare trimmed.
func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Profile is the editable member record behind the My Profile page.
// The server names the last-name field "surname" on this endpoint only.
type Profile struct {
	MemberNo  int     `json:"member_no"`
	FirstName string  `json:"first_name"`
	Surname   string  `json:"surname"`
	CellPhone string  `json:"cell_phone"`
	Email     string  `json:"email"`
	Credit    float64 `json:"credit"`
}
