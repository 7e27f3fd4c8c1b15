package api

import (
	"context"

	"github.com/squashclub/courtbook/internal/models"
)

// ProfileUpdate is the editable subset of a profile. The read endpoint
// calls the last name "surname" but the write endpoint wants
// "last_name", hence the separate type.
type ProfileUpdate struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	CellPhone string  `json:"cell_phone"`
	Email     string  `json:"email"`
	Credit    float64 `json:"credit"`
}

// Profile fetches the member's editable record.
func (c *Client) Profile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	if err := c.getJSON(ctx, "/main/myprofile/profile_data", nil, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// UpdateProfile writes the edited fields back. Credit is carried
// through unchanged; the server rejects attempts to edit it elsewhere.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) error {
	var out struct {
		Message string `json:"message"`
	}
	return c.postJSON(ctx, "/main/myprofile/update_profile", upd, &out)
}
