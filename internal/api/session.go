package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/squashclub/courtbook/internal/models"
)

// Login posts the credentials form. The server answers the form with an
// HTML page whether the credentials were right or not, so the session
// cookie is the real outcome and is verified with a user-info call.
func (c *Client) Login(ctx context.Context, username, password string) (models.Member, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/login", nil), strings.NewReader(form.Encode()))
	if err != nil {
		return models.Member{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Member{}, fmt.Errorf("login request: %w", err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		return models.Member{}, &Error{Status: resp.StatusCode}
	}

	member, err := c.UserInfo(ctx)
	if err != nil {
		if IsStatus(err, http.StatusUnauthorized) {
			return models.Member{}, fmt.Errorf("login rejected, check username and password")
		}
		return models.Member{}, err
	}
	return member, nil
}

// Logout ends the server session. The cookie jar keeps the now-dead
// cookie; callers should discard the client afterwards.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/logout", nil), nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	resp.Body.Close()
	return nil
}

// UserInfo fetches the logged-in member's identity and current credit.
// A 401 means the session expired.
func (c *Client) UserInfo(ctx context.Context) (models.Member, error) {
	var m models.Member
	if err := c.getJSON(ctx, "/bookings/get_user_info", nil, &m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}
