// Package api is the HTTP client for the club's booking server. All
// methods go through one cookie-jar session established by Login.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/squashclub/courtbook/internal/constants"
)

// Responses past this size are truncated before decoding.
const maxResponseBytes = 1 << 20

// Error is a non-2xx answer from the server, carrying whatever message
// the body offered.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.Status)
}

// IsStatus reports whether err is a server Error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client talks to one booking server. It is not safe for concurrent use
// during Login; afterwards the underlying http.Client handles its own
// locking.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client for the given server URL. The cookie jar holds
// the session cookie across calls.
func New(serverURL string) (*Client, error) {
	base, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", serverURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("server url %q must include scheme and host", serverURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		base: base,
		http: &http.Client{Jar: jar, Timeout: constants.RequestTimeout},
	}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any, extraOK ...int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	return c.do(req, out, extraOK)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any, extraOK ...int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out, extraOK)
}

// do runs the request and decodes the JSON body into out. Statuses in
// extraOK are decoded like successes; endpoints that report domain
// outcomes through 403/409 bodies use that.
func (c *Client) do(req *http.Request, out any, extraOK []int) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response from %s: %w", req.URL.Path, err)
	}
	if !statusAllowed(resp.StatusCode, extraOK) {
		return newError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}

func statusAllowed(status int, extra []int) bool {
	if status >= 200 && status < 300 {
		return true
	}
	for _, s := range extra {
		if s == status {
			return true
		}
	}
	return false
}

func newError(status int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}
	return &Error{Status: status, Message: msg}
}
