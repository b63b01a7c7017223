// Package remote is the sync adapter for the reminder API. All calls are
// consumed fire-and-forget by the dispatcher: a failure is surfaced to the
// caller as an error to notify on, never something that blocks or rolls
// back the in-memory state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"remind-cli/internal/model"
)

// Client talks to a remind web server (or any API with the same shape).
type Client struct {
	BaseURL    string
	InviteCode string
	HTTPClient *http.Client
}

// New returns a client with a sane default timeout.
func New(baseURL, inviteCode string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		InviteCode: strings.TrimSpace(inviteCode),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
}

func (c *Client) endpoint(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	if c.InviteCode != "" {
		query.Set("inviteCode", c.InviteCode)
	}
	u := c.BaseURL + path
	if enc := query.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (envelope, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return envelope{}, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), rd)
	if err != nil {
		return envelope{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return envelope{}, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("%s %s: status %d, undecodable body", method, path, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := strings.TrimSpace(env.Error)
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		if d := strings.TrimSpace(env.Details); d != "" {
			msg += ": " + d
		}
		return env, fmt.Errorf("%s %s: %s", method, path, msg)
	}
	return env, nil
}

// List fetches the full remote collection.
func (c *Client) List(ctx context.Context) ([]model.Reminder, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/list", nil, nil)
	if err != nil {
		return nil, err
	}
	var wires []wireReminder
	if err := json.Unmarshal(env.Data, &wires); err != nil {
		return nil, err
	}
	out := make([]model.Reminder, 0, len(wires))
	for _, w := range wires {
		out = append(out, fromWire(w))
	}
	return out, nil
}

// Insert creates r remotely.
func (c *Client) Insert(ctx context.Context, r model.Reminder) error {
	_, err := c.do(ctx, http.MethodPost, "/api/insert", nil, toWire(r))
	return err
}

// Update pushes r's current field values remotely, keyed by its id.
func (c *Client) Update(ctx context.Context, r model.Reminder) error {
	_, err := c.do(ctx, http.MethodPut, "/api/update", nil, toWire(r))
	return err
}

// Delete removes the reminder with the given id remotely.
func (c *Client) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", id)
	_, err := c.do(ctx, http.MethodDelete, "/api/delete", q, nil)
	return err
}
