package api

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

	"github.com/google/uuid"

	"botdash/pkg/logging"
)

const (
	subsystem = "Backend"

	// RequestIDHeader carries a per-request uuid for correlation in backend logs.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 4 << 20
)

// Options configures a Client.
type Options struct {
	BaseURL           string
	SessionCookieName string
	SessionCookie     string
	Timeout           time.Duration
	// HTTPClient overrides the transport; nil uses a fresh http.Client.
	HTTPClient *http.Client
}

// Client talks to the dashboard backend.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	cookieName string
	cookie     string
	timeout    time.Duration
	newID      func() string
}

// NewClient validates opts and returns a ready client.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("backend url is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must be http or https", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		base:       base,
		httpClient: hc,
		cookieName: opts.SessionCookieName,
		cookie:     opts.SessionCookie,
		timeout:    opts.Timeout,
		newID:      func() string { return uuid.NewString() },
	}, nil
}

// BaseURL returns the backend root the client was configured with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// LoginURL is the OAuth entry point the user opens in a browser.
func (c *Client) LoginURL() string {
	return c.base.String() + "/auth/login"
}

// HasSession reports whether a session cookie is configured.
func (c *Client) HasSession() bool {
	return c.cookieName != "" && c.cookie != ""
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// CheckAuth calls GET /auth/check.
func (c *Client) CheckAuth(ctx context.Context) (AuthStatus, error) {
	var out AuthStatus
	err := c.do(ctx, http.MethodGet, "/auth/check", nil, &out)
	return out, err
}

// User calls GET /auth/user.
func (c *Client) User(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/auth/user", nil, &out)
	return out, err
}

// Logout calls GET /auth/logout. The response body is ignored.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/logout", nil, nil)
}

// BotStatus calls GET /api/bot/status.
func (c *Client) BotStatus(ctx context.Context) (BotStatus, error) {
	var out BotStatus
	err := c.do(ctx, http.MethodGet, "/api/bot/status", nil, &out)
	return out, err
}

// UserGuilds calls GET /api/user/guilds.
func (c *Client) UserGuilds(ctx context.Context) ([]Guild, error) {
	var out guildList
	if err := c.do(ctx, http.MethodGet, "/api/user/guilds", nil, &out); err != nil {
		return nil, err
	}
	if out.Guilds == nil {
		out.Guilds = []Guild{}
	}
	return out.Guilds, nil
}

// Commands calls GET /api/commands.
func (c *Client) Commands(ctx context.Context) ([]RemoteCommand, error) {
	var out commandList
	if err := c.do(ctx, http.MethodGet, "/api/commands", nil, &out); err != nil {
		return nil, err
	}
	if out.Commands == nil {
		out.Commands = []RemoteCommand{}
	}
	return out.Commands, nil
}

// CreateCustomCommand calls POST /api/commands/custom.
func (c *Client) CreateCustomCommand(ctx context.Context, req CustomCommandRequest) error {
	return c.do(ctx, http.MethodPost, "/api/commands/custom", req, nil)
}

// MusicState calls GET /api/music/{guildID}.
func (c *Client) MusicState(ctx context.Context, guildID string) (MusicState, error) {
	var out MusicState
	err := c.do(ctx, http.MethodGet, "/api/music/"+url.PathEscape(guildID), nil, &out)
	return out, err
}

// MusicAction calls POST /api/music/{guildID}/{action}.
func (c *Client) MusicAction(ctx context.Context, guildID string, action MusicAction) error {
	if !action.Valid() {
		return fmt.Errorf("unknown music action %q", action)
	}
	path := "/api/music/" + url.PathEscape(guildID) + "/" + string(action)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := c.newID()
	req.Header.Set(RequestIDHeader, requestID)
	if c.HasSession() {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.cookie})
	}

	logging.Debug(subsystem, "%s %s (request %s)", method, path, requestID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
