// Package client talks JSON over HTTP to the martrack backend.
//
// One parameterized factory produces the two request clients the app needs:
// a user-scoped client and an admin-scoped client. Each attaches the bearer
// token from its own credential slot and reacts to authorization failures by
// clearing that slot and forcing a navigation to its login page.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/martrack-dev/martrack/internal/cli/tokenstore"
)

// RequestTimeout bounds every request so calls surface a failure instead of
// hanging indefinitely
const RequestTimeout = 10 * time.Second

const (
	// LoginPath is where the user client redirects on authorization failure
	LoginPath = "/login"
	// AdminLoginPath is where the admin client redirects
	AdminLoginPath = "/admin/login"
	// AdminPrefix marks paths belonging to the admin panel
	AdminPrefix = "/admin"
)

// Config parameterizes a client for one credential slot
type Config struct {
	BaseURL string
	Tokens  tokenstore.Store
	Nav     Navigator
	Logger  zerolog.Logger

	// Slot is the credential attached to outgoing requests
	Slot tokenstore.Slot
	// ClearSlots are removed when the backend answers 401
	ClearSlots []tokenstore.Slot
	// LoginPath is the navigation target after an authorization failure
	LoginPath string
	// ShouldRedirect decides, given the current location, whether the 401
	// handler navigates at all. Prevents redirect loops when the failure
	// originates from the login page itself.
	ShouldRedirect func(location string) bool
}

// Client is an HTTP client bound to one credential slot
type Client struct {
	baseURL    string
	httpClient *http.Client
	cfg        Config
	log        zerolog.Logger
}

// New creates a client from an explicit configuration
func New(cfg Config) *Client {
	if cfg.Nav == nil {
		cfg.Nav = NopNavigator{}
	}
	return &Client{
		baseURL: strings.TrimSuffix(strings.TrimRight(cfg.BaseURL, "/"), "/api"),
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
		cfg: cfg,
		log: cfg.Logger,
	}
}

// NewUserClient creates the client scoped to the user session token
func NewUserClient(baseURL string, tokens tokenstore.Store, nav Navigator, log zerolog.Logger) *Client {
	return New(Config{
		BaseURL:    baseURL,
		Tokens:     tokens,
		Nav:        nav,
		Logger:     log,
		Slot:       tokenstore.SlotToken,
		ClearSlots: []tokenstore.Slot{tokenstore.SlotToken, tokenstore.SlotLegacyToken},
		LoginPath:  LoginPath,
		ShouldRedirect: func(location string) bool {
			return location != LoginPath && !strings.HasPrefix(location, AdminPrefix)
		},
	})
}

// NewAdminClient creates the client scoped to the admin session token
func NewAdminClient(baseURL string, tokens tokenstore.Store, nav Navigator, log zerolog.Logger) *Client {
	return New(Config{
		BaseURL:    baseURL,
		Tokens:     tokens,
		Nav:        nav,
		Logger:     log,
		Slot:       tokenstore.SlotAdminToken,
		ClearSlots: []tokenstore.Slot{tokenstore.SlotAdminToken},
		LoginPath:  AdminLoginPath,
		ShouldRedirect: func(location string) bool {
			return strings.HasPrefix(location, AdminPrefix)
		},
	})
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// errorBody is the backend's failure response shape
type errorBody struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

// do performs one JSON request. The error is always returned to the caller;
// nothing is swallowed.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, cause: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reader)
	if err != nil {
		return &Error{Kind: KindUnknown, cause: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	if token, ok := c.cfg.Tokens.Get(c.cfg.Slot); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindNetwork
		var urlErr *url.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
			kind = KindTimeout
		}
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("Request failed")
		return &Error{Kind: kind, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)

		var eb errorBody
		_ = json.Unmarshal(data, &eb)

		c.log.Error().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("message", eb.Error).
			Msg("Request rejected")

		return &Error{
			Kind:    KindHTTP,
			Status:  resp.StatusCode,
			Message: eb.Error,
			Fields:  eb.Errors,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Error().Err(err).Str("path", path).Msg("Failed to decode response")
			return &Error{Kind: KindUnknown, cause: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	return nil
}

// handleUnauthorized clears this client's credential slots and, unless the
// current location is already on the login side, forces a navigation to the
// login page. Runs before the error is returned so the stale token is gone
// even if the caller ignores the failure.
func (c *Client) handleUnauthorized() {
	for _, slot := range c.cfg.ClearSlots {
		if err := c.cfg.Tokens.Clear(slot); err != nil {
			c.log.Error().Err(err).Str("slot", string(slot)).Msg("Failed to clear token")
		}
	}

	location := c.cfg.Nav.Location()
	if c.cfg.ShouldRedirect != nil && c.cfg.ShouldRedirect(location) {
		c.log.Warn().Str("from", location).Str("to", c.cfg.LoginPath).Msg("Authorization failure, redirecting")
		c.cfg.Nav.Navigate(c.cfg.LoginPath)
	}
}
