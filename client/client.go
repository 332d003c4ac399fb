// Package client implements the REST client for the condominium platform
// backend: credential exchange, token refresh, profile lookup, and
// permission listing. It satisfies the gatehouse Backend interface.
//
// Authenticated calls carry the current access token as a bearer credential
// and are retried once after a silent refresh when the backend answers 401.
// The token endpoints themselves bypass the bearer transport.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xraph/gatehouse/identity"
	"github.com/xraph/gatehouse/permission"
	"github.com/xraph/gatehouse/store"
)

// Refresher performs a silent access token refresh. It reports whether a
// new access token is available; a false return means the session is over.
type Refresher interface {
	RefreshAccessToken(ctx context.Context) bool
}

// Client is the REST client for the platform backend.
type Client struct {
	baseURL string
	logger  *slog.Logger
	timeout time.Duration

	plain  *http.Client // token endpoints, no bearer credential
	authed *http.Client

	bearer *bearerTransport
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout sets the per-request timeout. Defaults to 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTransport sets the underlying HTTP transport for all calls.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.bearer.base = rt }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
		timeout: 30 * time.Second,
		bearer:  &bearerTransport{base: http.DefaultTransport},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.bearer.logger = c.logger
	c.plain = &http.Client{Timeout: c.timeout, Transport: c.bearer.base}
	c.authed = &http.Client{Timeout: c.timeout, Transport: c.bearer}
	return c
}

// SetTokenSource installs the access token source for authenticated calls.
// The session store owns the token; the client only reads it per request.
func (c *Client) SetTokenSource(fn func() string) { c.bearer.token = fn }

// SetRefresher installs the silent-refresh handler used on 401 responses.
func (c *Client) SetRefresher(r Refresher) { c.bearer.refresher = r }

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (store.Credentials, error) {
	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	in := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, c.plain, http.MethodPost, "/auth/token/", in, &out); err != nil {
		return store.Credentials{}, err
	}
	return store.Credentials{AccessToken: out.Access, RefreshToken: out.Refresh}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var out struct {
		Access string `json:"access"`
	}
	in := map[string]string{"refresh": refreshToken}
	if err := c.do(ctx, c.plain, http.MethodPost, "/auth/token/refresh/", in, &out); err != nil {
		return "", err
	}
	return out.Access, nil
}

// profileModel is the backend's profile payload. The backend assigns
// numeric user ids; gatehouse treats them as opaque strings.
type profileModel struct {
	ID          json.Number `json:"id"`
	Username    string      `json:"username"`
	FullName    string      `json:"full_name"`
	IsActive    bool        `json:"is_active"`
	IsResident  bool        `json:"is_resident"`
	IsSuperuser bool        `json:"is_superuser"`
	Role        json.Number `json:"role"`
}

// CurrentProfile resolves the access token to the signed-in identity.
func (c *Client) CurrentProfile(ctx context.Context) (*identity.Identity, error) {
	var m profileModel
	if err := c.do(ctx, c.authed, http.MethodGet, "/users/me/", nil, &m); err != nil {
		return nil, err
	}
	return &identity.Identity{
		ID:          m.ID.String(),
		Username:    m.Username,
		DisplayName: m.FullName,
		IsActive:    m.IsActive,
		IsResident:  m.IsResident,
		IsSuperuser: m.IsSuperuser,
		RoleID:      m.Role.String(),
	}, nil
}

// PermissionsForUser lists the effective permissions of the given user.
func (c *Client) PermissionsForUser(ctx context.Context, userID string) (permission.Set, error) {
	if userID == "" {
		return nil, fmt.Errorf("gatehouse/client: missing user id")
	}
	var out permission.Set
	path := "/users/" + userID + "/permissions/"
	if err := c.do(ctx, c.authed, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs one JSON request/response exchange. Non-2xx responses are
// decoded into an *APIError carrying the backend's structured message.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("gatehouse/client: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("gatehouse/client: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("gatehouse/client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return decodeError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gatehouse/client: decode response: %w", err)
	}
	return nil
}
