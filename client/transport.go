package client

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// bearerTransport decorates requests with the current access token and a
// request id. When the backend answers 401 it performs one silent refresh
// through the installed Refresher and retries the request once; a failed
// refresh returns the original 401 untouched.
type bearerTransport struct {
	base      http.RoundTripper
	token     func() string
	refresher Refresher
	logger    *slog.Logger
}

var _ http.RoundTripper = (*bearerTransport)(nil)

// RoundTrip implements http.RoundTripper. The incoming request is cloned
// before decoration, per the RoundTripper contract.
func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	first := req.Clone(req.Context())
	resp, err := t.base.RoundTrip(t.decorate(first))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || t.refresher == nil {
		return resp, nil
	}

	// Requests without a rewindable body cannot be replayed.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	if !t.refresher.RefreshAccessToken(req.Context()) {
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	if t.logger != nil {
		t.logger.Debug("retrying request after token refresh",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
		)
	}
	return t.base.RoundTrip(t.decorate(retry))
}

// decorate attaches the bearer credential and request id in place.
func (t *bearerTransport) decorate(req *http.Request) *http.Request {
	if t.token != nil {
		if tok := t.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	return req
}
