package gatehouse

import "errors"

var (
	// ErrMissingBackend is returned by New when no backend is configured.
	ErrMissingBackend = errors.New("gatehouse: backend is required")

	// ErrMissingTokenStore is returned by New when no token store is configured.
	ErrMissingTokenStore = errors.New("gatehouse: token store is required")

	// ErrNotAuthenticated is returned when an operation needs a live session.
	ErrNotAuthenticated = errors.New("gatehouse: not authenticated")

	// ErrNoTokenExpiry is returned when the access token carries no exp claim.
	ErrNoTokenExpiry = errors.New("gatehouse: access token has no expiry claim")
)
