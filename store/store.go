// Package store defines durable client-side persistence for the Credential
// Pair. The only state this core persists between process runs is the two
// opaque bearer token strings; everything else (identity, permissions) is
// in-memory and refetched. Backends: SQLite and Memory.
package store

import "context"

// Credentials is the access/refresh bearer token pair. The access token is
// attached to every outbound request and replaced wholesale on refresh,
// never patched in place.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether no access token is held.
func (c Credentials) Empty() bool { return c.AccessToken == "" }

// TokenStore persists the Credential Pair across process restarts.
// A single writer (the session store) owns it at any time.
type TokenStore interface {
	// Load returns the stored credentials. A store with nothing saved
	// returns zero Credentials and no error.
	Load(ctx context.Context) (Credentials, error)

	// Save replaces the stored credentials wholesale.
	Save(ctx context.Context, creds Credentials) error

	// Clear removes the stored credentials. Clearing an empty store is
	// not an error.
	Clear(ctx context.Context) error

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error

	// Close closes the store.
	Close() error
}
