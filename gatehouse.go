// Package gatehouse is the client-side session and authorization core for
// the condominium administration console.
//
// It owns the token lifecycle (login, durable persistence, silent refresh,
// logout), keeps an identity-scoped permission cache, and answers allow/deny
// questions through a pure evaluator over static module and action tables.
// The Gate type builds on the evaluator as the declarative "render this only
// if allowed" primitive used by the console's screens.
//
//	console, err := gatehouse.New(
//	    gatehouse.WithBackend(api),
//	    gatehouse.WithTokenStore(tokens),
//	)
//	console.Restore(ctx)
//	if console.Evaluator().CanPerformAction("units", permission.ActionDelete) {
//	    // show the delete button
//	}
package gatehouse

import (
	"context"

	"github.com/xraph/gatehouse/identity"
	"github.com/xraph/gatehouse/permission"
	"github.com/xraph/gatehouse/store"
)

// AuthAPI is the external authentication service: credential exchange and
// token refresh.
type AuthAPI interface {
	// Login exchanges a username and password for a token pair.
	Login(ctx context.Context, username, password string) (store.Credentials, error)

	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// ProfileAPI is the external identity service: resolves the current access
// token to the signed-in profile.
type ProfileAPI interface {
	CurrentProfile(ctx context.Context) (*identity.Identity, error)
}

// PermissionAPI is the external permission service: lists the effective
// permissions of a user.
type PermissionAPI interface {
	PermissionsForUser(ctx context.Context, userID string) (permission.Set, error)
}

// Backend bundles the three collaborator services the console depends on.
// The client package provides the REST implementation.
type Backend interface {
	AuthAPI
	ProfileAPI
	PermissionAPI
}

// LoginResult is the outcome of a login attempt. Error carries the
// human-readable message for display when Success is false.
type LoginResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Degraded is set when the credential exchange succeeded but the
	// profile lookup failed, leaving a minimal placeholder identity.
	Degraded bool `json:"degraded,omitempty"`
}
