// Package hook defines the lifecycle hook system for gatehouse.
// Hooks are notified of session and permission events (identity changed,
// logged in, logged out, permissions loaded, token refreshed) and can
// react to them, typically for cache invalidation or audit logging.
//
// Each lifecycle event is a separate interface so hooks opt in only to the
// events they care about. The permission cache itself subscribes through
// this registry: identity transitions reach it as explicit calls rather
// than hidden effects, which keeps the staleness rules observable.
package hook

import (
	"context"

	"github.com/xraph/gatehouse/identity"
	"github.com/xraph/gatehouse/permission"
)

// Hook is the base interface all hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// IdentityChanged is called whenever the live Identity transitions: set on
// login or restore, replaced on re-login, nil on logout or terminal refresh
// failure. It is invoked synchronously before the triggering session
// operation returns.
type IdentityChanged interface {
	OnIdentityChanged(ctx context.Context, ident *identity.Identity) error
}

// LoggedIn is called after a login completes (including degraded logins
// where the profile fetch failed).
type LoggedIn interface {
	OnLoggedIn(ctx context.Context, ident *identity.Identity) error
}

// LoggedOut is called after a logout completes.
type LoggedOut interface {
	OnLoggedOut(ctx context.Context) error
}

// TokenRefreshed is called after a successful silent token refresh.
// The identity does not change on refresh.
type TokenRefreshed interface {
	OnTokenRefreshed(ctx context.Context) error
}

// PermissionsLoaded is called after a permission fetch completes and is
// accepted (stale completions are discarded without notification).
type PermissionsLoaded interface {
	OnPermissionsLoaded(ctx context.Context, userID string, perms permission.Set) error
}

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
