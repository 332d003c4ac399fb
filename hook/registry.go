package hook

import (
	"context"
	"log/slog"

	"github.com/xraph/gatehouse/identity"
	"github.com/xraph/gatehouse/permission"
)

// Named entry types pair a hook with its name for logging.

type identityChangedEntry struct {
	name string
	hook IdentityChanged
}
type loggedInEntry struct {
	name string
	hook LoggedIn
}
type loggedOutEntry struct {
	name string
	hook LoggedOut
}
type tokenRefreshedEntry struct {
	name string
	hook TokenRefreshed
}
type permissionsLoadedEntry struct {
	name string
	hook PermissionsLoaded
}
type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered hooks and dispatches lifecycle events.
// It type-caches hooks at registration time so emit calls iterate only
// over hooks implementing the relevant event.
type Registry struct {
	hooks  []Hook
	logger *slog.Logger

	identityChanged   []identityChangedEntry
	loggedIn          []loggedInEntry
	loggedOut         []loggedOutEntry
	tokenRefreshed    []tokenRefreshedEntry
	permissionsLoaded []permissionsLoadedEntry
	shutdown          []shutdownEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register adds a hook and type-asserts it into all applicable event
// caches. Hooks are notified in registration order.
func (r *Registry) Register(h Hook) {
	r.hooks = append(r.hooks, h)
	name := h.Name()

	if e, ok := h.(IdentityChanged); ok {
		r.identityChanged = append(r.identityChanged, identityChangedEntry{name, e})
	}
	if e, ok := h.(LoggedIn); ok {
		r.loggedIn = append(r.loggedIn, loggedInEntry{name, e})
	}
	if e, ok := h.(LoggedOut); ok {
		r.loggedOut = append(r.loggedOut, loggedOutEntry{name, e})
	}
	if e, ok := h.(TokenRefreshed); ok {
		r.tokenRefreshed = append(r.tokenRefreshed, tokenRefreshedEntry{name, e})
	}
	if e, ok := h.(PermissionsLoaded); ok {
		r.permissionsLoaded = append(r.permissionsLoaded, permissionsLoadedEntry{name, e})
	}
	if e, ok := h.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, e})
	}
}

// Hooks returns all registered hooks.
func (r *Registry) Hooks() []Hook { return r.hooks }

// EmitIdentityChanged notifies all hooks that implement IdentityChanged.
func (r *Registry) EmitIdentityChanged(ctx context.Context, ident *identity.Identity) {
	for _, e := range r.identityChanged {
		if err := e.hook.OnIdentityChanged(ctx, ident); err != nil {
			r.logHookError("OnIdentityChanged", e.name, err)
		}
	}
}

// EmitLoggedIn notifies all hooks that implement LoggedIn.
func (r *Registry) EmitLoggedIn(ctx context.Context, ident *identity.Identity) {
	for _, e := range r.loggedIn {
		if err := e.hook.OnLoggedIn(ctx, ident); err != nil {
			r.logHookError("OnLoggedIn", e.name, err)
		}
	}
}

// EmitLoggedOut notifies all hooks that implement LoggedOut.
func (r *Registry) EmitLoggedOut(ctx context.Context) {
	for _, e := range r.loggedOut {
		if err := e.hook.OnLoggedOut(ctx); err != nil {
			r.logHookError("OnLoggedOut", e.name, err)
		}
	}
}

// EmitTokenRefreshed notifies all hooks that implement TokenRefreshed.
func (r *Registry) EmitTokenRefreshed(ctx context.Context) {
	for _, e := range r.tokenRefreshed {
		if err := e.hook.OnTokenRefreshed(ctx); err != nil {
			r.logHookError("OnTokenRefreshed", e.name, err)
		}
	}
}

// EmitPermissionsLoaded notifies all hooks that implement PermissionsLoaded.
func (r *Registry) EmitPermissionsLoaded(ctx context.Context, userID string, perms permission.Set) {
	for _, e := range r.permissionsLoaded {
		if err := e.hook.OnPermissionsLoaded(ctx, userID, perms); err != nil {
			r.logHookError("OnPermissionsLoaded", e.name, err)
		}
	}
}

// EmitShutdown notifies all hooks that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Hook errors are never propagated; they must not block the session.
func (r *Registry) logHookError(event, hookName string, err error) {
	r.logger.Warn("hook error",
		slog.String("event", event),
		slog.String("hook", hookName),
		slog.String("error", err.Error()),
	)
}
