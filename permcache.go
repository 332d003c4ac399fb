package gatehouse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/gatehouse/hook"
	"github.com/xraph/gatehouse/id"
	"github.com/xraph/gatehouse/identity"
	"github.com/xraph/gatehouse/permission"
)

// PermissionCache holds the effective permission set of the live Identity.
// It subscribes to identity transitions through the hook registry: on unset
// it clears synchronously, on set it starts an asynchronous fetch.
//
// Every identity transition advances a generation counter and each fetch is
// tagged with the generation it was issued for. A completion whose tag no
// longer matches is discarded, so a slow fetch for a superseded identity can
// never overwrite the set of the current one.
type PermissionCache struct {
	api     PermissionAPI
	hooks   *hook.Registry
	logger  *slog.Logger
	metrics *Metrics
	timeout time.Duration

	mu      sync.RWMutex
	gen     uint64
	userID  string
	set     permission.Set
	loading bool
}

var (
	_ hook.Hook            = (*PermissionCache)(nil)
	_ hook.IdentityChanged = (*PermissionCache)(nil)
)

func newPermissionCache(api PermissionAPI, hooks *hook.Registry, logger *slog.Logger, metrics *Metrics, timeout time.Duration) *PermissionCache {
	return &PermissionCache{
		api:     api,
		hooks:   hooks,
		logger:  logger,
		metrics: metrics,
		timeout: timeout,
	}
}

// Name implements hook.Hook.
func (c *PermissionCache) Name() string { return "permission-cache" }

// OnIdentityChanged implements hook.IdentityChanged. A nil identity clears
// the set before returning; a non-nil identity starts a background fetch
// for its permissions.
func (c *PermissionCache) OnIdentityChanged(_ context.Context, ident *identity.Identity) error {
	c.mu.Lock()
	c.gen++
	if ident == nil {
		c.userID = ""
		c.set = nil
		c.loading = false
		c.mu.Unlock()
		return nil
	}
	c.userID = ident.ID
	c.set = nil
	c.loading = true
	gen := c.gen
	userID := ident.ID
	c.mu.Unlock()

	go c.fetch(gen, userID)
	return nil
}

// Permissions returns the current permission set. It is empty while a fetch
// is in flight or after a failed fetch; use Loading to tell the two apart.
func (c *PermissionCache) Permissions() permission.Set {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.set
}

// Loading reports whether a fetch for the current identity is in flight.
func (c *PermissionCache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *PermissionCache) fetch(gen uint64, userID string) {
	fetchID := id.NewFetchID()
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	set, err := c.api.PermissionsForUser(ctx, userID)
	c.apply(gen, userID, set, err)

	if err != nil {
		c.logger.Warn("permission fetch failed",
			slog.String("fetch_id", fetchID.String()),
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return
	}
	c.logger.Debug("permissions loaded",
		slog.String("fetch_id", fetchID.String()),
		slog.String("user_id", userID),
		slog.Int("count", len(set)),
	)
}

// apply installs a fetch result unless the identity has moved on since the
// fetch was issued. A failed fetch resets the set to empty rather than
// leaving anything stale behind.
func (c *PermissionCache) apply(gen uint64, userID string, set permission.Set, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.metrics.PermissionFetchObserved("stale")
		return
	}
	c.loading = false
	if err != nil {
		c.set = permission.Set{}
		c.mu.Unlock()
		c.metrics.PermissionFetchObserved("failure")
		return
	}
	c.set = set
	c.mu.Unlock()

	c.metrics.PermissionFetchObserved("success")
	c.hooks.EmitPermissionsLoaded(context.Background(), userID, set)
}
