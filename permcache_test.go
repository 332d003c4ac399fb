package gatehouse

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/gatehouse/hook"
	"github.com/xraph/gatehouse/identity"
	"github.com/xraph/gatehouse/permission"
)

// stalledPermAPI never completes within a test; fetch outcomes are driven
// through apply directly so completion order is fully deterministic.
type stalledPermAPI struct{}

func (stalledPermAPI) PermissionsForUser(ctx context.Context, _ string) (permission.Set, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// instantPermAPI answers immediately with a fixed set.
type instantPermAPI struct{ set permission.Set }

func (a instantPermAPI) PermissionsForUser(context.Context, string) (permission.Set, error) {
	return a.set, nil
}

func newTestCache(api PermissionAPI) *PermissionCache {
	return newPermissionCache(api, hook.NewRegistry(slog.Default()), slog.Default(), nil, time.Hour)
}

func (c *PermissionCache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestFetchOnIdentitySet(t *testing.T) {
	cache := newTestCache(instantPermAPI{set: permission.Set{{CodeName: "view_user"}}})

	cache.OnIdentityChanged(context.Background(), &identity.Identity{ID: "7"})
	waitFor(t, func() bool { return cache.Permissions().Contains("view_user") })

	if cache.Loading() {
		t.Fatal("loading must be false after the fetch completed")
	}
}

func TestStaleFetchDiscarded(t *testing.T) {
	cache := newTestCache(stalledPermAPI{})
	ctx := context.Background()

	cache.OnIdentityChanged(ctx, &identity.Identity{ID: "7"})
	genX := cache.generation()
	cache.OnIdentityChanged(ctx, &identity.Identity{ID: "8"})
	genY := cache.generation()

	// The newer identity's fetch resolves first.
	py := permission.Set{{CodeName: "view_unit"}}
	cache.apply(genY, "8", py, nil)
	if !cache.Permissions().Contains("view_unit") {
		t.Fatal("current identity's result must be installed")
	}

	// The superseded identity's fetch resolves later and must be dropped.
	cache.apply(genX, "7", permission.Set{{CodeName: "delete_user"}}, nil)
	if cache.Permissions().Contains("delete_user") {
		t.Fatal("stale result overwrote the current set")
	}
	if !cache.Permissions().Contains("view_unit") {
		t.Fatal("current set must survive a stale completion")
	}
}

func TestClearOnIdentityUnsetIsSynchronous(t *testing.T) {
	cache := newTestCache(stalledPermAPI{})
	ctx := context.Background()

	cache.OnIdentityChanged(ctx, &identity.Identity{ID: "7"})
	gen := cache.generation()
	if !cache.Loading() {
		t.Fatal("a fetch must be in flight")
	}

	cache.OnIdentityChanged(ctx, nil)
	if len(cache.Permissions()) != 0 {
		t.Fatal("set must be empty immediately after identity unset")
	}
	if cache.Loading() {
		t.Fatal("loading must be false after identity unset")
	}

	// The in-flight fetch completing afterwards must not resurrect the set.
	cache.apply(gen, "7", permission.Set{{CodeName: "view_user"}}, nil)
	if len(cache.Permissions()) != 0 {
		t.Fatal("fetch completion after identity unset must be discarded")
	}
}

func TestFetchFailureResetsToEmpty(t *testing.T) {
	cache := newTestCache(stalledPermAPI{})
	ctx := context.Background()

	cache.OnIdentityChanged(ctx, &identity.Identity{ID: "7"})
	gen := cache.generation()
	cache.apply(gen, "7", nil, context.DeadlineExceeded)

	if len(cache.Permissions()) != 0 {
		t.Fatal("failed fetch must leave an empty set")
	}
	if cache.Loading() {
		t.Fatal("loading must be false after a failed fetch")
	}
}

// loadedHook records PermissionsLoaded notifications.
type loadedHook struct {
	userID string
	count  int
}

func (h *loadedHook) Name() string { return "loaded-recorder" }

func (h *loadedHook) OnPermissionsLoaded(_ context.Context, userID string, _ permission.Set) error {
	h.userID = userID
	h.count++
	return nil
}

func TestPermissionsLoadedHookSkipsStale(t *testing.T) {
	reg := hook.NewRegistry(slog.Default())
	recorder := &loadedHook{}
	reg.Register(recorder)
	cache := newPermissionCache(stalledPermAPI{}, reg, slog.Default(), nil, time.Hour)
	ctx := context.Background()

	cache.OnIdentityChanged(ctx, &identity.Identity{ID: "7"})
	genX := cache.generation()
	cache.OnIdentityChanged(ctx, &identity.Identity{ID: "8"})
	genY := cache.generation()

	cache.apply(genY, "8", permission.Set{{CodeName: "view_unit"}}, nil)
	cache.apply(genX, "7", permission.Set{{CodeName: "view_user"}}, nil)

	if recorder.count != 1 {
		t.Fatalf("expected one loaded notification, got %d", recorder.count)
	}
	if recorder.userID != "8" {
		t.Fatalf("expected notification for user 8, got %q", recorder.userID)
	}
}
