package gatehouse

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/gatehouse/identity"
	"github.com/xraph/gatehouse/permission"
	"github.com/xraph/gatehouse/store"
	"github.com/xraph/gatehouse/store/memory"
)

// fakeBackend is a configurable in-memory Backend.
type fakeBackend struct {
	loginCreds store.Credentials
	loginErr   error

	refreshAccess string
	refreshErr    error
	refreshCalls  int

	profile    *identity.Identity
	profileErr error

	perms    permission.Set
	permsErr error
}

var _ Backend = (*fakeBackend)(nil)

func (f *fakeBackend) Login(_ context.Context, _, _ string) (store.Credentials, error) {
	if f.loginErr != nil {
		return store.Credentials{}, f.loginErr
	}
	return f.loginCreds, nil
}

func (f *fakeBackend) Refresh(_ context.Context, _ string) (string, error) {
	f.refreshCalls++
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	return f.refreshAccess, nil
}

func (f *fakeBackend) CurrentProfile(_ context.Context) (*identity.Identity, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeBackend) PermissionsForUser(_ context.Context, _ string) (permission.Set, error) {
	if f.permsErr != nil {
		return nil, f.permsErr
	}
	return f.perms, nil
}

// serverError carries a structured display message like the REST client's
// error type does.
type serverError struct{ msg string }

func (e *serverError) Error() string       { return e.msg }
func (e *serverError) UserMessage() string { return e.msg }

func newTestConsole(t *testing.T, backend Backend) *Console {
	t.Helper()
	c, err := New(
		WithBackend(backend),
		WithTokenStore(memory.New()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRequiresBackendAndStore(t *testing.T) {
	if _, err := New(WithTokenStore(memory.New())); !errors.Is(err, ErrMissingBackend) {
		t.Fatalf("expected ErrMissingBackend, got %v", err)
	}
	if _, err := New(WithBackend(&fakeBackend{})); !errors.Is(err, ErrMissingTokenStore) {
		t.Fatalf("expected ErrMissingTokenStore, got %v", err)
	}
}

func TestRestoreWithoutStoredToken(t *testing.T) {
	c := newTestConsole(t, &fakeBackend{})
	ctx := context.Background()

	if c.Restore(ctx) {
		t.Fatal("nothing to restore")
	}
	if c.IsAuthenticated() {
		t.Fatal("must stay unauthenticated")
	}
	if len(c.Permissions().Permissions()) != 0 {
		t.Fatal("permission set must be empty")
	}
	if got := Render(c.Evaluator(), Gate{Permission: "view_user"}, "content", "fallback"); got != "fallback" {
		t.Fatalf("gated content must render the fallback, got %q", got)
	}
}

func TestRestoreWithDeadToken(t *testing.T) {
	backend := &fakeBackend{profileErr: &serverError{msg: "Token is expired"}}
	tokens := memory.New()
	ctx := context.Background()
	if err := tokens.Save(ctx, store.Credentials{AccessToken: "dead", RefreshToken: "dead"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c, err := New(WithBackend(backend), WithTokenStore(tokens))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if c.Restore(ctx) {
		t.Fatal("restore must fail on a dead token")
	}
	if c.IsAuthenticated() {
		t.Fatal("must stay unauthenticated")
	}
	creds, err := tokens.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !creds.Empty() {
		t.Fatal("dead tokens must be cleared from the store")
	}
}

func TestRestoreResolvesIdentity(t *testing.T) {
	backend := &fakeBackend{
		profile: &identity.Identity{ID: "7", Username: "alice", IsActive: true},
		perms:   permission.Set{{CodeName: "view_user"}},
	}
	tokens := memory.New()
	ctx := context.Background()
	if err := tokens.Save(ctx, store.Credentials{AccessToken: "acc", RefreshToken: "ref"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c, err := New(WithBackend(backend), WithTokenStore(tokens))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !c.Restore(ctx) {
		t.Fatal("restore must succeed")
	}
	if !c.IsAuthenticated() {
		t.Fatal("must be authenticated")
	}
	if c.Identity().Username != "alice" {
		t.Fatalf("unexpected identity: %+v", c.Identity())
	}
	if c.Session().AccessToken() != "acc" {
		t.Fatalf("unexpected access token: %q", c.Session().AccessToken())
	}
}

func TestLoginLoadsPermissions(t *testing.T) {
	backend := &fakeBackend{
		loginCreds: store.Credentials{AccessToken: "acc", RefreshToken: "ref"},
		profile:    &identity.Identity{ID: "7", Username: "alice", IsActive: true},
		perms:      permission.Set{{CodeName: "view_unit"}, {CodeName: "view_user"}},
	}
	c := newTestConsole(t, backend)
	ctx := context.Background()

	result := c.Login(ctx, "alice", "correct-pw")
	if !result.Success || result.Degraded {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !c.IsAuthenticated() {
		t.Fatal("must be authenticated")
	}

	waitFor(t, func() bool { return len(c.Permissions().Permissions()) == 2 })
	if !c.Evaluator().CanAccessModule("units") {
		t.Fatal("units must be accessible with view_unit")
	}
	if c.Evaluator().CanAccessModule("security") {
		t.Fatal("security must not be accessible")
	}

	// The token pair was persisted durably.
	creds, err := c.tokens.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if creds.AccessToken != "acc" || creds.RefreshToken != "ref" {
		t.Fatalf("unexpected stored credentials: %+v", creds)
	}
}

func TestLoginRejected(t *testing.T) {
	backend := &fakeBackend{loginErr: &serverError{msg: "Invalid credentials"}}
	c := newTestConsole(t, backend)

	result := c.Login(context.Background(), "alice", "wrong-pw")
	if result.Success {
		t.Fatal("login must fail")
	}
	if result.Error != "Invalid credentials" {
		t.Fatalf("expected the server's message, got %q", result.Error)
	}
	if c.IsAuthenticated() {
		t.Fatal("must stay unauthenticated")
	}
}

func TestLoginRejectedWithoutServerMessage(t *testing.T) {
	backend := &fakeBackend{loginErr: errors.New("dial tcp: connection refused")}
	c := newTestConsole(t, backend)

	result := c.Login(context.Background(), "alice", "pw")
	if result.Success {
		t.Fatal("login must fail")
	}
	if result.Error != defaultLoginError {
		t.Fatalf("expected the generic message, got %q", result.Error)
	}
}

func TestLoginDegradesOnProfileFailure(t *testing.T) {
	backend := &fakeBackend{
		loginCreds: store.Credentials{AccessToken: "acc", RefreshToken: "ref"},
		profileErr: &serverError{msg: "profile service unavailable"},
	}
	c := newTestConsole(t, backend)

	result := c.Login(context.Background(), "alice", "correct-pw")
	if !result.Success {
		t.Fatal("login must succeed despite the profile failure")
	}
	if !result.Degraded {
		t.Fatal("result must be flagged degraded")
	}
	ident := c.Identity()
	if ident == nil || ident.Username != "alice" || !ident.IsActive {
		t.Fatalf("expected a minimal active identity, got %+v", ident)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	backend := &fakeBackend{
		loginCreds: store.Credentials{AccessToken: "acc", RefreshToken: "ref"},
		profile:    &identity.Identity{ID: "7", Username: "alice"},
		perms:      permission.Set{{CodeName: "view_user"}},
	}
	c := newTestConsole(t, backend)
	ctx := context.Background()

	c.Login(ctx, "alice", "pw")
	waitFor(t, func() bool { return len(c.Permissions().Permissions()) == 1 })

	c.Logout(ctx)
	if c.IsAuthenticated() {
		t.Fatal("must be unauthenticated after logout")
	}
	// The clear is synchronous: observable the moment Logout returns.
	if len(c.Permissions().Permissions()) != 0 {
		t.Fatal("permission set must be empty after logout")
	}
	creds, err := c.tokens.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !creds.Empty() {
		t.Fatal("stored credentials must be cleared")
	}

	// Safe with no session.
	c.Logout(ctx)
}

func TestRefreshReplacesAccessToken(t *testing.T) {
	backend := &fakeBackend{
		loginCreds:    store.Credentials{AccessToken: "acc-1", RefreshToken: "ref"},
		profile:       &identity.Identity{ID: "7", Username: "alice"},
		refreshAccess: "acc-2",
	}
	c := newTestConsole(t, backend)
	ctx := context.Background()

	c.Login(ctx, "alice", "pw")
	if !c.RefreshAccessToken(ctx) {
		t.Fatal("refresh must succeed")
	}
	if c.Session().AccessToken() != "acc-2" {
		t.Fatalf("access token not replaced: %q", c.Session().AccessToken())
	}
	if !c.IsAuthenticated() {
		t.Fatal("identity must survive a successful refresh")
	}
	creds, err := c.tokens.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if creds.AccessToken != "acc-2" || creds.RefreshToken != "ref" {
		t.Fatalf("refreshed pair not persisted: %+v", creds)
	}
}

func TestRefreshFailureTerminatesSession(t *testing.T) {
	backend := &fakeBackend{
		loginCreds: store.Credentials{AccessToken: "acc", RefreshToken: "ref"},
		profile:    &identity.Identity{ID: "7", Username: "alice"},
		refreshErr: &serverError{msg: "Token is blacklisted"},
	}
	c := newTestConsole(t, backend)
	ctx := context.Background()

	c.Login(ctx, "alice", "pw")
	if c.RefreshAccessToken(ctx) {
		t.Fatal("refresh must fail")
	}
	if c.IsAuthenticated() {
		t.Fatal("a rejected refresh must end the session")
	}
	if backend.refreshCalls != 1 {
		t.Fatalf("refresh must not be retried, got %d calls", backend.refreshCalls)
	}
}

func TestRefreshWithoutStoredTokenTerminates(t *testing.T) {
	c := newTestConsole(t, &fakeBackend{})

	if c.RefreshAccessToken(context.Background()) {
		t.Fatal("refresh without a stored token must fail")
	}
	if c.IsAuthenticated() {
		t.Fatal("must be unauthenticated")
	}
}

// notifierRecorder captures user-facing notifications.
type notifierRecorder struct {
	successes []string
	errors    []string
}

func (n *notifierRecorder) Success(_ context.Context, msg string) {
	n.successes = append(n.successes, msg)
}

func (n *notifierRecorder) Error(_ context.Context, msg string) {
	n.errors = append(n.errors, msg)
}

func TestLoginNotifications(t *testing.T) {
	recorder := &notifierRecorder{}
	backend := &fakeBackend{loginErr: &serverError{msg: "Invalid credentials"}}
	c, err := New(
		WithBackend(backend),
		WithTokenStore(memory.New()),
		WithNotifier(recorder),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	c.Login(ctx, "alice", "wrong")
	if len(recorder.errors) != 1 || recorder.errors[0] != "Invalid credentials" {
		t.Fatalf("expected a failure notification, got %v", recorder.errors)
	}

	backend.loginErr = nil
	backend.loginCreds = store.Credentials{AccessToken: "acc", RefreshToken: "ref"}
	backend.profile = &identity.Identity{ID: "7", Username: "alice"}
	c.Login(ctx, "alice", "correct")
	if len(recorder.successes) == 0 {
		t.Fatal("expected a success notification")
	}

	c.Logout(ctx)
	if len(recorder.successes) < 2 {
		t.Fatal("expected a logout notification")
	}
}
