package gatehouse

import (
	"context"
	"log/slog"

	"github.com/xraph/gatehouse/decisionlog"
	"github.com/xraph/gatehouse/hook"
	"github.com/xraph/gatehouse/identity"
	"github.com/xraph/gatehouse/notify"
	"github.com/xraph/gatehouse/store"
)

// Console bundles the session store, the permission cache, and the access
// evaluator behind one façade with an explicit lifecycle. It is the single
// injected owner of all session state; nothing in gatehouse is a package
// global.
type Console struct {
	config   Config
	logger   *slog.Logger
	backend  Backend
	tokens   store.TokenStore
	notifier notify.Notifier
	hooks    *hook.Registry
	metrics  *Metrics

	session   *Session
	cache     *PermissionCache
	evaluator *Evaluator
	decisions *decisionlog.Log
}

// New creates a Console. A backend and a token store are required; every
// other collaborator has a working default.
func New(opts ...Option) (*Console, error) {
	c := &Console{
		config:   DefaultConfig(),
		logger:   slog.Default(),
		notifier: notify.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.backend == nil {
		return nil, ErrMissingBackend
	}
	if c.tokens == nil {
		return nil, ErrMissingTokenStore
	}
	if c.hooks == nil {
		c.hooks = hook.NewRegistry(c.logger)
	}

	c.decisions = decisionlog.New(c.config.DecisionLogSize)
	c.cache = newPermissionCache(c.backend, c.hooks, c.logger, c.metrics, c.config.fetchTimeout())
	c.hooks.Register(c.cache)
	c.session = newSession(c.backend, c.backend, c.tokens, c.notifier, c.hooks, c.logger, c.metrics)
	c.evaluator = NewEvaluator(c.session, c.cache)
	return c, nil
}

// Start restores any durably persisted session. It never fails the
// application start: a bad or missing token simply leaves the console
// unauthenticated.
func (c *Console) Start(ctx context.Context) error {
	c.Restore(ctx)
	return nil
}

// Stop notifies shutdown hooks. The token store's own lifecycle belongs to
// whoever opened it.
func (c *Console) Stop(ctx context.Context) error {
	c.hooks.EmitShutdown(ctx)
	return nil
}

// Session returns the session store.
func (c *Console) Session() *Session { return c.session }

// Permissions returns the permission cache.
func (c *Console) Permissions() *PermissionCache { return c.cache }

// Evaluator returns the access evaluator.
func (c *Console) Evaluator() *Evaluator { return c.evaluator }

// Decisions returns the in-memory gate decision log.
func (c *Console) Decisions() *decisionlog.Log { return c.decisions }

// Hooks returns the lifecycle hook registry.
func (c *Console) Hooks() *hook.Registry { return c.hooks }

// TokenStore returns the durable credential store.
func (c *Console) TokenStore() store.TokenStore { return c.tokens }

// Metrics returns the metrics collector. May be nil.
func (c *Console) Metrics() *Metrics { return c.metrics }

// Restore delegates to the session store.
func (c *Console) Restore(ctx context.Context) bool { return c.session.Restore(ctx) }

// Login delegates to the session store.
func (c *Console) Login(ctx context.Context, username, password string) LoginResult {
	return c.session.Login(ctx, username, password)
}

// Logout delegates to the session store.
func (c *Console) Logout(ctx context.Context) { c.session.Logout(ctx) }

// RefreshAccessToken delegates to the session store.
func (c *Console) RefreshAccessToken(ctx context.Context) bool {
	return c.session.RefreshAccessToken(ctx)
}

// IsAuthenticated reports whether an identity is live.
func (c *Console) IsAuthenticated() bool { return c.session.IsAuthenticated() }

// Identity returns the live identity, or nil.
func (c *Console) Identity() *identity.Identity { return c.session.Identity() }
