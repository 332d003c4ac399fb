package gatehouse

import (
	"log/slog"

	"github.com/xraph/gatehouse/hook"
	"github.com/xraph/gatehouse/notify"
	"github.com/xraph/gatehouse/store"
)

// Option is a functional option for the Console.
type Option func(*Console)

// WithBackend sets the collaborator services (auth, profile, permissions).
func WithBackend(b Backend) Option { return func(c *Console) { c.backend = b } }

// WithTokenStore sets the durable credential store.
func WithTokenStore(s store.TokenStore) Option { return func(c *Console) { c.tokens = s } }

// WithNotifier sets the user-facing notification sink.
func WithNotifier(n notify.Notifier) Option { return func(c *Console) { c.notifier = n } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(c *Console) { c.logger = l } }

// WithConfig sets the console configuration.
func WithConfig(cfg Config) Option { return func(c *Console) { c.config = cfg } }

// WithMetrics sets the metrics collector. A nil collector disables metrics.
func WithMetrics(m *Metrics) Option { return func(c *Console) { c.metrics = m } }

// WithHook registers a lifecycle hook with the console.
func WithHook(h hook.Hook) Option {
	return func(c *Console) {
		if c.hooks == nil {
			c.hooks = hook.NewRegistry(c.logger)
		}
		c.hooks.Register(h)
	}
}
