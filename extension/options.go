package extension

import (
	"log/slog"

	"github.com/xraph/gatehouse"
	"github.com/xraph/gatehouse/hook"
	"github.com/xraph/gatehouse/store"
)

// ExtOption configures the gatehouse Forge extension.
type ExtOption func(*Extension)

// WithConfig sets the extension configuration.
func WithConfig(cfg Config) ExtOption {
	return func(e *Extension) {
		e.config = cfg
	}
}

// WithBaseURL sets the platform backend URL.
func WithBaseURL(url string) ExtOption {
	return func(e *Extension) {
		e.config.BaseURL = url
	}
}

// WithTokenStore sets the durable credential store.
func WithTokenStore(s store.TokenStore) ExtOption {
	return func(e *Extension) {
		e.consoleOpts = append(e.consoleOpts, gatehouse.WithTokenStore(s))
	}
}

// WithConsoleOptions adds console-level options.
func WithConsoleOptions(opts ...gatehouse.Option) ExtOption {
	return func(e *Extension) {
		e.consoleOpts = append(e.consoleOpts, opts...)
	}
}

// WithHook registers a lifecycle hook.
func WithHook(h hook.Hook) ExtOption {
	return func(e *Extension) {
		e.consoleOpts = append(e.consoleOpts, gatehouse.WithHook(h))
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ExtOption {
	return func(e *Extension) {
		e.logger = l
	}
}

// WithDisableMigrate disables token store auto-migration on start.
func WithDisableMigrate() ExtOption {
	return func(e *Extension) {
		e.config.DisableMigrate = true
	}
}

// WithDisableRestore disables session restore on start.
func WithDisableRestore() ExtOption {
	return func(e *Extension) {
		e.config.DisableRestore = true
	}
}
