// Package extension provides a Forge extension entry point for gatehouse.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/gatehouse"
	"github.com/xraph/gatehouse/client"
	"github.com/xraph/gatehouse/store"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "gatehouse"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Client-side session, token, and permission gating for the condominium console"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the gatehouse Console as a Forge extension.
type Extension struct {
	config      Config
	console     *gatehouse.Console
	rest        *client.Client
	logger      *slog.Logger
	consoleOpts []gatehouse.Option
}

// New creates a gatehouse Forge extension with the given options.
func New(opts ...ExtOption) *Extension {
	e := &Extension{config: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extension name.
func (e *Extension) Name() string { return ExtensionName }

// Description returns the extension description.
func (e *Extension) Description() string { return ExtensionDescription }

// Version returns the extension version.
func (e *Extension) Version() string { return ExtensionVersion }

// Dependencies returns the list of extension names this extension depends on.
func (e *Extension) Dependencies() []string { return []string{} }

// Console returns the underlying gatehouse console.
func (e *Extension) Console() *gatehouse.Console { return e.console }

// Register implements [forge.Extension]. It builds the console and
// registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.init(fapp); err != nil {
		return err
	}

	if err := vessel.Provide(fapp.Container(), func() (*gatehouse.Console, error) {
		return e.console, nil
	}); err != nil {
		return fmt.Errorf("gatehouse: register console in container: %w", err)
	}

	return nil
}

func (e *Extension) init(fapp forge.App) error {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := make([]gatehouse.Option, 0, len(e.consoleOpts)+3)
	opts = append(opts, gatehouse.WithLogger(logger))

	// The REST backend is built from config when a base URL is given;
	// an explicit WithConsoleOptions backend overrides it.
	if e.config.BaseURL != "" {
		e.rest = client.New(e.config.BaseURL, client.WithLogger(logger))
		opts = append(opts, gatehouse.WithBackend(e.rest))
	}

	// Try to resolve a token store from the DI container, fall back to
	// an option-provided one.
	if s, err := forge.Inject[store.TokenStore](fapp.Container()); err == nil {
		opts = append(opts, gatehouse.WithTokenStore(s))
	}

	opts = append(opts, e.consoleOpts...)

	console, err := gatehouse.New(opts...)
	if err != nil {
		return fmt.Errorf("gatehouse: create console: %w", err)
	}
	e.console = console

	// Close the loop between the session and the transport: the bearer
	// transport reads the live access token and triggers a silent refresh
	// on 401.
	if e.rest != nil {
		e.rest.SetTokenSource(console.Session().AccessToken)
		e.rest.SetRefresher(console.Session())
	}

	return nil
}

// Start migrates the token store and restores any persisted session.
func (e *Extension) Start(ctx context.Context) error {
	if e.console == nil {
		return errors.New("gatehouse: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.console.TokenStore().Migrate(ctx); err != nil {
			return fmt.Errorf("gatehouse: migration failed: %w", err)
		}
	}

	if !e.config.DisableRestore {
		return e.console.Start(ctx)
	}
	return nil
}

// Stop gracefully shuts down the console.
func (e *Extension) Stop(ctx context.Context) error {
	if e.console == nil {
		return nil
	}
	return e.console.Stop(ctx)
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.console == nil {
		return errors.New("gatehouse: extension not initialized")
	}
	return e.console.TokenStore().Ping(ctx)
}
