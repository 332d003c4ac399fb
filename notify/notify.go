// Package notify defines the user-facing notification sink. The session
// store emits success/failure notifications on login and logout through it;
// the console UI supplies an implementation that surfaces them as toasts.
package notify

import (
	"context"
	"log/slog"
)

// Notifier receives user-facing notifications. Implementations must not
// block: the session store calls them inline.
type Notifier interface {
	// Success reports a user-visible success message.
	Success(ctx context.Context, msg string)

	// Error reports a user-visible error message.
	Error(ctx context.Context, msg string)
}

// Nop discards all notifications.
type Nop struct{}

// NewNop creates a Notifier that discards everything.
func NewNop() Nop { return Nop{} }

func (Nop) Success(context.Context, string) {}
func (Nop) Error(context.Context, string)   {}

// Slog writes notifications to a structured logger. Useful for headless
// runs and as a default until the UI registers its own sink.
type Slog struct {
	logger *slog.Logger
}

// NewSlog creates a Notifier backed by the given logger.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger}
}

func (s *Slog) Success(ctx context.Context, msg string) {
	s.logger.InfoContext(ctx, "notification", slog.String("kind", "success"), slog.String("message", msg))
}

func (s *Slog) Error(ctx context.Context, msg string) {
	s.logger.WarnContext(ctx, "notification", slog.String("kind", "error"), slog.String("message", msg))
}
