package gatehouse

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/xraph/gatehouse/hook"
	"github.com/xraph/gatehouse/identity"
	"github.com/xraph/gatehouse/notify"
	"github.com/xraph/gatehouse/store"
)

// defaultLoginError is shown when the auth service fails without a
// structured message.
const defaultLoginError = "Authentication failed. Check your credentials."

// Session owns the Credential Pair and the live Identity. It is the only
// writer of both. Identity transitions are published through the hook
// registry before the triggering operation returns, so subscribers (the
// permission cache in particular) observe them synchronously.
//
// Exactly these transitions exist: login or restore success sets the
// identity; logout or a failed refresh clears it. A successful silent
// refresh keeps the identity as is.
type Session struct {
	auth     AuthAPI
	profile  ProfileAPI
	tokens   store.TokenStore
	notifier notify.Notifier
	hooks    *hook.Registry
	logger   *slog.Logger
	metrics  *Metrics

	mu    sync.RWMutex
	creds store.Credentials
	ident *identity.Identity
}

func newSession(auth AuthAPI, profile ProfileAPI, tokens store.TokenStore, notifier notify.Notifier, hooks *hook.Registry, logger *slog.Logger, metrics *Metrics) *Session {
	return &Session{
		auth:     auth,
		profile:  profile,
		tokens:   tokens,
		notifier: notifier,
		hooks:    hooks,
		logger:   logger,
		metrics:  metrics,
	}
}

// Restore resolves a durably stored access token to an Identity at process
// start. It reports whether a session was restored. Failures never escape:
// a bad or expired token clears the stored pair and leaves the session
// unauthenticated.
func (s *Session) Restore(ctx context.Context) bool {
	creds, err := s.tokens.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load stored credentials", slog.String("error", err.Error()))
		return false
	}
	if creds.Empty() {
		return false
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	ident, err := s.profile.CurrentProfile(ctx)
	if err != nil {
		s.logger.InfoContext(ctx, "stored session could not be restored", slog.String("error", err.Error()))
		s.discard(ctx)
		return false
	}

	s.setIdentity(ctx, ident)
	s.logger.InfoContext(ctx, "session restored",
		slog.String("user_id", ident.ID),
		slog.String("username", ident.Username),
	)
	return true
}

// Login exchanges credentials for a token pair and resolves the identity.
// A rejected credential exchange returns a failed result carrying the
// server's message; a failed profile lookup after a successful exchange
// degrades to a minimal identity instead of failing the login.
func (s *Session) Login(ctx context.Context, username, password string) LoginResult {
	creds, err := s.auth.Login(ctx, username, password)
	if err != nil {
		msg := userMessage(err)
		s.logger.WarnContext(ctx, "login failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		s.notifier.Error(ctx, msg)
		s.metrics.LoginObserved("failure")
		return LoginResult{Success: false, Error: msg}
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	if err := s.tokens.Save(ctx, creds); err != nil {
		s.logger.WarnContext(ctx, "failed to persist credentials", slog.String("error", err.Error()))
	}

	degraded := false
	ident, err := s.profile.CurrentProfile(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "profile fetch failed after login, using degraded identity",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		ident = identity.Degraded(username)
		degraded = true
	}

	s.setIdentity(ctx, ident)
	s.hooks.EmitLoggedIn(ctx, ident)
	s.notifier.Success(ctx, "Signed in as "+ident.Username)
	if degraded {
		s.metrics.LoginObserved("degraded")
	} else {
		s.metrics.LoginObserved("success")
	}
	return LoginResult{Success: true, Degraded: degraded}
}

// Logout clears the persisted Credential Pair and the Identity. It is safe
// to call with no live session. The identity-changed event fires before
// Logout returns, so the permission cache is already empty when it does.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.creds = store.Credentials{}
	s.ident = nil
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to clear stored credentials", slog.String("error", err.Error()))
	}

	s.hooks.EmitIdentityChanged(ctx, nil)
	s.hooks.EmitLoggedOut(ctx)
	s.notifier.Success(ctx, "Signed out.")
}

// RefreshAccessToken requests a new access token with the stored refresh
// token and reports whether one is now held. A missing or rejected refresh
// token is terminal: the session is logged out, not retried.
func (s *Session) RefreshAccessToken(ctx context.Context) bool {
	s.mu.RLock()
	refresh := s.creds.RefreshToken
	s.mu.RUnlock()

	if refresh == "" {
		s.logger.InfoContext(ctx, "no refresh token stored, ending session")
		s.metrics.RefreshObserved("failure")
		s.Logout(ctx)
		return false
	}

	access, err := s.auth.Refresh(ctx, refresh)
	if err != nil {
		s.logger.InfoContext(ctx, "token refresh rejected, ending session", slog.String("error", err.Error()))
		s.metrics.RefreshObserved("failure")
		s.Logout(ctx)
		return false
	}

	s.mu.Lock()
	s.creds.AccessToken = access
	creds := s.creds
	s.mu.Unlock()
	if err := s.tokens.Save(ctx, creds); err != nil {
		s.logger.WarnContext(ctx, "failed to persist refreshed credentials", slog.String("error", err.Error()))
	}

	s.hooks.EmitTokenRefreshed(ctx)
	s.metrics.RefreshObserved("success")
	return true
}

// IsAuthenticated reports whether an Identity is live.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident != nil
}

// Identity returns the live Identity, or nil when unauthenticated.
func (s *Session) Identity() *identity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident
}

// AccessToken returns the current access token, or "" when none is held.
// The HTTP transport reads it per request.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.AccessToken
}

// setIdentity installs the identity and publishes the transition.
func (s *Session) setIdentity(ctx context.Context, ident *identity.Identity) {
	s.mu.Lock()
	s.ident = ident
	s.mu.Unlock()
	s.hooks.EmitIdentityChanged(ctx, ident)
}

// discard drops the in-memory and persisted credentials without the logout
// side effects. Used when a stored token turns out to be dead at restore.
func (s *Session) discard(ctx context.Context) {
	s.mu.Lock()
	s.creds = store.Credentials{}
	s.ident = nil
	s.mu.Unlock()
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to clear stored credentials", slog.String("error", err.Error()))
	}
}

// userMessage extracts a display message from a backend error. Errors that
// carry a structured server message expose it through UserMessage.
func userMessage(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return defaultLoginError
}
