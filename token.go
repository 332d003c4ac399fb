package gatehouse

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiresAt returns the expiry of the current access token, decoded
// from its exp claim without signature verification. The client never holds
// the signing key; verification is the server's job. Returns
// ErrNotAuthenticated when no token is held and ErrNoTokenExpiry when the
// token carries no exp claim.
func (s *Session) TokenExpiresAt() (time.Time, error) {
	raw := s.AccessToken()
	if raw == "" {
		return time.Time{}, ErrNotAuthenticated
	}
	return tokenExpiry(raw)
}

func tokenExpiry(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, fmt.Errorf("gatehouse: parse access token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("gatehouse: read token expiry: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoTokenExpiry
	}
	return exp.Time, nil
}
