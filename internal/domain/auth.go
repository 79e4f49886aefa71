package domain

import "time"

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user. The core
// performs no authentication itself; this exists so integrators and tests can
// mint tokens the middleware accepts.
type TokenIssuer interface {
	Issue(userID string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
