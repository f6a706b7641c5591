package services

import (
	"context"
	"time"
)

// TokenClaims is the verified content of an access token. Only the two IDs
// are trusted from the token itself; session liveness is re-checked against
// the store on every use.
type TokenClaims struct {
	UserID    string
	SessionID string
	IssuedAt  time.Time
}

// TokenSvcFacade defines the interface for issuing and verifying signed
// bearer tokens. Tokens are opaque to callers beyond the embedded IDs.
type TokenSvcFacade interface {
	// GenerateAccessToken mints a signed token bound to a user and session,
	// returning the token string and its expiry instant.
	GenerateAccessToken(ctx context.Context, userID string, sessionID string, ttl time.Duration) (string, time.Time, error)

	// ValidateAccessToken verifies signature then expiry and returns the
	// embedded claims. Malformed or tampered input fails closed with
	// apperrors.ErrUnauthorized.
	ValidateAccessToken(ctx context.Context, tokenString string) (*TokenClaims, error)
}
