package services

import (
	"context"
	"time"

	"github.com/storynest/storynest-backend/internal/core/domain"
)

// CreatedSession is the caller-facing result of opening a session: the
// signed bearer token and its expiry.
type CreatedSession struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// SessionSvcFacade owns the session lifecycle: creation, token binding,
// expiry, and revocation.
type SessionSvcFacade interface {
	// CreateSession allocates a session row for the user and mints a bound
	// access token.
	CreateSession(ctx context.Context, userID string) (*CreatedSession, error)

	// ResolveSession verifies the signed token, confirms the session row is
	// still live, and returns the owning user. Any failure, including an
	// expired session with a still-valid signature, yields
	// apperrors.ErrUnauthorized.
	ResolveSession(ctx context.Context, tokenString string) (*domain.User, error)

	// RevokeSession deletes the session row. Idempotent; revoking a
	// nonexistent or already-revoked session is not an error.
	RevokeSession(ctx context.Context, sessionID string) error

	// RevokeSessionToken revokes the session bound to a signed token.
	// Always succeeds from the caller's perspective, even for invalid or
	// already-revoked tokens.
	RevokeSessionToken(ctx context.Context, tokenString string) error

	// PurgeExpiredSessions hard-deletes session rows past expiry.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
