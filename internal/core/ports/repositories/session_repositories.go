package repositories

import (
	"context"
	"time"

	"github.com/storynest/storynest-backend/internal/core/domain"
)

// SessionRepository defines persistence for session rows.
type SessionRepository interface {
	// SaveSession persists a new session row.
	SaveSession(ctx context.Context, session domain.Session) error

	// FindSessionByID retrieves a session by its ID, expired or not.
	// Callers re-check expiry; absent rows yield apperrors.ErrNotFound.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error)

	// DeleteSession removes a session row. Deleting a nonexistent session
	// is not an error.
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteExpiredSessions hard-deletes rows past expiry and returns the
	// number removed. Best-effort housekeeping; correctness never depends
	// on it because expiry is re-checked on every resolve.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
