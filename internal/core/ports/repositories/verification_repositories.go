package repositories

import (
	"context"

	"github.com/storynest/storynest-backend/internal/core/domain"
)

// VerificationRepository defines persistence for email-verification records.
type VerificationRepository interface {
	// ReplaceVerification deletes any prior unverified records for the
	// record's user and inserts the new one, inside a single transaction,
	// so at most one unverified code is ever active per user.
	ReplaceVerification(ctx context.Context, verification domain.EmailVerification) error

	// FindActiveVerification retrieves the unverified record matching
	// (email, code), expired or not; callers decide how to report expiry.
	// Absent records yield apperrors.ErrNotFound.
	FindActiveVerification(ctx context.Context, email string, code string) (*domain.EmailVerification, error)

	// HasUnverifiedCode reports whether the user has an outstanding
	// unverified record.
	HasUnverifiedCode(ctx context.Context, userID string) (bool, error)

	// MarkVerified flips the record's verified flag and the owning user's
	// email_verified flag in a single transaction.
	MarkVerified(ctx context.Context, verificationID string, userID string) error
}
