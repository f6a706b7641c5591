package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/storynest/storynest-backend/internal/apperrors"
	"github.com/storynest/storynest-backend/internal/core/domain"
	portsrepo "github.com/storynest/storynest-backend/internal/core/ports/repositories"
)

type PgxVerificationRepository struct {
	BaseRepository
}

func newPgxVerificationRepository(db *pgxpool.Pool) portsrepo.VerificationRepository {
	return &PgxVerificationRepository{BaseRepository{Pool: db}}
}

// Ensure PgxVerificationRepository implements portsrepo.VerificationRepository
var _ portsrepo.VerificationRepository = (*PgxVerificationRepository)(nil)

const verificationColumns = `verification_id, user_id, email, code, verified, expires_at, created_at`

func scanVerification(row pgx.Row) (*domain.EmailVerification, error) {
	var verification domain.EmailVerification
	err := row.Scan(
		&verification.VerificationID,
		&verification.UserID,
		&verification.Email,
		&verification.Code,
		&verification.Verified,
		&verification.ExpiresAt,
		&verification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

// ReplaceVerification deletes any unverified codes for the user and inserts
// the new one in a single transaction, so at most one live code exists per
// user at any point.
func (r *PgxVerificationRepository) ReplaceVerification(ctx context.Context, verification domain.EmailVerification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	deleteQuery := `DELETE FROM email_verifications WHERE user_id = $1 AND verified = FALSE;`
	if _, err := tx.Exec(ctx, deleteQuery, verification.UserID); err != nil {
		return fmt.Errorf("failed to delete prior verification codes: %w", err)
	}

	insertQuery := `
        INSERT INTO email_verifications (` + verificationColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err = tx.Exec(ctx, insertQuery,
		verification.VerificationID,
		verification.UserID,
		verification.Email,
		verification.Code,
		verification.Verified,
		verification.ExpiresAt,
		verification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert verification code: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxVerificationRepository) FindActiveVerification(ctx context.Context, email string, code string) (*domain.EmailVerification, error) {
	query := `
        SELECT ` + verificationColumns + `
        FROM email_verifications
        WHERE email = lower($1) AND code = $2 AND verified = FALSE
        ORDER BY created_at DESC
        LIMIT 1;
    `
	verification, err := scanVerification(r.Pool.QueryRow(ctx, query, email, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find verification code: %w", err)
	}
	return verification, nil
}

func (r *PgxVerificationRepository) HasUnverifiedCode(ctx context.Context, userID string) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM email_verifications
            WHERE user_id = $1 AND verified = FALSE AND expires_at > now()
        );
    `
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for unverified code: %w", err)
	}
	return exists, nil
}

// MarkVerified flips the verification record and the user's verified flag
// in a single transaction.
func (r *PgxVerificationRepository) MarkVerified(ctx context.Context, verificationID string, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	verificationQuery := `UPDATE email_verifications SET verified = TRUE WHERE verification_id = $1;`
	cmdTag, err := tx.Exec(ctx, verificationQuery, verificationID)
	if err != nil {
		return fmt.Errorf("failed to mark verification record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("verification record not found: %w", apperrors.ErrNotFound)
	}

	userQuery := `UPDATE users SET email_verified = TRUE, updated_at = now() WHERE user_id = $1;`
	cmdTag, err = tx.Exec(ctx, userQuery, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}
