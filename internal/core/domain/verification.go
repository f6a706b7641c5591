package domain

import "time"

// EmailVerification is one outstanding email-verification attempt.
// At most one unverified record is active per user: issuing a new code
// deletes prior unverified records in the same transaction as the insert.
type EmailVerification struct {
	VerificationID string    `json:"verificationID"`
	UserID         string    `json:"userID"`
	Email          string    `json:"email"`
	Code           string    `json:"-"` // 6-digit numeric
	Verified       bool      `json:"verified"`
	ExpiresAt      time.Time `json:"expiresAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// IsExpired reports whether the code has passed its expiry instant.
func (v *EmailVerification) IsExpired(now time.Time) bool {
	return !v.ExpiresAt.After(now)
}
