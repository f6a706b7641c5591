package domain

import "time"

// Session is the server-side record backing one issued bearer token.
// Token holds the raw session identifier, not the signed JWT, so a session
// can be looked up and revoked independently of token verification.
// An expired session is treated as nonexistent even before it is purged.
type Session struct {
	SessionID string    `json:"sessionID"`
	UserID    string    `json:"userID"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsExpired reports whether the session has passed its expiry instant.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
