package domain

import "time"

// SubscriptionTier is the billing tier assigned to a user.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
	TierPro     SubscriptionTier = "pro"
)

// UserRole distinguishes regular users from administrators.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents an account holder in the domain.
// PasswordHash is nil for accounts created purely through an OAuth provider;
// such a user is only valid while at least one OAuthLink points at it.
type User struct {
	UserID          string           `json:"userID"`
	Email           string           `json:"email"` // stored lowercase, globally unique
	FirstName       *string          `json:"firstName,omitempty"`
	LastName        *string          `json:"lastName,omitempty"`
	ProfileImageURL *string          `json:"profileImageURL,omitempty"`
	PasswordHash    *string          `json:"-"`
	EmailVerified   bool             `json:"emailVerified"`
	Role            UserRole         `json:"role"`
	Tier            SubscriptionTier `json:"tier"`
	StoryCount      int              `json:"storyCount"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// IsAdmin reports whether the user carries the administrative role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
