package domain

import "time"

// AuthProvider identifies the external identity provider of an OAuthLink.
type AuthProvider string

const (
	ProviderGoogle AuthProvider = "google"
	ProviderApple  AuthProvider = "apple"
	ProviderEmail  AuthProvider = "email"
)

// OAuthLink binds one external-provider identity to exactly one user.
// The (Provider, ProviderAccountID) pair is globally unique. Provider tokens
// are stored blind and never interpreted by this service.
type OAuthLink struct {
	LinkID            string       `json:"linkID"`
	UserID            string       `json:"userID"`
	Provider          AuthProvider `json:"provider"`
	ProviderAccountID string       `json:"providerAccountID"`
	AccessToken       *string      `json:"-"`
	RefreshToken      *string      `json:"-"`
	IDToken           *string      `json:"-"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}
