package repositories

import (
	"context"

	"github.com/storynest/storynest-backend/internal/core/domain"
)

// OAuthLinkRepository defines persistence for external-provider identities.
type OAuthLinkRepository interface {
	// FindLinkByProvider retrieves the link for a (provider, provider account
	// ID) pair, or apperrors.ErrNotFound.
	FindLinkByProvider(ctx context.Context, provider domain.AuthProvider, providerAccountID string) (*domain.OAuthLink, error)

	// UpsertLink inserts the link, or refreshes the stored provider tokens
	// when the (provider, provider account ID) pair already exists. The pair
	// is unique at the store level, so concurrent first logins with the same
	// external identity cannot create duplicates.
	UpsertLink(ctx context.Context, link domain.OAuthLink) error
}
