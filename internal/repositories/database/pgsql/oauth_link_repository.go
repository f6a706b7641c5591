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

type PgxOAuthLinkRepository struct {
	BaseRepository
}

func newPgxOAuthLinkRepository(db *pgxpool.Pool) portsrepo.OAuthLinkRepository {
	return &PgxOAuthLinkRepository{BaseRepository{Pool: db}}
}

// Ensure PgxOAuthLinkRepository implements portsrepo.OAuthLinkRepository
var _ portsrepo.OAuthLinkRepository = (*PgxOAuthLinkRepository)(nil)

const oauthLinkColumns = `link_id, user_id, provider, provider_account_id, access_token, refresh_token, id_token, created_at, updated_at`

func scanOAuthLink(row pgx.Row) (*domain.OAuthLink, error) {
	var link domain.OAuthLink
	err := row.Scan(
		&link.LinkID,
		&link.UserID,
		&link.Provider,
		&link.ProviderAccountID,
		&link.AccessToken,
		&link.RefreshToken,
		&link.IDToken,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *PgxOAuthLinkRepository) FindLinkByProvider(ctx context.Context, provider domain.AuthProvider, providerAccountID string) (*domain.OAuthLink, error) {
	query := `
        SELECT ` + oauthLinkColumns + `
        FROM oauth_links
        WHERE provider = $1 AND provider_account_id = $2;
    `
	link, err := scanOAuthLink(r.Pool.QueryRow(ctx, query, provider, providerAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find oauth link: %w", err)
	}
	return link, nil
}

// UpsertLink inserts the link or, on a (provider, provider_account_id)
// conflict, refreshes the provider tokens on the existing row.
func (r *PgxOAuthLinkRepository) UpsertLink(ctx context.Context, link domain.OAuthLink) error {
	query := `
        INSERT INTO oauth_links (` + oauthLinkColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (provider, provider_account_id) DO UPDATE
        SET access_token  = EXCLUDED.access_token,
            refresh_token = COALESCE(EXCLUDED.refresh_token, oauth_links.refresh_token),
            id_token      = EXCLUDED.id_token,
            updated_at    = EXCLUDED.updated_at;
    `
	_, err := r.Pool.Exec(ctx, query,
		link.LinkID,
		link.UserID,
		link.Provider,
		link.ProviderAccountID,
		link.AccessToken,
		link.RefreshToken,
		link.IDToken,
		link.CreatedAt,
		link.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert oauth link: %w", err)
	}
	return nil
}
