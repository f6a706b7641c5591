package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/storynest/storynest-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all Postgres-backed repositories against a
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(pool),
		SessionRepo:      newPgxSessionRepository(pool),
		OAuthLinkRepo:    newPgxOAuthLinkRepository(pool),
		VerificationRepo: newPgxVerificationRepository(pool),
		StoryRepo:        newPgxStoryRepository(pool),
	}
}
