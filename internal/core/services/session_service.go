package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storynest/storynest-backend/internal/apperrors"
	"github.com/storynest/storynest-backend/internal/core/domain"
	portsrepo "github.com/storynest/storynest-backend/internal/core/ports/repositories"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/platform/config"
	"github.com/storynest/storynest-backend/internal/utils"
)

// sessionService implements SessionSvcFacade. A session row and its signed
// token share a lifetime; the row is authoritative, so revocation takes
// effect immediately regardless of remaining token validity.
type sessionService struct {
	cfg         *config.Config
	sessionRepo portsrepo.SessionRepository
	userRepo    portsrepo.UserReader
	tokenSvc    portssvc.TokenSvcFacade
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(cfg *config.Config, sessionRepo portsrepo.SessionRepository, userRepo portsrepo.UserReader, tokenSvc portssvc.TokenSvcFacade) portssvc.SessionSvcFacade {
	return &sessionService{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		tokenSvc:    tokenSvc,
	}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

// CreateSession allocates a session row with the configured TTL and mints a
// bound access token. The row's token column stores a raw session
// identifier, not the signed JWT, so the row can be looked up and revoked
// independently of token verification.
func (s *sessionService) CreateSession(ctx context.Context, userID string) (*portssvc.CreatedSession, error) {
	rawToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := domain.Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Token:     rawToken,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
		CreatedAt: now,
	}

	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	signed, expiresAt, err := s.tokenSvc.GenerateAccessToken(ctx, userID, session.SessionID, s.cfg.SessionTTL)
	if err != nil {
		// Best effort: don't leave an orphaned row behind a token that was never issued.
		_ = s.sessionRepo.DeleteSession(ctx, session.SessionID)
		return nil, fmt.Errorf("failed to mint access token: %w", err)
	}

	return &portssvc.CreatedSession{
		Token:     signed,
		SessionID: session.SessionID,
		ExpiresAt: expiresAt,
	}, nil
}

// ResolveSession verifies the token, confirms the session row is still live,
// and loads the owning user. An expired row is treated as nonexistent even
// if the sweep has not removed it yet.
func (s *sessionService) ResolveSession(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.tokenSvc.ValidateAccessToken(ctx, tokenString)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	session, err := s.sessionRepo.FindSessionByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.IsExpired(time.Now()) || session.UserID != claims.UserID {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	return user, nil
}

// RevokeSession deletes the session row. Idempotent.
func (s *sessionService) RevokeSession(ctx context.Context, sessionID string) error {
	return s.sessionRepo.DeleteSession(ctx, sessionID)
}

// RevokeSessionToken revokes the session bound to the signed token. Invalid
// tokens are a no-op: logout always succeeds from the caller's perspective.
func (s *sessionService) RevokeSessionToken(ctx context.Context, tokenString string) error {
	claims, err := s.tokenSvc.ValidateAccessToken(ctx, tokenString)
	if err != nil {
		return nil
	}
	return s.sessionRepo.DeleteSession(ctx, claims.SessionID)
}

// PurgeExpiredSessions hard-deletes rows past expiry.
func (s *sessionService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpiredSessions(ctx, time.Now())
}
