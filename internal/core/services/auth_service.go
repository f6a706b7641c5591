package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storynest/storynest-backend/internal/apperrors"
	"github.com/storynest/storynest-backend/internal/core/domain"
	portsrepo "github.com/storynest/storynest-backend/internal/core/ports/repositories"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/dto"
	"github.com/storynest/storynest-backend/internal/middleware"
	"github.com/storynest/storynest-backend/internal/platform/config"
	"github.com/storynest/storynest-backend/internal/utils"
)

// authService implements AuthSvcFacade. It orchestrates every
// subject-creation and authentication flow and owns the email-verification
// record lifecycle.
type authService struct {
	cfg              *config.Config
	userRepo         portsrepo.UserRepositoryFacade
	oauthLinkRepo    portsrepo.OAuthLinkRepository
	verificationRepo portsrepo.VerificationRepository
	sessionSvc       portssvc.SessionSvcFacade
	notifier         portssvc.NotifierSvc
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	cfg *config.Config,
	userRepo portsrepo.UserRepositoryFacade,
	oauthLinkRepo portsrepo.OAuthLinkRepository,
	verificationRepo portsrepo.VerificationRepository,
	sessionSvc portssvc.SessionSvcFacade,
	notifier portssvc.NotifierSvc,
) portssvc.AuthSvcFacade {
	return &authService{
		cfg:              cfg,
		userRepo:         userRepo,
		oauthLinkRepo:    oauthLinkRepo,
		verificationRepo: verificationRepo,
		sessionSvc:       sessionSvc,
		notifier:         notifier,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a credentialed user and logs them in immediately.
// Verification gates only the status flag, not session capability; the
// verification email is dispatched fire-and-forget so provider latency can
// never block session issuance. Duplicate emails surface as ErrDuplicate
// straight from the store's unique index, so two concurrent registrations
// with the same email yield exactly one success.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *portssvc.CreatedSession, error) {
	email := normalizeEmail(req.Email)

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Email:         email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PasswordHash:  &passwordHash,
		EmailVerified: false,
		Role:          domain.RoleUser,
		Tier:          domain.TierFree,
		StoryCount:    0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil, apperrors.ErrDuplicate
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	// The record is issued synchronously so a verify call can succeed the
	// moment registration returns; only the email dispatch is detached.
	verification, err := s.issueVerification(ctx, user.UserID, email)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to issue verification record",
			slog.String("user_id", user.UserID), slog.String("error", err.Error()))
	} else {
		s.dispatchVerificationAsync(ctx, email, req.FirstName, verification.Code)
	}

	session, err := s.sessionSvc.CreateSession(ctx, user.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session after registration: %w", err)
	}

	return &user, session, nil
}

// Login authenticates by email and password. A missing user, an OAuth-only
// account, and a wrong password all collapse to the same ErrUnauthorized so
// callers cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, email string, password string) (*domain.User, *portssvc.CreatedSession, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, nil, apperrors.ErrUnauthorized
	}

	session, err := s.sessionSvc.CreateSession(ctx, user.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session for login: %w", err)
	}

	return user, session, nil
}

// FindOrCreateOAuthUser resolves the subject for an external identity.
// Order matters: existing link wins, then merge-by-email, then a fresh user
// whose email is trusted as verified because the provider asserted it.
func (s *authService) FindOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, providerAccountID string, email string, profile portssvc.OAuthProfile) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	email = normalizeEmail(email)
	now := time.Now()

	link, err := s.oauthLinkRepo.FindLinkByProvider(ctx, provider, providerAccountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up oauth link: %w", err)
	}

	if link != nil {
		link.AccessToken = profile.AccessToken
		link.RefreshToken = profile.RefreshToken
		link.IDToken = profile.IDToken
		link.UpdatedAt = now
		if err := s.oauthLinkRepo.UpsertLink(ctx, *link); err != nil {
			return nil, fmt.Errorf("failed to refresh oauth link tokens: %w", err)
		}
		return s.findLinkedUser(ctx, link.UserID)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if user == nil {
		newUser := domain.User{
			UserID:          uuid.NewString(),
			Email:           email,
			FirstName:       profile.FirstName,
			LastName:        profile.LastName,
			ProfileImageURL: profile.PictureURL,
			PasswordHash:    nil,
			EmailVerified:   true, // provider-asserted email
			Role:            domain.RoleUser,
			Tier:            domain.TierFree,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Lost a concurrent race for the same email; adopt the winner.
				user, err = s.userRepo.FindUserByEmail(ctx, email)
				if err != nil {
					return nil, fmt.Errorf("failed to reload user after duplicate: %w", err)
				}
			} else {
				return nil, fmt.Errorf("failed to create oauth user: %w", err)
			}
		} else {
			user = &newUser
			logger.Info("Created new user from OAuth identity",
				slog.String("user_id", user.UserID), slog.String("provider", string(provider)))
		}
	} else {
		logger.Info("Linking OAuth identity to existing user by email",
			slog.String("user_id", user.UserID), slog.String("provider", string(provider)))
	}

	newLink := domain.OAuthLink{
		LinkID:            uuid.NewString(),
		UserID:            user.UserID,
		Provider:          provider,
		ProviderAccountID: providerAccountID,
		AccessToken:       profile.AccessToken,
		RefreshToken:      profile.RefreshToken,
		IDToken:           profile.IDToken,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.oauthLinkRepo.UpsertLink(ctx, newLink); err != nil {
		return nil, fmt.Errorf("failed to persist oauth link: %w", err)
	}

	return user, nil
}

func (s *authService) findLinkedUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load linked user: %w", err)
	}
	return user, nil
}

// SendVerificationEmail issues a fresh code, superseding any prior
// unverified one, and dispatches it synchronously. Dispatch failure returns
// false rather than an error; the caller decides whether that's fatal.
func (s *authService) SendVerificationEmail(ctx context.Context, userID string, email string, firstName *string) bool {
	logger := middleware.GetLoggerFromCtx(ctx)
	email = normalizeEmail(email)

	verification, err := s.issueVerification(ctx, userID, email)
	if err != nil {
		logger.Error("Failed to issue verification record",
			slog.String("user_id", userID), slog.String("error", err.Error()))
		return false
	}

	if err := s.notifier.SendVerificationEmail(ctx, email, firstName, verification.Code); err != nil {
		logger.Error("Failed to dispatch verification email",
			slog.String("user_id", userID), slog.String("error", err.Error()))
		return false
	}
	return true
}

// issueVerification replaces the user's active code with a new 6-digit one.
// The delete-prior-then-insert runs in one store transaction, so concurrent
// issuance cannot leave two active codes.
func (s *authService) issueVerification(ctx context.Context, userID string, email string) (*domain.EmailVerification, error) {
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	verification := domain.EmailVerification{
		VerificationID: uuid.NewString(),
		UserID:         userID,
		Email:          email,
		Code:           code,
		Verified:       false,
		ExpiresAt:      now.Add(s.cfg.VerificationCodeTTL),
		CreatedAt:      now,
	}

	if err := s.verificationRepo.ReplaceVerification(ctx, verification); err != nil {
		return nil, fmt.Errorf("failed to replace verification record: %w", err)
	}
	return &verification, nil
}

// dispatchVerificationAsync sends the code without blocking the caller.
// Failures are logged, never propagated.
func (s *authService) dispatchVerificationAsync(ctx context.Context, email string, firstName *string, code string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := s.notifier.SendVerificationEmail(detached, email, firstName, code); err != nil {
			logger.Error("Failed to dispatch verification email",
				slog.String("email", email), slog.String("error", err.Error()))
		}
	}()
}

// VerifyEmail consumes a code. Code and email mismatches are reported with
// one uniform message to resist enumeration; only a matched-but-expired code
// says so. The record flag and the user flag flip in a single store
// transaction.
func (s *authService) VerifyEmail(ctx context.Context, email string, code string) (*dto.VerifyEmailResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	email = normalizeEmail(email)

	verification, err := s.verificationRepo.FindActiveVerification(ctx, email, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.VerifyEmailResponse{Success: false, Message: "invalid code or email"}, nil
		}
		return nil, fmt.Errorf("failed to look up verification record: %w", err)
	}

	if verification.IsExpired(time.Now()) {
		return &dto.VerifyEmailResponse{Success: false, Message: "verification code expired"}, nil
	}

	if err := s.verificationRepo.MarkVerified(ctx, verification.VerificationID, verification.UserID); err != nil {
		return nil, fmt.Errorf("failed to mark verification complete: %w", err)
	}

	// Welcome email is a courtesy, never part of the contract.
	user, err := s.userRepo.FindUserByID(ctx, verification.UserID)
	var firstName *string
	if err == nil {
		firstName = user.FirstName
	}
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := s.notifier.SendWelcomeEmail(detached, email, firstName); err != nil {
			logger.Warn("Failed to dispatch welcome email",
				slog.String("email", email), slog.String("error", err.Error()))
		}
	}()

	return &dto.VerifyEmailResponse{Success: true, Message: "email verified"}, nil
}

// ResendVerificationEmail re-issues a code. Already-verified users get a
// no-op success and no new record.
func (s *authService) ResendVerificationEmail(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.ErrNotFound
		}
		return false, fmt.Errorf("failed to look up user for resend: %w", err)
	}

	if user.EmailVerified {
		return true, nil
	}

	return s.SendVerificationEmail(ctx, user.UserID, email, user.FirstName), nil
}

// GetVerificationStatus reports the verification state for a user.
func (s *authService) GetVerificationStatus(ctx context.Context, userID string) (*dto.VerificationStatusResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	hasCode, err := s.verificationRepo.HasUnverifiedCode(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check outstanding verification: %w", err)
	}

	return &dto.VerificationStatusResponse{
		EmailVerified:     user.EmailVerified,
		HasUnverifiedCode: hasCode,
	}, nil
}

// Logout revokes the session behind the token; always succeeds from the
// caller's perspective.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	return s.sessionSvc.RevokeSessionToken(ctx, tokenString)
}
