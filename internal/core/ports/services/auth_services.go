package services

import (
	"context"

	"github.com/storynest/storynest-backend/internal/core/domain"
	"github.com/storynest/storynest-backend/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// OAuthProfile carries the identity attributes asserted by an external
// provider, plus the provider tokens to store blind.
type OAuthProfile struct {
	FirstName    *string
	LastName     *string
	PictureURL   *string
	AccessToken  *string
	RefreshToken *string
	IDToken      *string
}

// AuthSvcFacade orchestrates registration, login, OAuth account linking, and
// the email-verification state machine.
type AuthSvcFacade interface {
	// Register creates a credentialed user, dispatches a verification email
	// (best-effort), and opens a session so the caller is immediately
	// logged in. Duplicate emails yield apperrors.ErrDuplicate.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *CreatedSession, error)

	// Login authenticates by email and password. A missing user, an
	// OAuth-only account, and a wrong password all yield the same
	// apperrors.ErrUnauthorized.
	Login(ctx context.Context, email string, password string) (*domain.User, *CreatedSession, error)

	// FindOrCreateOAuthUser resolves the user for an external identity:
	// existing link (refresh tokens), else merge by email, else create a
	// new user with the email trusted as verified. The caller issues the
	// session afterwards.
	FindOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, providerAccountID string, email string, profile OAuthProfile) (*domain.User, error)

	// SendVerificationEmail issues a fresh 6-digit code, superseding any
	// prior unverified one, and dispatches it. Returns false rather than an
	// error on dispatch failure.
	SendVerificationEmail(ctx context.Context, userID string, email string, firstName *string) bool

	// VerifyEmail consumes a code. Mismatched email/code pairs are not
	// distinguished in the response, to resist enumeration.
	VerifyEmail(ctx context.Context, email string, code string) (*dto.VerifyEmailResponse, error)

	// ResendVerificationEmail re-issues a code; a no-op success when the
	// user is already verified.
	ResendVerificationEmail(ctx context.Context, email string) (bool, error)

	// GetVerificationStatus reports the verification state for a user.
	GetVerificationStatus(ctx context.Context, userID string) (*dto.VerificationStatusResponse, error)

	// Logout revokes the session behind the token. Always succeeds from the
	// caller's perspective.
	Logout(ctx context.Context, tokenString string) error
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
