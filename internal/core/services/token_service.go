package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/storynest/storynest-backend/internal/apperrors"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/middleware"
	"github.com/storynest/storynest-backend/internal/platform/config"
)

// accessTokenClaims binds a token to both its subject and its server-side
// session. The session ID travels in a private "sid" claim; no other claim
// is trusted beyond the two IDs.
type accessTokenClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// tokenService implements TokenSvcFacade using HMAC-signed JWTs. The signing
// key comes from process-wide configuration loaded once at startup.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken mints a signed token carrying {userID, sessionID, iat, exp}.
func (s *tokenService) GenerateAccessToken(ctx context.Context, userID string, sessionID string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiryTime := now.Add(ttl)

	claims := accessTokenClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWTIssuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiryTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, expiryTime, nil
}

// ValidateAccessToken verifies the signature, then the time claims (with the
// configured clock-skew leeway), and returns the embedded IDs. All failure
// modes collapse to ErrUnauthorized toward the caller; the distinction
// (expired vs malformed vs bad signature) is logged only.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*portssvc.TokenClaims, error) {
	claims := &accessTokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithLeeway(s.cfg.JWTClockSkew), jwt.WithIssuer(s.cfg.JWTIssuer))

	if err != nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			logger.Info("Access token expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			logger.Warn("Access token signature invalid")
		default:
			logger.Warn("Access token rejected", slog.String("error", err.Error()))
		}
		return nil, apperrors.ErrUnauthorized
	}

	if !token.Valid || claims.Subject == "" || claims.SessionID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	result := &portssvc.TokenClaims{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}
