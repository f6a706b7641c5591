package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/storynest/storynest-backend/internal/apperrors"
	"github.com/storynest/storynest-backend/internal/core/domain"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/dto"
	"github.com/storynest/storynest-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles Google OAuth related requests.
// It exchanges the frontend's authorization code with Google, validates the
// resulting ID token, resolves the user, and opens a session.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	authService        portssvc.AuthSvcFacade
	sessionService     portssvc.SessionSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	authService portssvc.AuthSvcFacade,
	sessionService portssvc.SessionSvcFacade,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		authService:        authService,
		sessionService:     sessionService,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.Auth, services.Session)
	googleRoutes := rg.Group("/api/v1/auth/google")
	{
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}

func strPtrIfSet(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ExchangeCodeGoogle handles the POST request from the frontend containing
// the authorization code from Google.
// @Summary Exchange Google authorization code for a session token
// @Description Exchanges the code with Google, validates the ID token, finds or creates the user, and returns a session-bound bearer token.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid authorization code"
// @Failure 401 {object} ErrorResponse "Invalid Google ID token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorContext(ctx, "Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	// 1. Exchange authorization code for Google tokens
	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") || strings.Contains(strings.ToLower(err.Error()), "bad request") {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
			return
		}
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service")
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.ErrorContext(ctx, "ID token not found in Google's token response")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}

	// 2. Validate Google's ID token
	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.ErrorContext(ctx, "Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	// 3. Extract the asserted identity. Claims are untyped so assert
	// defensively; only email and sub are load-bearing.
	email, _ := payload.Claims["email"].(string)
	givenName, _ := payload.Claims["given_name"].(string)
	familyName, _ := payload.Claims["family_name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	providerAccountID := payload.Subject

	if email == "" || providerAccountID == "" {
		logger.ErrorContext(ctx, "Essential claims missing from Google ID token payload")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Essential user information missing from Google token"})
		return
	}

	// 4. Find or create the user behind this external identity
	profile := portssvc.OAuthProfile{
		FirstName:    strPtrIfSet(givenName),
		LastName:     strPtrIfSet(familyName),
		PictureURL:   strPtrIfSet(picture),
		AccessToken:  strPtrIfSet(oauth2Token.AccessToken),
		RefreshToken: strPtrIfSet(oauth2Token.RefreshToken),
		IDToken:      strPtrIfSet(idTokenString),
	}
	user, err := h.authService.FindOrCreateOAuthUser(ctx, domain.ProviderGoogle, providerAccountID, email, profile)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to find or create OAuth user",
			slog.String("error", err.Error()),
			slog.String("google_user_id", providerAccountID))
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process user authentication"})
		return
	}

	// 5. Open a session and return the bearer token
	session, err := h.sessionService.CreateSession(ctx, user.UserID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create session after OAuth login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create session"})
		return
	}

	logger.InfoContext(ctx, "User authenticated via Google OAuth", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:                     session.Token,
		ExpiresAt:                 session.ExpiresAt,
		User:                      dto.ToUserResponse(user),
		RequiresEmailVerification: !user.EmailVerified,
	})
}
