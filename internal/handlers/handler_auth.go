package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/storynest/storynest-backend/internal/apperrors"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/dto"
	"github.com/storynest/storynest-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login, logout, and the email
// verification endpoints.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade) *AuthHandler {
	return &AuthHandler{authService: as}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.Auth)

	// 5 requests per minute per IP on the guessable endpoints
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/verify-email", limitMiddleware, h.VerifyEmail)
		auth.POST("/resend-verification", limitMiddleware, h.ResendVerification)
	}
}

// registerVerificationStatusRoute sets up the authenticated status endpoint.
func registerVerificationStatusRoute(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.Auth)
	rg.GET("/auth/verification-status", h.VerificationStatus)
}

// Register godoc
// @Summary Register new user
// @Description Creates a new account with email and password, sends a verification code, and opens a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, session, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token:                     session.Token,
		ExpiresAt:                 session.ExpiresAt,
		User:                      dto.ToUserResponse(user),
		RequiresEmailVerification: !user.EmailVerified,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates with email and password and returns a session-bound bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			// Same answer for unknown email, OAuth-only account, and wrong
			// password.
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		logger.Error("Failed to log user in", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:                     session.Token,
		ExpiresAt:                 session.ExpiresAt,
		User:                      dto.ToUserResponse(user),
		RequiresEmailVerification: !user.EmailVerified,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the session behind the presented bearer token. Succeeds even when the token is invalid or the session already gone.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tokenString := ""
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}

	if err := h.authService.Logout(c.Request.Context(), tokenString); err != nil {
		logger.Error("Failed to log out", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// VerifyEmail godoc
// @Summary Verify email address
// @Description Consumes a 6-digit verification code for the given email.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "Email and code"
// @Success 200 {object} dto.VerifyEmailResponse
// @Failure 400 {object} dto.VerifyEmailResponse "Invalid or expired code"
// @Failure 500 {object} ErrorResponse
// @Router /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.VerifyEmailResponse{Success: false, Message: "Invalid request body"})
		return
	}

	resp, err := h.authService.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		logger.Error("Failed to verify email", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to verify email"})
		return
	}
	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResendVerification godoc
// @Summary Resend verification code
// @Description Issues a fresh verification code, superseding any earlier one.
// @Tags auth
// @Accept json
// @Produce json
// @Param resend body dto.ResendVerificationRequest true "Email"
// @Success 200 {object} dto.ResendVerificationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No account for that email"
// @Failure 500 {object} ErrorResponse
// @Router /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	sent, err := h.authService.ResendVerificationEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No account found for that email"})
			return
		}
		logger.Error("Failed to resend verification email", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resend verification email"})
		return
	}
	c.JSON(http.StatusOK, dto.ResendVerificationResponse{Success: sent})
}

// VerificationStatus godoc
// @Summary Verification status
// @Description Reports whether the caller's email is verified and whether a code is outstanding.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.VerificationStatusResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/verification-status [get]
func (h *AuthHandler) VerificationStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	status, err := h.authService.GetVerificationStatus(c.Request.Context(), user.UserID)
	if err != nil {
		logger.Error("Failed to get verification status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get verification status"})
		return
	}
	c.JSON(http.StatusOK, status)
}
