package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storynest/storynest-backend/internal/core/domain"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
)

// SessionAuthMiddleware creates a Gin middleware handler that resolves the
// Bearer token to a live session and its owning user. Required mode: any
// failure short-circuits with 401. Token failures are logged with detail but
// reported to the caller with a generic message.
func SessionAuthMiddleware(sessionSvc portssvc.SessionSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := extractBearerToken(c)
		if !ok {
			logger.Warn("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := sessionSvc.ResolveSession(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Failed to resolve session", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		installUser(c, user)
		c.Next()
	}
}

// OptionalSessionAuthMiddleware resolves the Bearer token when present but
// lets the request proceed anonymously on any failure.
func OptionalSessionAuthMiddleware(sessionSvc portssvc.SessionSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if ok {
			if user, err := sessionSvc.ResolveSession(c.Request.Context(), tokenString); err == nil {
				installUser(c, user)
			}
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// installUser stores the resolved user in the request context and enriches
// the request-scoped logger with their ID.
func installUser(c *gin.Context, user *domain.User) {
	ctx := WithUser(c.Request.Context(), user)
	enrichedLogger := GetLoggerFromCtx(ctx).With(slog.String("user_id", user.UserID))
	ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
	c.Request = c.Request.WithContext(ctx)
}
