package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/storynest/storynest-backend/internal/core/domain"
)

// contextKey is a private type for context values set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userCtxKey   = contextKey("authUser")
)

// WithUser returns a context carrying the authenticated user. Exposed so the
// fixture identity middleware and tests can install a subject without going
// through token verification.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// GetUserFromContext retrieves the authenticated user from the request
// context. The second return value reports whether one was set.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(userCtxKey).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// GetUserIDFromContext retrieves the authenticated user's ID from the
// request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	user, ok := GetUserFromContext(c)
	if !ok {
		return "", false
	}
	return user.UserID, true
}
