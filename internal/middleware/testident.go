package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/storynest/storynest-backend/internal/core/domain"
)

// FixtureIdentityMiddleware installs a fixed subject into the request
// context, bypassing token verification entirely. It exists for test
// harnesses only and is never registered by production route setup; the
// production authentication path is SessionAuthMiddleware.
func FixtureIdentityMiddleware(user *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		installUser(c, user)
		c.Next()
	}
}
