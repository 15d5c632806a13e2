package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	jwtpkg "kaktovottak/referralhub/pkg/jwt"
	"kaktovottak/referralhub/pkg/response"
)

const ContextKeyCaller = "service_caller"

// ServiceAuth validates the Bearer service token of the dispatch layer and
// stores the caller name in the request context.
func ServiceAuth(jwtManager *jwtpkg.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyCaller, claims.Subject)
		c.Next()
	}
}
