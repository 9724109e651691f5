package middleware

import (
	"strings"

	"widget-srv/pkg/response"
	"widget-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// Auth verifies the access token from the Authorization header and stores the caller scope.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// Support both "Bearer <token>" and plain token
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.jwtManager.Verify(tokenString)
		if err != nil {
			m.l.Debugf(c.Request.Context(), "middleware.Auth: token rejected: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Set payload and scope in context for downstream handlers
		ctx := c.Request.Context()
		ctx = scope.SetPayloadToContext(ctx, payload)
		ctx = scope.SetScopeToContext(ctx, scope.NewScope(payload))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
