package middleware

import (
	"errors"

	"mindra_backend/internal/service"
	"mindra_backend/internal/util"
	"mindra_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token claims in the context.
func AuthMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := tokens.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			logger.Log.Debug("Authentication failed", zap.String("path", c.FullPath()), zap.Error(err))
			util.Unauthorized(c, authMessage(err))
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Next()
	}
}

// TryAuthMiddleware attaches claims when a valid token is present and lets the
// request through either way.
func TryAuthMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			claims, err := tokens.Authenticate(header)
			if err == nil {
				c.Set(util.ContextUserKey, claims)
			} else {
				logger.Log.Warn("Ignoring invalid credentials", zap.String("path", c.FullPath()), zap.Error(err))
			}
		}
		c.Next()
	}
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, util.ErrAuthMissing):
		return "Missing Authorization header"
	case errors.Is(err, util.ErrAuthMalformed):
		return "Invalid Authorization format"
	case errors.Is(err, util.ErrTokenExpired):
		return "Token expired"
	default:
		return "Invalid token"
	}
}
