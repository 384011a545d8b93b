package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chronotes/chronotes/internal/pkg/errcode"
	"github.com/chronotes/chronotes/internal/pkg/jwt"
	"github.com/chronotes/chronotes/internal/pkg/response"
)

const ContextEmailKey = "user_email"

// JWTAuth gates a route group on a valid bearer token and stashes the
// token subject in the request context.
func JWTAuth(issuer *jwt.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, errcode.ErrUnauthorized, "missing authorization")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, errcode.ErrUnauthorized, "invalid authorization")
			c.Abort()
			return
		}
		token := parts[1]
		if !issuer.Verify(token) {
			response.Error(c, errcode.ErrUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(ContextEmailKey, issuer.Subject(token))
		c.Next()
	}
}
