package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emploirapide/api/internal/auth"
	"github.com/emploirapide/api/internal/utils"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
		Code:    utils.CodeUnauthorized,
		Message: msg,
	})
}

// JWTAuth verifies the bearer token and resolves the authenticated identity
// into the gin context as user_id and role.
func JWTAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c, "missing bearer token")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}
