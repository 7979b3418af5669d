package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emploirapide/api/internal/models"
	"github.com/emploirapide/api/internal/utils"
)

// RequireRole rejects requests whose authenticated role is not in the
// allowed set. Runs after JWTAuth.
func RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	allow := map[models.UserRole]struct{}{}
	for _, a := range allowed {
		allow[a] = struct{}{}
	}

	return func(c *gin.Context) {
		v, _ := c.Get("role")
		s, _ := v.(string)

		role, ok := models.ParseRole(s)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:    utils.CodeForbidden,
				Message: "forbidden",
			})
			return
		}

		if _, ok := allow[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:    utils.CodeForbidden,
				Message: "forbidden",
			})
			return
		}

		c.Next()
	}
}

func RequireRecruiter() gin.HandlerFunc { return RequireRole(models.RoleRecruiter) }
func RequireCandidate() gin.HandlerFunc { return RequireRole(models.RoleCandidate) }
