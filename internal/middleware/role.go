package middleware

import (
	"net/http"

	"portal/internal/session"
	"portal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates mutating inventory routes on the portal role context.
// This mirrors what the portal UI hides from non-admins; it is a visibility
// toggle, not an authentication check.
func RequireAdmin(roles *session.Roles) gin.HandlerFunc {
	return func(c *gin.Context) {
		if roles.Role() != session.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Admin role required"))
			return
		}
		c.Next()
	}
}
