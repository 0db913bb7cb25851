package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminToken guards operator routes. An empty configured token disables
// them altogether.
func AdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			httperr.Forbidden(c, "admin_disabled", "Admin API is disabled.")
			c.Abort()
			return
		}

		got := c.GetHeader(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			httperr.Unauthorized(c, "invalid_admin_token", "Admin token is missing or wrong.")
			c.Abort()
			return
		}

		c.Next()
	}
}
