package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
)

// RequireAdmin allows only actors with the admin role. Must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil {
			common.ErrorResponse(c, 401, "Authentication required", nil)
			c.Abort()
			return
		}
		if !actor.IsAdmin() {
			common.ErrorResponse(c, 403, "Admin privileges required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
