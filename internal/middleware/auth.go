package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arjunms/dailydo/internal/pkg/response"
	"github.com/arjunms/dailydo/internal/pkg/token"
)

// Auth resolves the caller identity from the Authorization header and places
// it in the request context under "userID". Requests without a valid token
// never reach the handlers.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		// Support both "Bearer <token>" (case-insensitive) and a raw token
		fields := strings.Fields(authHeader)
		var tokenString string
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			tokenString = fields[1]
		} else {
			tokenString = authHeader
		}

		claims, err := token.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
