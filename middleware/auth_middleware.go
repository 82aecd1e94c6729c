package middleware

import (
	"net/http"

	"taskflow-app/taskflow/utils/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the JWT carried in the Authorization header and
// places the caller's identity on the request context.
func AuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := token.ExtractAndValidateToken(c, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}
