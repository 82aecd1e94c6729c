package middleware

import (
	"net/http"

	"taskflow-app/taskflow/utils/token"

	"github.com/gin-gonic/gin"
)

// WebSocketAuthMiddleware authenticates websocket upgrade requests. Browsers
// cannot attach headers to websocket handshakes, so the token is accepted
// from the query string as well.
func WebSocketAuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims, err := token.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}
