package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes wires the unauthenticated liveness endpoint.
func RegisterHealthRoutes(router *gin.Engine) {
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "TaskFlow API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
