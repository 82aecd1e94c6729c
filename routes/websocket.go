package routes

import (
	"taskflow-app/taskflow/services"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes wires the real-time endpoint. Authentication is
// applied by the caller via middleware on the group.
func RegisterWebSocketRoutes(group *gin.RouterGroup, wsService services.WebSocketServiceInterface) {
	group.GET("/ws", func(c *gin.Context) {
		wsService.HandleConnection(c)
	})
}
