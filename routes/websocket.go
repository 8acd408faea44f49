package routes

import (
	"github.com/gin-gonic/gin"
	"neuralife-notes/neuralife/middleware"
	"neuralife-notes/neuralife/services"
)

// RegisterWebSocketRoutes sets up the notification stream endpoint.
// Browsers cannot set headers on WebSocket upgrades, so the auth
// middleware also accepts the token as a query parameter.
func RegisterWebSocketRoutes(router *gin.Engine, jwtSecret string, wsService services.WebSocketServiceInterface) {
	wsGroup := router.Group("/api/v1/ws")
	wsGroup.Use(middleware.AuthMiddleware(jwtSecret))
	{
		wsGroup.GET("", func(c *gin.Context) {
			wsService.HandleConnection(c)
		})
	}
}
