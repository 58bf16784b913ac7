package stream

import (
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, hub *Hub) {
	ws := r.Group("/ws")
	ws.Use(middleware.AuthMiddleware())
	{
		ws.GET("/events", hub.ServeWS)
	}
}
