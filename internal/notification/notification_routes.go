package notification

import (
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	notices := r.Group("/notifications")
	notices.Use(middleware.AuthMiddleware())
	notices.Use(middleware.RoleMiddleware("admin"))
	{
		notices.POST("", middleware.RateLimitByUser(1, 3), handler.Broadcast)
	}
}
