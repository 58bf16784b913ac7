package payment

import (
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			handler.Submit,
		)
		payments.GET("/pending",
			middleware.RoleMiddleware("admin"),
			handler.GetPending,
		)
		payments.GET("/queue-status",
			middleware.RoleMiddleware("admin"),
			handler.QueueStatus,
		)
		payments.POST("/:id/decision",
			middleware.RoleMiddleware("admin"),
			handler.Decide,
		)
	}
}
