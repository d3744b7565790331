package notification

import (
	"github.com/CosmosChiang/LifeSwap/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(jwtSecret))
	{
		notifications.GET("", handler.ListMine)
		notifications.POST("/:id/read", handler.MarkRead)
	}
}
