package auth

import (
	"github.com/CosmosChiang/LifeSwap/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		// Login gets a tighter throttle than the rest of the API.
		auth.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Login)
		auth.POST("/register", handler.Register)
		auth.GET("/me", middleware.AuthMiddleware(jwtSecret), handler.GetMe)
	}
}
