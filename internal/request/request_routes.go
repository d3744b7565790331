package request

import (
	"github.com/CosmosChiang/LifeSwap/internal/middleware"
	"github.com/CosmosChiang/LifeSwap/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authorizer *rbac.Authorizer,
	jwtSecret string,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware(jwtSecret))
	{
		requests.GET("", rbac.Authorize(authorizer, "requests", "read"), handler.GetAll)
		requests.GET("/:id", rbac.Authorize(authorizer, "requests", "read"), handler.GetById)

		post := func(path string, guard gin.HandlerFunc, h gin.HandlerFunc) {
			if redisClient != nil {
				requests.POST(path, middleware.Idempotency(redisClient), guard, h)
				return
			}
			requests.POST(path, guard, h)
		}

		post("", rbac.Authorize(authorizer, "requests", "write"), handler.Create)
		post("/:id/submit", rbac.Authorize(authorizer, "requests", "write"), handler.Submit)
		post("/:id/cancel", rbac.Authorize(authorizer, "requests", "write"), handler.Cancel)
		post("/:id/approve", rbac.Authorize(authorizer, "requests", "review"), handler.Approve)
		post("/:id/reject", rbac.Authorize(authorizer, "requests", "review"), handler.Reject)
	}
}
