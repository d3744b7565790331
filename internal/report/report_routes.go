package report

import (
	"github.com/CosmosChiang/LifeSwap/internal/middleware"
	"github.com/CosmosChiang/LifeSwap/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authorizer *rbac.Authorizer,
	jwtSecret string,
) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(jwtSecret))
	reports.Use(rbac.Authorize(authorizer, "reports", "read"))
	{
		reports.GET("/summary", handler.GetSummary)
		reports.GET("/trends", handler.GetTrends)
		reports.GET("/compliance-warnings", handler.GetComplianceWarnings)
	}
}
