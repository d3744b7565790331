package app

import (
	"database/sql"
	"time"

	"github.com/CosmosChiang/LifeSwap/internal/auth"
	"github.com/CosmosChiang/LifeSwap/internal/automation"
	"github.com/CosmosChiang/LifeSwap/internal/config"
	"github.com/CosmosChiang/LifeSwap/internal/messaging/kafka"
	"github.com/CosmosChiang/LifeSwap/internal/middleware"
	"github.com/CosmosChiang/LifeSwap/internal/notification"
	"github.com/CosmosChiang/LifeSwap/internal/rbac"
	"github.com/CosmosChiang/LifeSwap/internal/report"
	"github.com/CosmosChiang/LifeSwap/internal/request"
	sharedclock "github.com/CosmosChiang/LifeSwap/internal/shared/clock"
	"github.com/CosmosChiang/LifeSwap/internal/teams"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	authRepo auth.Repository,
	clk sharedclock.Clock,
	cfg *config.Config,
) (*automation.Scheduler, error) {
	// --- Repositories ---
	requestRepo := request.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	authorizer, err := rbac.NewAuthorizer()
	if err != nil {
		return nil, err
	}

	// --- Outbound channel ---
	teamsService := teams.NewService(cfg.Teams)

	// --- Services ---
	authService := auth.NewService(authRepo, cfg.JWT, clk)
	requestService := request.NewService(db, requestRepo, notificationRepo, outboxRepo, teamsService, clk, cfg.Kafka.RequestTopic)
	notificationService := notification.NewService(notificationRepo)
	reportService := report.NewService(requestRepo, clk)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	requestHandler := request.NewHandler(requestService)
	notificationHandler := notification.NewHandler(notificationService)
	reportHandler := report.NewHandler(reportService, cfg.Report.MonthlyOvertimeHourLimit)

	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, cfg.JWT.Secret)
		request.RegisterRoutes(api, requestHandler, authorizer, cfg.JWT.Secret, rdb)
		notification.RegisterRoutes(api, notificationHandler, cfg.JWT.Secret)
		report.RegisterRoutes(api, reportHandler, authorizer, cfg.JWT.Secret)
	}

	// --- Automation ---
	workflow := automation.NewWorkflow(
		requestRepo,
		notificationRepo,
		reportService,
		teamsService,
		cfg.Automation,
		clk,
	)
	scheduler := automation.NewScheduler(workflow, cfg.Automation)

	return scheduler, nil
}
