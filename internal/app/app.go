package app

import (
	"context"

	"github.com/CosmosChiang/LifeSwap/internal/auth"
	"github.com/CosmosChiang/LifeSwap/internal/automation"
	"github.com/CosmosChiang/LifeSwap/internal/config"
	"github.com/CosmosChiang/LifeSwap/internal/messaging/kafka"
	"github.com/CosmosChiang/LifeSwap/internal/notification"
	"github.com/CosmosChiang/LifeSwap/internal/request"
	sharedclock "github.com/CosmosChiang/LifeSwap/internal/shared/clock"
	"github.com/CosmosChiang/LifeSwap/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App holds the wired application: routes are registered on the router
// passed to BuildApp, the scheduler is started by the caller, and Close
// releases the shared connections.
type App struct {
	Scheduler *automation.Scheduler
	closers   []func() error
}

func (a *App) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			zap.L().Warn("close resource failed", zap.Error(err))
		}
	}
}

// BuildApp connects the infrastructure, migrates the schema, seeds the
// default accounts, and registers every module's routes.
func BuildApp(router *gin.Engine, cfg *config.Config) (*App, error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
		5,
	)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(&request.Request{}, &notification.Notification{}, &auth.User{}); err != nil {
		return nil, err
	}
	if err := kafka.EnsureOutboxTable(sqlDB); err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
	if err != nil {
		return nil, err
	}
	logger.Info("redis connection established")

	clk := sharedclock.System()

	authRepo := auth.NewRepository(gormDB)
	if err := auth.SeedUsers(context.Background(), authRepo, clk, logger); err != nil {
		return nil, err
	}

	scheduler, err := registerModules(router, sqlDB, gormDB, rdb, authRepo, clk, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Scheduler: scheduler,
		closers: []func() error{
			sqlDB.Close,
			rdb.Close,
		},
	}, nil
}
