package main

import (
	"github.com/CosmosChiang/LifeSwap/internal/app"
	"github.com/CosmosChiang/LifeSwap/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()
	if err := app.RunWorker(cfg); err != nil {
		logger.Fatal("worker stopped with error", zap.Error(err))
	}
}
