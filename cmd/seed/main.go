package main

import (
	"context"
	"os"

	"go-elms/internal/admin"
	"go-elms/internal/app"
	"go-elms/internal/config"
	"go-elms/internal/shared/apperror"

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

	apperror.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	req := admin.BootstrapRequest{
		Username: os.Getenv("ADMIN_USERNAME"),
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	if err := app.RunSeed(context.Background(), cfg, req); err != nil {
		logger.Fatal("seed admin failed", zap.Error(err))
	}
}
