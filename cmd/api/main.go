package main

import (
	"context"
	"time"

	"go-elms/internal/app"
	"go-elms/internal/bootstrap"
	"go-elms/internal/config"
	"go-elms/internal/observability/tracing"
	"go-elms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
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
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := tracing.Init(context.Background(), logger, cfg.OTLPEndpoint, "elms-api", cfg.AppEnv)
	if err != nil {
		logger.Fatal("init tracing failed", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery())

	auditLogger := bootstrap.NewStdoutAuditLogger(logger)

	// build dependency + routes
	closeApp, err := app.BuildApp(r, cfg, auditLogger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
			ServiceName:  "elms-api",
		},
		auditLogger,
		closeApp,
		shutdownTracing,
	)
}
