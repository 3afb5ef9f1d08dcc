package app

import (
	"context"
	"database/sql"
	"errors"

	"go-elms/internal/bootstrap"
	"go-elms/internal/config"
	"go-elms/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies is the infrastructure shared by every module.
type Dependencies struct {
	Config *config.Config
	SQLDB  *sql.DB
	GormDB *gorm.DB
	// Redis is nil when sessions live in memory.
	Redis  *redis.Client
	Audit  bootstrap.AuditLogger
	Logger *zap.Logger
}

// BuildApp connects infrastructure, migrates the schema and registers every
// route on router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, audit bootstrap.AuditLogger) (func(context.Context) error, error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if err := Migrate(gormDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	var rdb *redis.Client
	if cfg.SessionStore == "redis" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	}

	deps := Dependencies{
		Config: cfg,
		SQLDB:  sqlDB,
		GormDB: gormDB,
		Redis:  rdb,
		Audit:  audit,
		Logger: zap.L(),
	}
	if err := registerModules(router, deps); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return func(context.Context) error {
		var errs []error
		if rdb != nil {
			errs = append(errs, rdb.Close())
		}
		errs = append(errs, sqlDB.Close())
		return errors.Join(errs...)
	}, nil
}
