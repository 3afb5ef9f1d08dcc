package app

import (
	"context"
	"errors"

	"go-elms/internal/admin"
	adminerrors "go-elms/internal/admin/errors"
	"go-elms/internal/config"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/notification"
	"go-elms/internal/shared/connection"

	"go.uber.org/zap"
)

// RunSeed creates the bootstrap Admin. An existing account with the same
// email is left untouched.
func RunSeed(ctx context.Context, cfg *config.Config, req admin.BootstrapRequest) error {
	logger := zap.L().Named("app.seed")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := Migrate(gormDB); err != nil {
		return err
	}

	queue := notification.NewOutboxQueue(kafka.NewOutboxRepository(sqlDB))
	service := admin.NewService(sqlDB, admin.NewRepository(gormDB), queue, cfg.FrontendURL, logger)

	created, err := service.Bootstrap(ctx, req)
	if errors.Is(err, adminerrors.ErrAdminAlreadyExists) {
		logger.Info("admin already exists", zap.String("email", req.Email))
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("admin created", zap.String("admin_id", created.ID), zap.String("email", created.Email))
	return nil
}
