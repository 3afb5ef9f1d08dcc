package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-elms/internal/config"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/messaging/kafka/producer"
	"go-elms/internal/notification"
	"go-elms/internal/shared/connection"
	"go-elms/internal/shared/retry"

	"go.uber.org/zap"
)

// RunWorker drains the outbox. With a Kafka broker configured the rows are
// published to the email topic; without one they are mailed directly.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var publisher producer.Publisher
	if cfg.KafkaBroker != "" {
		kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
		if err != nil {
			return err
		}
		defer kafkaWriter.Close()
		publisher = producer.NewKafkaPublisher(kafkaWriter)
	} else {
		logger.Warn("KAFKA_BROKER not set, delivering mail directly from the outbox")
		publisher = notification.NewDirectPublisher(newMailer(cfg, logger))
	}

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		publisher,
		logger,
		cfg.OutboxPollInterval,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// newMailer sends through SMTP with bounded retries, or only logs mails
// when no SMTP host is configured.
func newMailer(cfg *config.Config, logger *zap.Logger) notification.Mailer {
	if cfg.SMTP.Host == "" {
		logger.Warn("SMTP_HOST not set, mails are logged instead of sent")
		return notification.NewLogMailer(logger)
	}

	smtp := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	return notification.NewRetryingMailer(smtp, retry.DefaultConfig(), logger)
}
