package consumer

import (
	"context"
	"encoding/json"

	"go-elms/internal/events"
	"go-elms/internal/observability/metrics"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// EmailSender delivers one notification, retrying internally as it sees fit.
type EmailSender interface {
	Send(ctx context.Context, email events.EmailRequestedEvent) error
}

// ConsumeEmailRequests sends every email_requested message. Notifications
// are best-effort: a message whose delivery still fails after the sender's
// retries is logged and committed so it cannot block the partition.
func ConsumeEmailRequests(
	ctx context.Context,
	reader MessageReader,
	sender EmailSender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.email")
	log.Info("email consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("email consumer stopped")
				return
			}
			log.Error("fetch email message failed", zap.Error(err))
			continue
		}

		HandleEmailMessage(ctx, msg, sender, log)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit email message failed", zap.Error(err))
		}
	}
}

func HandleEmailMessage(ctx context.Context, msg kafkago.Message, sender EmailSender, log *zap.Logger) {
	var event events.EmailRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode email_requested event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		metrics.ObserveNotification("send", "malformed")
		return
	}

	if err := sender.Send(ctx, event); err != nil {
		log.Error("email delivery failed, dropping",
			zap.String("request_id", event.RequestID),
			zap.String("kind", event.Kind),
			zap.Error(err),
		)
		metrics.ObserveNotification("send", "failed")
		return
	}

	metrics.ObserveNotification("send", "sent")
	log.Info("email delivered",
		zap.String("request_id", event.RequestID),
		zap.String("kind", event.Kind),
	)
}
