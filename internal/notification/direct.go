package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"go-elms/internal/events"
	"go-elms/internal/messaging/kafka"
)

// DirectPublisher delivers outbox rows straight to a Mailer. The worker
// uses it when no Kafka broker is configured.
type DirectPublisher struct {
	mailer Mailer
}

func NewDirectPublisher(mailer Mailer) *DirectPublisher {
	return &DirectPublisher{mailer: mailer}
}

func (p *DirectPublisher) Publish(ctx context.Context, event kafka.OutboxEvent) error {
	if event.Topic != events.EmailRequestedTopic {
		return fmt.Errorf("direct publisher: unsupported topic %q", event.Topic)
	}

	var email events.EmailRequestedEvent
	if err := json.Unmarshal(event.Payload, &email); err != nil {
		return fmt.Errorf("decode email payload: %w", err)
	}
	return p.mailer.Send(ctx, email)
}
