package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-elms/internal/events"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/shared/contextutil"

	"github.com/google/uuid"
)

// Queue records an email in the caller's transaction. Nothing is sent
// until the transaction commits and the outbox worker picks it up.
//
//go:generate mockgen -source=queue.go -destination=mock/queue_mock.go -package=mock
type Queue interface {
	Enqueue(ctx context.Context, tx *sql.Tx, aggregateType, aggregateID string, email Email) error
}

type outboxQueue struct {
	outbox kafka.OutboxRepository
	now    func() time.Time
}

func NewOutboxQueue(outbox kafka.OutboxRepository) Queue {
	return &outboxQueue{outbox: outbox, now: time.Now}
}

func (q *outboxQueue) Enqueue(ctx context.Context, tx *sql.Tx, aggregateType, aggregateID string, email Email) error {
	rid := contextutil.GetRequestID(ctx)
	event := events.EmailRequestedEvent{
		EventType:  events.EventTypeEmailRequested,
		RequestID:  rid,
		Kind:       email.Kind,
		To:         email.To,
		Subject:    email.Subject,
		Body:       email.Body,
		OccurredAt: q.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	repo := q.outbox
	if tx != nil {
		repo = repo.WithTx(tx)
	}

	return repo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     event.EventType,
		Topic:         events.EmailRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
