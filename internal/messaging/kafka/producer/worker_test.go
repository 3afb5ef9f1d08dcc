package producer_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-elms/internal/messaging/kafka"
	"go-elms/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOutbox struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  map[string]string
	listErr error
}

func (f *fakeOutbox) WithTx(*sql.Tx) kafka.OutboxRepository              { return f }
func (f *fakeOutbox) Create(context.Context, kafka.OutboxEvent) error { return nil }
func (f *fakeOutbox) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return f.pending, f.listErr
}
func (f *fakeOutbox) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutbox) MarkFailed(_ context.Context, id, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

type publisherFunc func(ctx context.Context, event kafka.OutboxEvent) error

func (f publisherFunc) Publish(ctx context.Context, event kafka.OutboxEvent) error {
	return f(ctx, event)
}

func TestProcessPendingEvents(t *testing.T) {
	repo := &fakeOutbox{pending: []kafka.OutboxEvent{
		{ID: "ob-1", Topic: "t", Payload: []byte("a")},
		{ID: "ob-2", Topic: "t", Payload: []byte("b")},
	}}
	pub := publisherFunc(func(_ context.Context, e kafka.OutboxEvent) error {
		if e.ID == "ob-2" {
			return errors.New("broker unavailable")
		}
		return nil
	})

	sent, err := producer.ProcessPendingEvents(context.Background(), repo, pub, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"ob-1"}, repo.sent)
	assert.Equal(t, "broker unavailable", repo.failed["ob-2"])
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	repo := &fakeOutbox{listErr: errors.New("db down")}
	pub := publisherFunc(func(context.Context, kafka.OutboxEvent) error { return nil })

	_, err := producer.ProcessPendingEvents(context.Background(), repo, pub, zap.NewNop())
	assert.EqualError(t, err, "db down")
}

type fakeWriter struct {
	msgs []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	pub := producer.NewKafkaPublisher(w)

	err := pub.Publish(context.Background(), kafka.OutboxEvent{
		ID:            "ob-1",
		RequestID:     "req-1",
		AggregateType: "leave",
		AggregateID:   "lv-1",
		EventType:     "email_requested",
		Topic:         "elms.notification.email.v1",
		Payload:       []byte(`{}`),
	})

	assert.NoError(t, err)
	assert.Len(t, w.msgs, 1)
	assert.Equal(t, "elms.notification.email.v1", w.msgs[0].Topic)
	assert.Equal(t, []byte("lv-1"), w.msgs[0].Key)
	assert.Equal(t, "event_type", w.msgs[0].Headers[0].Key)
}
