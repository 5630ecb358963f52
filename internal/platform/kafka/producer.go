package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"employee-service/internal/config"
	"employee-service/internal/core"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	headerEventType = "event-type"

	eventUpsert = "employee.upserted"
	eventDelete = "employee.deleted"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes employee events keyed by employee id. Deletions are
// sent as tombstones (nil value).
type Producer struct {
	writer messageWriter
	log    *log.Helper
}

// NewProducer builds a producer for the configured topic. In async mode
// WriteMessages returns immediately and delivery failures are only logged.
func NewProducer(cfg config.BrokerConfig, logger log.Logger) *Producer {
	helper := log.NewHelper(log.With(logger, "module", "platform/kafka"))

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{}, // same id, same partition
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  cfg.Async,
	}
	if cfg.Async {
		w.Completion = func(messages []kafka.Message, err error) {
			if err != nil {
				helper.Errorf("kafka delivery of %d message(s) to %s failed: %v", len(messages), cfg.Topic, err)
			}
		}
	}

	return newProducer(w, helper)
}

func newProducer(w messageWriter, helper *log.Helper) *Producer {
	return &Producer{writer: w, log: helper}
}

func (p *Producer) PublishEmployee(ctx context.Context, e *core.Employee) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("kafka: encode employee %s: %w", e.ID, err)
	}
	return p.write(ctx, eventUpsert, e.ID, value)
}

func (p *Producer) PublishDeletion(ctx context.Context, id uuid.UUID) error {
	return p.write(ctx, eventDelete, id, nil)
}

func (p *Producer) write(ctx context.Context, eventType string, id uuid.UUID, value []byte) error {
	msg := kafka.Message{
		Key:     []byte(id.String()),
		Value:   value,
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte(eventType)}},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s for %s: %w", eventType, id, err)
	}
	p.log.WithContext(ctx).Debugf("%s event published: id=%s", eventType, id)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NoOpProducer discards every event. Used when no broker is configured.
type NoOpProducer struct{}

func NewNoOpProducer() *NoOpProducer {
	return &NoOpProducer{}
}

func (NoOpProducer) PublishEmployee(context.Context, *core.Employee) error { return nil }

func (NoOpProducer) PublishDeletion(context.Context, uuid.UUID) error { return nil }

func (NoOpProducer) Close() error { return nil }
