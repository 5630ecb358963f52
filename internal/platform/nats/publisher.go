// Package nats publishes employee events to a NATS subject. The employee id
// travels in a header since NATS has no message key.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"employee-service/internal/core"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	HeaderEmployeeID = "Employee-Id"
	HeaderEventType  = "Event-Type"

	eventUpsert = "employee.upserted"
	eventDelete = "employee.deleted"
)

type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// Publisher sends events on a single subject.
type Publisher struct {
	conn    msgPublisher
	subject string
	log     *log.Helper
}

func NewPublisher(conn msgPublisher, subject string, logger log.Logger) *Publisher {
	return &Publisher{
		conn:    conn,
		subject: subject,
		log:     log.NewHelper(log.With(logger, "module", "platform/nats")),
	}
}

// Connect dials NATS with unlimited reconnects.
func Connect(url string, logger log.Logger) (*nats.Conn, error) {
	helper := log.NewHelper(log.With(logger, "module", "platform/nats"))

	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			helper.Warnf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			helper.Infof("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: connect %s: %w", url, err)
	}
	return nc, nil
}

func (p *Publisher) PublishEmployee(ctx context.Context, e *core.Employee) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("nats: encode employee %s: %w", e.ID, err)
	}
	return p.publish(ctx, eventUpsert, e.ID, data)
}

func (p *Publisher) PublishDeletion(ctx context.Context, id uuid.UUID) error {
	return p.publish(ctx, eventDelete, id, nil)
}

func (p *Publisher) publish(ctx context.Context, eventType string, id uuid.UUID, data []byte) error {
	msg := nats.NewMsg(p.subject)
	msg.Header.Set(HeaderEmployeeID, id.String())
	msg.Header.Set(HeaderEventType, eventType)
	msg.Data = data

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("nats: publish %s for %s: %w", eventType, id, err)
	}
	p.log.WithContext(ctx).Debugf("%s event published to %s: id=%s", eventType, p.subject, id)
	return nil
}

// Close is a no-op; the connection is owned by the caller.
func (p *Publisher) Close() error {
	return nil
}
