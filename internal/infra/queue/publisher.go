package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/config"
	"github.com/pilotdata/project/internal/modules/model"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	EventProjectCreated = "project.created"
	EventProjectDeleted = "project.deleted"
)

type ProjectEvent struct {
	Event     string    `json:"event"`
	ProjectID uuid.UUID `json:"project_id"`
	Code      string    `json:"code"`
	At        time.Time `json:"at"`
}

// Dial connects to the configured broker, nil when no url is set.
func Dial(cfg *config.Config) (*amqp.Connection, error) {
	if cfg.RabbitMQ.URL == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}

// Publisher sends project lifecycle events to a topic exchange. A nil
// connection disables it.
type Publisher struct {
	conn     *amqp.Connection
	exchange string
	log      *zap.Logger

	mu       sync.Mutex
	ch       *amqp.Channel
	declared bool
}

func NewPublisher(conn *amqp.Connection, exchange string, log *zap.Logger) *Publisher {
	return &Publisher{conn: conn, exchange: exchange, log: log.Named("publisher")}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	if !p.declared {
		if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return nil, err
		}
		p.declared = true
	}
	p.ch = ch
	return ch, nil
}

// PublishJSON publishes data encoded as JSON with routingKey.
func (p *Publisher) PublishJSON(ctx context.Context, routingKey string, data any) error {
	if p == nil || p.conn == nil {
		return nil
	}
	body, err := sonic.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ch, err := p.channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	return ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// PublishProjectEvent publishes event for p. Failures are logged only.
func (p *Publisher) PublishProjectEvent(ctx context.Context, event string, project *model.Project) {
	if p == nil || p.conn == nil {
		return
	}
	ev := ProjectEvent{Event: event, ProjectID: project.ID, Code: project.Code, At: time.Now().UTC()}
	if err := p.PublishJSON(ctx, event, ev); err != nil {
		p.log.Warn("publish event failed",
			zap.String("event", event),
			zap.String("project_id", project.ID.String()),
			zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
