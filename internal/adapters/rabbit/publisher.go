package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"campusevents/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends registration notices to a topic exchange, routed by notice kind.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *slog.Logger
}

// NewPublisher dials url and declares a durable topic exchange.
func NewPublisher(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	logger.Info("rabbitmq publisher ready", "exchange", exchange)
	return &Publisher{conn: conn, channel: ch, exchange: exchange, logger: logger}, nil
}

func buildPublishing(n domain.RegistrationNotice) (amqp.Publishing, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         n.Kind,
		MessageId:    n.RegistrationID + ":" + n.Kind + ":" + n.OccurredAt.Format("20060102T150405.000000000"),
		Timestamp:    n.OccurredAt,
		Body:         body,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, n domain.RegistrationNotice) error {
	msg, err := buildPublishing(n)
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}
	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.PublishWithContext(ctx, p.exchange, n.Kind, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", n.Kind, err)
	}
	p.logger.DebugContext(ctx, "notice published", "kind", n.Kind, "registration_id", n.RegistrationID)
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type noopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher returns a NoticePublisher that only logs, for deployments without a broker.
func NewNoopPublisher(logger *slog.Logger) domain.NoticePublisher {
	return &noopPublisher{logger: logger}
}

func (n *noopPublisher) Publish(ctx context.Context, notice domain.RegistrationNotice) error {
	n.logger.DebugContext(ctx, "notice not published (noop publisher)", "kind", notice.Kind, "registration_id", notice.RegistrationID)
	return nil
}
