package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/mufasadev/finance-analytics/internal/config"
	"github.com/mufasadev/finance-analytics/internal/domain/models"
	"github.com/mufasadev/finance-analytics/internal/usecases/dtos"
	"github.com/mufasadev/finance-analytics/pkg/log"
	"github.com/mufasadev/finance-analytics/pkg/util/repeat"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	RoutingKeyApproved = "transaction.approved"
	RoutingKeyRejected = "transaction.rejected"

	publishTimeout = 5 * time.Second
	dialAttempts   = 5
	dialDelay      = 2 * time.Second
)

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends transaction decisions to a durable direct exchange as persistent JSON.
type Publisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
	logger   *zerolog.Logger
}

// NewPublisher dials the broker, retrying a few times, and declares the topology.
func NewPublisher(cfg config.Broker) (*Publisher, error) {
	var conn *amqp.Connection
	err := repeat.Repeat(func() error {
		c, err := amqp.Dial(cfg.URL)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}, dialAttempts, dialDelay)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, cfg.Exchange, cfg.Queue)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange, queue string) (*Publisher, error) {
	l := log.GetLogger()
	p := &Publisher{channel: ch, exchange: exchange, logger: &l}
	if err := p.setup(queue); err != nil {
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return p, nil
}

// setup declares the exchange and a queue bound to both decision routing keys.
func (p *Publisher) setup(queue string) error {
	if err := p.channel.ExchangeDeclare(p.exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if queue == "" {
		return nil
	}
	if _, err := p.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	for _, key := range []string{RoutingKeyApproved, RoutingKeyRejected} {
		if err := p.channel.QueueBind(queue, key, p.exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue to %s: %w", key, err)
		}
	}
	return nil
}

// RoutingKey maps a decided status to its routing key.
func RoutingKey(status models.TransactionStatus) (string, error) {
	switch status {
	case models.TransactionStatusApproved:
		return RoutingKeyApproved, nil
	case models.TransactionStatusRejected:
		return RoutingKeyRejected, nil
	}
	return "", fmt.Errorf("no routing key for status %q", status)
}

func (p *Publisher) PublishDecision(ctx context.Context, decision dtos.TransactionDecision) error {
	key, err := RoutingKey(decision.Status)
	if err != nil {
		return err
	}

	body, err := decision.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    decision.TransactionID,
		Timestamp:    decision.DecidedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish decision: %w", err)
	}

	p.logger.Debug().
		Str("transaction_id", decision.TransactionID).
		Str("exchange", p.exchange).
		Str("routing_key", key).
		Msg("decision published")
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
