package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lingobridge/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeType = "topic"

// Connection wraps the RabbitMQ connection.
type Connection struct {
	*amqp.Connection
}

// NewConnection creates a new RabbitMQ connection.
func NewConnection(cfg config.RabbitMQConfig) (*Connection, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	return &Connection{conn}, nil
}

// Close closes the RabbitMQ connection.
func (c *Connection) Close() error {
	return c.Connection.Close()
}

// channel is the subset of *amqp.Channel used by Publisher.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher publishes JSON messages to a topic exchange. It keeps one channel
// open and declares the exchange once per channel.
type Publisher struct {
	exchange    string
	openChannel func() (channel, error)

	mu sync.Mutex
	ch channel
}

// NewPublisher creates a new publisher for exchange.
func NewPublisher(conn *Connection, exchange string) *Publisher {
	return newPublisher(func() (channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	}, exchange)
}

func newPublisher(open func() (channel, error), exchange string) *Publisher {
	return &Publisher{exchange: exchange, openChannel: open}
}

// Publish publishes a message with the given routing key.
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.ensureChannel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := ch.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	); err != nil {
		p.reset()
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// Close closes the publisher's channel, if one is open.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}

// ensureChannel returns the open channel, opening it and declaring the exchange on
// first use. Callers hold p.mu.
func (p *Publisher) ensureChannel() (channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}

	ch, err := p.openChannel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		p.exchange,
		exchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	p.ch = ch
	return ch, nil
}

// reset drops a channel the broker may have closed so the next publish reopens it.
func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
}
