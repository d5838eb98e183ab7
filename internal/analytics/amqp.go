package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange   = "cv-analyzer.analytics"
	DefaultRoutingKey = "events"
)

// AMQPConfig describes the RabbitMQ analytics sink.
type AMQPConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// AMQPTracker publishes events as JSON to a topic exchange.
type AMQPTracker struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	exchange   string
	routingKey string
	mu         sync.Mutex
}

var _ Tracker = (*AMQPTracker)(nil)

// NewAMQPTracker dials RabbitMQ and declares the exchange.
func NewAMQPTracker(cfg *AMQPConfig) (*AMQPTracker, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("amqp url is required")
	}

	exchange := cfg.Exchange
	if exchange == "" {
		exchange = DefaultExchange
	}
	routingKey := cfg.RoutingKey
	if routingKey == "" {
		routingKey = DefaultRoutingKey
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	return &AMQPTracker{conn: conn, ch: ch, exchange: exchange, routingKey: routingKey}, nil
}

func (a *AMQPTracker) Track(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishing
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ch.PublishWithContext(ctx, a.exchange, a.routingKey+"."+event.Name, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   event.Time,
		Body:        body,
	})
}

func (a *AMQPTracker) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ch.Close(); err != nil {
		a.conn.Close()
		return err
	}
	return a.conn.Close()
}
