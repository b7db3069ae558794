package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "laundry.events"

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQNotifier publishes each event as a persistent JSON message on a durable
// fanout exchange. The routing key carries the event type for consumers that
// rebind the exchange.
type RabbitMQNotifier struct {
	conn     *amqp.Connection
	ch       publisher
	exchange string
	timeout  time.Duration
}

// DialRabbitMQ connects to url and declares the fanout exchange.
func DialRabbitMQ(url, exchange string) (*RabbitMQNotifier, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQNotifier{conn: conn, ch: ch, exchange: exchange, timeout: 5 * time.Second}, nil
}

func newRabbitMQNotifier(ch publisher, exchange string) *RabbitMQNotifier {
	return &RabbitMQNotifier{ch: ch, exchange: exchange, timeout: 5 * time.Second}
}

// Publish stops at the first failed message and returns its error.
func (n *RabbitMQNotifier) Publish(ctx context.Context, events ...order.Event) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	for _, e := range events {
		body, err := json.Marshal(newEventMessage(e))
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", e.Type, err)
		}

		err = n.ch.PublishWithContext(ctx, n.exchange, string(e.Type), false, false, amqp.Publishing{
			DeliveryMode:  amqp.Persistent,
			ContentType:   "application/json",
			Type:          string(e.Type),
			CorrelationId: e.OrderID.String(),
			Timestamp:     e.OccurredAt.UTC(),
			Headers:       amqp.Table{"x-source": "laundry-workflow"},
			Body:          body,
		})
		if err != nil {
			return fmt.Errorf("publish %s event: %w", e.Type, err)
		}
	}
	return nil
}

func (n *RabbitMQNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return errors.Join(n.closeChannel(), n.conn.Close())
}

func (n *RabbitMQNotifier) closeChannel() error {
	if ch, ok := n.ch.(*amqp.Channel); ok {
		return ch.Close()
	}
	return nil
}
