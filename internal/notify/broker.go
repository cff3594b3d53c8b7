package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/utilities"
)

// publisher is the part of *amqp.Channel the gateway uses.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// BrokerGateway hands the message to an SMS worker through a RabbitMQ topic exchange.
type BrokerGateway struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  publisher
	exchange string
	key      string
}

func NewBrokerGateway(cfg Config) (*BrokerGateway, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}
	return &BrokerGateway{conn: conn, channel: ch, exchange: cfg.Exchange, key: cfg.RoutingKey}, nil
}

func (g *BrokerGateway) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.channel.PublishWithContext(ctx, g.exchange, g.key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    utilities.NewSnowflakeID(),
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (g *BrokerGateway) Close() error {
	if g.conn == nil {
		return nil
	}
	return g.conn.Close()
}
