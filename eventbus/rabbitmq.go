package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

const (
	// For publisher confirms
	publishTimeout = 5 * time.Second

	RoutingKeyOrderPlaced = "order.placed"
)

// Publisher sends domain events to the message broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
	Close()
}

// NopPublisher drops every event. Used when RABBITMQ_URL is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	log.Debug().Str("routing_key", routingKey).Msg("Event bus disabled, event dropped")
	return nil
}

func (NopPublisher) Close() {}

// RabbitMQPublisher publishes JSON events to a durable topic exchange with
// publisher confirms. A lost connection is redialed on the next publish.
type RabbitMQPublisher struct {
	url      string
	exchange string

	mu            sync.Mutex
	connection    *amqp.Connection
	channel       *amqp.Channel
	notifyConfirm chan amqp.Confirmation
	// deliveryTag is the tag of the last publish on the current channel.
	deliveryTag uint64
}

func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	p := &RabbitMQPublisher{url: url, exchange: exchange}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// connect must be called with mu held.
func (p *RabbitMQPublisher) connect() error {
	log.Info().Str("exchange", p.exchange).Msg("Connecting to RabbitMQ")
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open producer channel: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return fmt.Errorf("producer channel could not be put into confirm mode: %w", err)
	}
	confirms := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	err = ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}

	p.connection = conn
	p.channel = ch
	p.notifyConfirm = confirms
	p.deliveryTag = 0
	log.Info().Str("exchange", p.exchange).Msg("RabbitMQ publisher ready")
	return nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.connection == nil || p.connection.IsClosed() {
		if err := p.connect(); err != nil {
			return err
		}
	}

	log.Debug().Str("exchange", p.exchange).Str("routing_key", routingKey).RawJSON("body", body).Msg("Publishing event")
	err = p.channel.Publish(
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	p.deliveryTag++

	return awaitConfirm(ctx, p.notifyConfirm, p.deliveryTag, publishTimeout)
}

// awaitConfirm waits for the broker's confirmation of tag. Confirmations of
// earlier publishes that gave up waiting are discarded.
func awaitConfirm(ctx context.Context, confirms <-chan amqp.Confirmation, tag uint64, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case confirm, ok := <-confirms:
			if !ok {
				return errors.New("channel closed before confirmation")
			}
			if confirm.DeliveryTag < tag {
				log.Debug().Uint64("delivery_tag", confirm.DeliveryTag).Msg("Discarding late confirmation")
				continue
			}
			if !confirm.Ack {
				return errors.New("event nacked by broker")
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return errors.New("publish confirmation timeout")
		}
	}
}

func (p *RabbitMQPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing producer channel")
		}
		p.channel = nil
	}
	if p.connection != nil && !p.connection.IsClosed() {
		if err := p.connection.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing RabbitMQ connection")
		}
	}
	p.connection = nil
	log.Info().Msg("RabbitMQ publisher closed.")
}
