package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

// DefaultQueue is the queue laptop events are published to.
const DefaultQueue = "laptop_events"

// Laptop event types.
const (
	LaptopCreated = "laptop.created"
	LaptopUpdated = "laptop.updated"
	LaptopDeleted = "laptop.deleted"
)

// LaptopEvent is the JSON message published after a successful write.
type LaptopEvent struct {
	Type       string    `json:"type"`
	LaptopID   int64     `json:"laptop_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the event queue.
func NewClient(cfg Config) (*Client, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("RabbitMQ client connected and %s declared.", queue)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", name, err)
	}
	return q, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// NewPublishing encodes event as a persistent JSON message.
func NewPublishing(event LaptopEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal laptop event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         event.Type,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
	}, nil
}

// PublishLaptopEvent publishes event to the client's queue via the default exchange.
func (c *Client) PublishLaptopEvent(event LaptopEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msg, err := NewPublishing(event)
	if err != nil {
		return err
	}

	if err := c.channel.Publish("", c.queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent laptop event: %s", msg.Body)
	return nil
}

// DecodeLaptopEvent parses a delivered message body.
func DecodeLaptopEvent(body []byte) (LaptopEvent, error) {
	var event LaptopEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("failed to decode laptop event: %w", err)
	}
	return event, nil
}

// ConsumeLaptopEvents starts a goroutine that feeds every message on the queue
// to handler. Messages are acked on success and nacked without requeue on error.
func (c *Client) ConsumeLaptopEvents(handler func(event LaptopEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for laptop events on %s", c.queue)

	go func() {
		for msg := range msgs {
			event, err := DecodeLaptopEvent(msg.Body)
			if err == nil {
				err = handler(event)
			}
			if err != nil {
				log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
				if nackErr := msg.Nack(false, false); nackErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
	}()

	return nil
}

// LogLaptopEvent is the default consumer handler: it records the event in the process log.
func LogLaptopEvent(event LaptopEvent) error {
	log.Printf("Received laptop event %s for laptop %d at %s", event.Type, event.LaptopID, event.OccurredAt.Format(time.RFC3339))
	return nil
}
