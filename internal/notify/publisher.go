package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publishes reservation events to RabbitMQ. Errors are logged and
// returned so callers can discard them without interrupting the request
// flow. Messages are marked persistent and the queue is durable, so a broker
// restart loses nothing.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher for the given broker URL, or nil when the
// URL is empty (messaging disabled).
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// PublishReservationCreated publishes a ReservationCreatedEvent to the
// reservation.created queue. The function never panics; any error is logged
// and returned so the caller can choose to ignore it.
func (p *Publisher) PublishReservationCreated(ctx context.Context, event ReservationCreatedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		reservationQueueName, // name
		true,                 // durable
		false,                // autoDelete
		false,                // exclusive
		false,                // noWait
		nil,                  // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                   // default exchange
		reservationQueueName, // routing key = queue name
		false,                // mandatory
		false,                // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
