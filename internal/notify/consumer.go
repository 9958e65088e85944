package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartReservationConsumer connects to RabbitMQ, declares the durable
// reservation.created queue, and starts consuming. Each event produces the
// guest confirmation and the admin notification email. The function runs a
// reconnect loop with exponential backoff and keeps running across broker
// outages; it is meant to be launched as a goroutine from main.
func StartReservationConsumer(url string, mailer *Mailer) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("notify-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, mailer); err != nil {
			log.Printf("notify-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, mailer *Mailer) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Printf("notify-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(reservationQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(reservationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleEvent(d.Body, mailer); err != nil {
			log.Printf("notify-consumer: handle event failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// handleEvent sends both emails for one reservation. A malformed payload is
// an error (the message gets rejected); a failed send is only logged, since
// email is best-effort by contract and retrying risks duplicate mail.
func handleEvent(body []byte, mailer *Mailer) error {
	var ev ReservationCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := mailer.SendReservationConfirmation(ev); err != nil {
		log.Printf("notify-consumer: confirmation email for reservation %d failed: %v", ev.ReservationID, err)
	}
	if err := mailer.SendAdminNotification(ev); err != nil {
		log.Printf("notify-consumer: admin email for reservation %d failed: %v", ev.ReservationID, err)
	}
	return nil
}
