package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const approvedQueueName = "booking.approved"

// Publisher sends domain events to RabbitMQ. Each publish opens a
// short-lived connection; errors are logged and returned so callers
// can choose to ignore them without interrupting the request flow.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher for the given broker URL.
func NewPublisher(url string) *Publisher { return &Publisher{url: url} }

// PublishBookingApproved publishes a BookingApprovedEvent to the
// booking.approved queue. Messages are marked persistent and the
// queue is declared durable so events survive broker restarts.
func (p *Publisher) PublishBookingApproved(ctx context.Context, event BookingApprovedEvent) error {
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

	// Idempotent declare, durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(approvedQueueName, true, false, false, false, nil); err != nil {
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
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", approvedQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
