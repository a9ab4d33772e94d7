package service

// This file publishes domain events to RabbitMQ.  Errors are logged and
// returned so callers can ignore failures without interrupting the main
// request flow: a broker outage must never fail a booking.

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/arkumar/gym-booking/internal/queue"
)

// EventPublisher is the sink for domain events.  The booking and payment
// services treat a nil publisher as "events disabled" and tests substitute
// their own implementation.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.Event) error
}

// AMQPPublisher publishes events to the booking.events queue.  Each publish
// dials its own short-lived connection; the event volume of this service
// does not justify connection pooling.
type AMQPPublisher struct {
	URL string
}

// NewAMQPPublisher returns a publisher using the broker URL from the
// environment (with the local default).
func NewAMQPPublisher() *AMQPPublisher {
	return &AMQPPublisher{URL: queue.BrokerURL()}
}

// Publish sends one event to the booking.events queue.  The function
// attempts to be robust and never panics; any error is logged and returned
// so the caller can choose to ignore it. Messages are marked as persistent.
func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.Event) error {
	conn, err := amqp.Dial(p.URL)
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

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.EventsQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
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
		"",                    // default exchange
		queue.EventsQueueName, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
