package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const bookingConfirmedQueue = "booking.confirmed"

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
}

// AMQPPublisher publishes events over a long-lived RabbitMQ connection,
// opening a short-lived channel per publish. Channels are cheap; sharing one
// across goroutines is not safe.
type AMQPPublisher struct {
	conn *amqp.Connection
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	return &AMQPPublisher{conn: conn}, nil
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	// Idempotent; durable so messages survive broker restarts.
	_, err = ch.QueueDeclare(bookingConfirmedQueue, true, false, false, false, nil)
	if err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",                    // default exchange
		bookingConfirmedQueue, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}
