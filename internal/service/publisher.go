// Package service holds the outbound side of reservation events.  Errors
// are logged and returned so callers can ignore failures without
// interrupting the request that caused them.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/lunchly/internal/queue"
)

// Publisher sends reservation events to RabbitMQ.  Each publish opens its
// own short lived connection, so a broker outage never outlives the call.
type Publisher struct {
	url         string
	dialTimeout time.Duration
	log         *log.Logger
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url, dialTimeout: 2 * time.Second, log: log.New("publisher")}
}

// PublishReservationBooked publishes ev to the reservation.booked queue as
// a persistent JSON message with a fresh MessageId.
func (p *Publisher) PublishReservationBooked(ctx context.Context, ev queue.ReservationBookedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Errorf("marshal event failed: %v", err)
		return err
	}
	return p.publish(ctx, queue.ReservationBookedQueue, body)
}

func (p *Publisher) publish(ctx context.Context, queueName string, body []byte) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout)})
	if err != nil {
		p.log.Warnf("dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warnf("channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warnf("queue declare failed: %v", err)
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		p.log.Warnf("publish %s failed: %v", msg.MessageId, err)
		return err
	}
	p.log.Debugf("published %s to %s", msg.MessageId, queueName)
	return nil
}
