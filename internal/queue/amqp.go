package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// SendJob is the wire payload for a queued outbound message.
type SendJob struct {
	OutboundMessageID int `json:"outbound_message_id"`
}

// AMQPPublisher publishes send jobs to a durable RabbitMQ queue. The
// connection is established once at startup, not per publish.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url, queueName string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

// Publish enqueues a send job. Payload must be an outbound message ID.
func (p *AMQPPublisher) Publish(topic string, payload any) error {
	msgID, ok := payload.(int)
	if !ok {
		return fmt.Errorf("expected int payload, got %T", payload)
	}

	body, err := json.Marshal(SendJob{OutboundMessageID: msgID})
	if err != nil {
		return err
	}

	return p.ch.Publish(
		"",    // default exchange
		topic, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.ch.Close()
	return p.conn.Close()
}

var _ Publisher = (*AMQPPublisher)(nil)
