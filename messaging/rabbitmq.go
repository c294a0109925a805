package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"health-advisor/domain"
)

const publishTimeout = 5 * time.Second

var errNotConnected = errors.New("not connected to a server")

// RabbitMQPublisher pushes submission events onto a single queue through
// the default exchange.
type RabbitMQPublisher struct {
	mu        sync.Mutex
	queueName string
	conn      *amqp.Connection
	channel   *amqp.Channel
	logger    *zap.Logger
}

// NewRabbitMQPublisher dials addr, opens a channel and declares queueName.
func NewRabbitMQPublisher(addr, queueName string, logger *zap.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	logger.Info("connected to rabbitmq", zap.String("queue", queueName))
	return &RabbitMQPublisher{
		queueName: queueName,
		conn:      conn,
		channel:   ch,
		logger:    logger,
	}, nil
}

// Publish sends one event. It does not retry; the caller decides whether a
// failure matters.
func (p *RabbitMQPublisher) Publish(ctx context.Context, record domain.SubmissionRecord) error {
	body, err := encode(record)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		return errNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    record.ID,
			Timestamp:    record.CreatedAt,
			Type:         EventSubmissionAccepted,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", record.ID, err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
		p.conn = nil
	}
	p.logger.Info("rabbitmq publisher closed")
	return errors.Join(errs...)
}
