package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kinothek/kinothek/pkg/config"
	"github.com/kinothek/kinothek/pkg/errors"
	"github.com/kinothek/kinothek/pkg/interfaces"
	"github.com/kinothek/kinothek/pkg/metric"
)

// AMQPNotifier publishes notifications to a durable AMQP queue on the
// default exchange.
type AMQPNotifier struct {
	conn    *amqp.Connection
	queue   string
	logger  interfaces.Logger
	metrics *metric.Metrics
}

// NewAMQPNotifier connects to the broker, declares the notification
// queue, and returns the notifier with its cleanup.
func NewAMQPNotifier(cfg *config.NotifierConfig, logger interfaces.Logger, metrics *metric.Metrics) (*AMQPNotifier, func(), error) {
	conn, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	// Declare the queue up front so a misconfigured broker fails here,
	// not on the first send. Durable so messages survive broker restarts.
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		cfg.Subject, // name
		true,        // durable
		false,       // autoDelete
		false,       // exclusive
		false,       // noWait
		nil,         // args
	); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	cleanup := func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close AMQP connection", interfaces.Error(err))
		}
	}

	logger.Info("AMQP notifier initialized",
		interfaces.String("queue", cfg.Subject))

	return &AMQPNotifier{
		conn:    conn,
		queue:   cfg.Subject,
		logger:  logger,
		metrics: metrics,
	}, cleanup, nil
}

// Send publishes one persistent notification to the queue.
func (n *AMQPNotifier) Send(ctx context.Context, subject, body string) error {
	msg := NewMessage(subject, body)

	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeInternal, "failed to marshal notification", err)
	}

	// Channels are not safe for concurrent use; open one per send.
	ch, err := n.conn.Channel()
	if err != nil {
		n.metrics.RecordNotification("amqp", "failed")
		return errors.Wrap(errors.ErrorTypeDeliveryFailed, "failed to open channel", err)
	}
	defer func() { _ = ch.Close() }()

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    msg.ID,
		Timestamp:    msg.CreatedAt,
		Body:         data,
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		n.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		n.metrics.RecordNotification("amqp", "failed")
		return errors.Wrap(errors.ErrorTypeDeliveryFailed, "failed to publish notification", err)
	}

	n.metrics.RecordNotification("amqp", "ok")
	n.logger.Debug("notification published",
		interfaces.String("message_id", msg.ID),
		interfaces.String("subject", subject))

	return nil
}
