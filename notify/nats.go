package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/kinothek/kinothek/pkg/config"
	"github.com/kinothek/kinothek/pkg/errors"
	"github.com/kinothek/kinothek/pkg/interfaces"
	"github.com/kinothek/kinothek/pkg/metric"
)

// NATSNotifier publishes notifications to a JetStream stream.
type NATSNotifier struct {
	js      jetstream.JetStream
	subject string
	timeout time.Duration
	logger  interfaces.Logger
	metrics *metric.Metrics
}

// NewNATSNotifier connects to NATS, ensures the notification stream
// exists, and returns the notifier with its cleanup.
func NewNATSNotifier(cfg *config.NotifierConfig, logger interfaces.Logger, metrics *metric.Metrics) (*NATSNotifier, func(), error) {
	opts := []nats.Option{
		nats.Name(cfg.NATS.ClientID),
		nats.MaxReconnects(cfg.NATS.MaxReconnect),
		nats.ReconnectWait(cfg.NATS.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", interfaces.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", interfaces.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	// Connect to NATS
	nc, err := nats.Connect(cfg.NATS.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	// Create JetStream context
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	// Ensure the notification stream exists
	streamCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	stream := jetstream.StreamConfig{
		Name:        cfg.NATS.Stream,
		Description: "Stream for catalog notifications",
		Subjects: []string{
			cfg.Subject,
			cfg.Subject + ".>",
		},
		Retention:    jetstream.LimitsPolicy,
		MaxAge:       cfg.NATS.MaxAge,
		MaxConsumers: -1,
		Replicas:     1,
		Storage:      jetstream.FileStorage,
		Discard:      jetstream.DiscardOld,
		MaxMsgs:      -1,
		MaxBytes:     -1,
	}

	if _, err := js.CreateOrUpdateStream(streamCtx, stream); err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create notification stream: %w", err)
	}

	cleanup := func() {
		if err := nc.Drain(); err != nil {
			logger.Error("failed to drain NATS connection", interfaces.Error(err))
		}
		nc.Close()
	}

	logger.Info("NATS notifier initialized",
		interfaces.String("url", cfg.NATS.URL),
		interfaces.String("stream", cfg.NATS.Stream),
		interfaces.String("subject", cfg.Subject))

	return &NATSNotifier{
		js:      js,
		subject: cfg.Subject,
		timeout: cfg.Timeout,
		logger:  logger,
		metrics: metrics,
	}, cleanup, nil
}

// Send publishes one notification, deduplicated by envelope id.
func (n *NATSNotifier) Send(ctx context.Context, subject, body string) error {
	msg := NewMessage(subject, body)

	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeInternal, "failed to marshal notification", err)
	}

	// Publish with timeout
	pubCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	ack, err := n.js.Publish(pubCtx, n.subject, data, jetstream.WithMsgID(msg.ID))
	if err != nil {
		n.metrics.RecordNotification("nats", "failed")
		return errors.Wrap(errors.ErrorTypeDeliveryFailed, "failed to publish notification", err)
	}

	n.metrics.RecordNotification("nats", "ok")
	n.logger.Debug("notification published",
		interfaces.String("message_id", msg.ID),
		interfaces.String("subject", subject),
		interfaces.String("stream", ack.Stream),
		interfaces.Any("sequence", ack.Sequence))

	return nil
}
