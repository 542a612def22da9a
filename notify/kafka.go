package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/kinothek/kinothek/pkg/config"
	"github.com/kinothek/kinothek/pkg/errors"
	"github.com/kinothek/kinothek/pkg/interfaces"
	"github.com/kinothek/kinothek/pkg/metric"
)

// KafkaNotifier publishes notifications to a Kafka topic through a
// synchronous producer.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   interfaces.Logger
	metrics  *metric.Metrics
}

// NewKafkaNotifier creates a Kafka-backed notifier and its cleanup.
func NewKafkaNotifier(cfg *config.NotifierConfig, logger interfaces.Logger, metrics *metric.Metrics) (*KafkaNotifier, func(), error) {
	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = cfg.Kafka.RetryMax
	sc.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, sc)
	if err != nil {
		return nil, nil, fmt.Errorf("creating producer: %w", err)
	}

	notifier := &KafkaNotifier{
		producer: producer,
		topic:    cfg.Subject,
		logger:   logger,
		metrics:  metrics,
	}

	cleanup := func() {
		if err := producer.Close(); err != nil {
			logger.Error("failed to close Kafka producer", interfaces.Error(err))
		}
	}

	logger.Info("Kafka notifier initialized",
		interfaces.Any("brokers", cfg.Kafka.Brokers),
		interfaces.String("topic", cfg.Subject))

	return notifier, cleanup, nil
}

// Send publishes one notification, keyed by envelope id.
func (n *KafkaNotifier) Send(ctx context.Context, subject, body string) error {
	msg := NewMessage(subject, body)

	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeInternal, "failed to marshal notification", err)
	}

	kafkaMsg := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(msg.ID),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("subject"),
				Value: []byte(subject),
			},
		},
	}

	partition, offset, err := n.producer.SendMessage(kafkaMsg)
	if err != nil {
		n.metrics.RecordNotification("kafka", "failed")
		return errors.Wrap(errors.ErrorTypeDeliveryFailed, "failed to publish notification", err)
	}

	n.metrics.RecordNotification("kafka", "ok")
	n.logger.Debug("notification published",
		interfaces.String("message_id", msg.ID),
		interfaces.String("subject", subject),
		interfaces.Any("partition", partition),
		interfaces.Any("offset", offset))

	return nil
}
