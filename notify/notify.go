// Package notify delivers catalog notifications over a configurable
// message broker. Backends share one wire envelope so consumers can
// switch brokers without reparsing.
package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kinothek/kinothek/pkg/config"
	"github.com/kinothek/kinothek/pkg/errors"
	"github.com/kinothek/kinothek/pkg/interfaces"
	"github.com/kinothek/kinothek/pkg/metric"
)

// Message is the envelope every backend publishes.
type Message struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage builds an envelope with a fresh id. The id doubles as the
// broker-level deduplication key where the backend supports one.
func NewMessage(subject, body string) Message {
	return Message{
		ID:        uuid.New().String(),
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

// New builds the notifier selected by cfg.Backend. The returned cleanup
// releases broker resources; callers defer it next to the constructor.
func New(cfg *config.NotifierConfig, logger interfaces.Logger, metrics *metric.Metrics) (interfaces.Notifier, func(), error) {
	switch cfg.Backend {
	case config.BackendNATS:
		return NewNATSNotifier(cfg, logger, metrics)
	case config.BackendKafka:
		return NewKafkaNotifier(cfg, logger, metrics)
	case config.BackendAMQP:
		return NewAMQPNotifier(cfg, logger, metrics)
	case config.BackendNoop:
		return NewNoopNotifier(logger), func() {}, nil
	default:
		return nil, nil, errors.BadRequest(fmt.Sprintf("unknown notifier backend: %q", cfg.Backend))
	}
}
