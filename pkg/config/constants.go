package config

import "time"

// Notifier backend names.
const (
	BackendNATS  = "nats"
	BackendKafka = "kafka"
	BackendAMQP  = "amqp"
	BackendNoop  = "noop"
)

// Artwork backend names.
const (
	ArtworkLocal = "local"
	ArtworkS3    = "s3"
)

const (
	// Server ports.
	DefaultHTTPPort = 8080

	// Database defaults.
	DefaultPostgresPort = 5432

	// Connection pool defaults.
	DefaultMaxConnections = 25
	DefaultMinConnections = 5

	// Timeout defaults.
	DefaultMaxConnIdleTime = 30 * time.Minute

	// Telemetry defaults.
	DefaultTelemetryPort     = 2112
	DefaultTelemetryInterval = 10

	// Notification defaults.
	DefaultNotifySubject = "kinothek.films"
	DefaultNotifyTimeout = 5 * time.Second
	DefaultNATSStream    = "KINOTHEK"
	DefaultMaxReconnect  = 10
	DefaultReconnectWait = 2 * time.Second
	DefaultStreamMaxAge  = 7 * 24 * time.Hour
	DefaultKafkaRetryMax = 5

	// Pagination defaults.
	DefaultPageSize    = 20
	DefaultMaxPageSize = 100
	CursorKeyLength    = 32
)
