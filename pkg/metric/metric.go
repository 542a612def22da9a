// Package metric defines the Prometheus collectors shared by the catalog
// service and the notification backends.
package metric

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all catalog-level metrics.
type Metrics struct {
	// Catalog operations by name (create, update, delete, get, search)
	// and outcome (ok, invalid, not_found, conflict, error).
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Notification deliveries by backend (nats, kafka, amqp, noop)
	// and outcome (ok, failed).
	NotificationsTotal *prometheus.CounterVec
}

// New creates the catalog metrics. The collectors are not registered;
// call Register with the target registry.
func New() *Metrics {
	return &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kinothek",
				Subsystem: "catalog",
				Name:      "operations_total",
				Help:      "Total number of catalog operations",
			},
			[]string{"operation", "status"},
		),

		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "kinothek",
				Subsystem: "catalog",
				Name:      "operation_duration_seconds",
				Help:      "Catalog operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kinothek",
				Subsystem: "notify",
				Name:      "deliveries_total",
				Help:      "Total number of notification deliveries",
			},
			[]string{"backend", "status"},
		),
	}
}

// Register adds all collectors to the given registry. Collectors that
// are already registered are left in place.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.OperationsTotal,
		m.OperationDuration,
		m.NotificationsTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return nil
}

// RecordOperation records one catalog operation with its outcome and
// duration. Safe to call on a nil receiver so metrics stay optional.
func (m *Metrics) RecordOperation(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}

	m.OperationsTotal.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordNotification records one delivery attempt for a backend.
func (m *Metrics) RecordNotification(backend, status string) {
	if m == nil {
		return
	}

	m.NotificationsTotal.WithLabelValues(backend, status).Inc()
}
