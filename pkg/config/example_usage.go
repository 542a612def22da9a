package config

// Example usage in an embedding application:
/*

package main

import (
	"log"

	"github.com/kinothek/kinothek/artwork"
	"github.com/kinothek/kinothek/catalog"
	"github.com/kinothek/kinothek/notify"
	"github.com/kinothek/kinothek/pkg/config"
	"github.com/kinothek/kinothek/pkg/database"
	"github.com/kinothek/kinothek/pkg/logger"
	"github.com/kinothek/kinothek/pkg/metric"
	"github.com/kinothek/kinothek/pkg/pagination"
	"github.com/kinothek/kinothek/store"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// 1. Load configuration
	cfg := config.MustLoadServiceConfig("kinothek", config.GetDefaultCatalogConfig())

	// 2. Initialize logger based on config
	log := initLogger(cfg.Logger)

	// 3. Connect to database and create the schema
	db, err := database.NewGormDB(cfg.Database.ToDatabaseConfig())
	if err != nil {
		log.Fatal("failed to connect to database", interfaces.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", interfaces.Error(err))
	}

	// 4. Register metrics
	metrics := metric.New()
	if cfg.Metrics.Enabled {
		metrics.Register(prometheus.DefaultRegisterer)
	}

	// 5. Build the notification backend from config
	notifier, cleanup, err := notify.New(&cfg.Notifier, log, metrics)
	if err != nil {
		log.Fatal("failed to build notifier", interfaces.Error(err))
	}
	defer cleanup()

	// 6. Assemble the catalog service
	films := store.NewGormStore(db, log)
	svc := catalog.NewService(films, notifier, log, metrics)
	svc.SetSearchLimit(cfg.Catalog.SearchLimit)
	svc.SetCreateNotifications(cfg.Catalog.NotifyOnCreate)

	if key := cfg.Pagination.CursorEncryptionKey; key != "" {
		enc, err := pagination.NewCursorEncoder([]byte(key))
		if err != nil {
			log.Fatal("failed to build cursor encoder", interfaces.Error(err))
		}
		svc.SetCursorEncoder(enc)
	}

	posters, err := buildArtwork(cfg.Artwork, log)
	if err != nil {
		log.Fatal("failed to build artwork storage", interfaces.Error(err))
	}
	svc.SetArtworkStorage(posters)

	// 7. Hand svc to the transport layer of your choice
	// ... serve ...
}

// Environment variable override examples:
// KINOTHEK_DATABASE_HOST=postgres.prod.example.com
// KINOTHEK_DATABASE_PASSWORD=secret-password
// KINOTHEK_NOTIFIER_BACKEND=nats
// KINOTHEK_NOTIFIER_NATS_URL=nats://nats.prod.example.com:4222
// KINOTHEK_PAGINATION_CURSOR_ENCRYPTION_KEY=<32 byte key>
// KINOTHEK_SERVICE_ENVIRONMENT=production
// KINOTHEK_LOGGER_LEVEL=info
// KINOTHEK_METRICS_ENABLED=true

*/

// Configuration file hierarchy:
// 1. Environment variables (highest priority)
// 2. Service-specific environment file: configs/kinothek.production.yaml
// 3. Service-specific file: configs/kinothek.yaml
// 4. General config file: configs/config.yaml
// 5. Default values from struct (lowest priority)

// Testing configuration:
/*

func TestCatalogWithConfig(t *testing.T) {
	// Create test configuration
	cfg := &config.CatalogConfig{
		BaseConfig: config.BaseConfig{
			Service: config.ServiceConfig{
				Name: "kinothek-test",
				Port: 0, // Use random port
			},
			Database: config.DatabaseConfig{
				// Use test container
			},
		},
		Catalog: config.CatalogSettings{
			NotifyOnCreate: false,
			// ... test settings
		},
	}

	// Use the test config
	svc := buildCatalog(cfg)
	// ... run tests
}

*/
