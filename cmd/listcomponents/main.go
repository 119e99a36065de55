// listcomponents serves the /components inventory of a Gray Logic node.
//
// It loads the node's entities from SQLite, mounts the read-only
// GET /components endpoint on the embedded web server, and optionally
// publishes the same inventory over MQTT and to InfluxDB.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	_ "github.com/nerrad567/gray-logic-components/migrations"

	"github.com/nerrad567/gray-logic-components/internal/entity"
	"github.com/nerrad567/gray-logic-components/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-components/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-components/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-components/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-components/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-components/internal/inventory"
	"github.com/nerrad567/gray-logic-components/internal/webserver"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application logic, separated from main for testability.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting components node",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded", "path", configPath, "site", cfg.Site.ID)

	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}

	registry, err := loadRegistry(ctx, db, cfg.Inventory.Entities, log)
	if err != nil {
		return err
	}
	log.Info("entity registry initialised",
		"entities", registry.Count(),
		"kinds", len(entity.SupportedKinds()),
	)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := inventory.NewMetrics(promRegistry)

	router, err := inventory.NewRouter(inventory.RouterOptions{
		Source:           registry,
		Logger:           log,
		Metrics:          metrics,
		MaxDocumentBytes: cfg.Inventory.MaxDocumentBytes,
	})
	if err != nil {
		return fmt.Errorf("creating components router: %w", err)
	}

	srv, err := startWebServer(ctx, cfg, promRegistry, log)
	if err != nil {
		return err
	}
	if srv != nil {
		defer func() {
			if closeErr := srv.Close(); closeErr != nil {
				log.Error("error closing web server", "error", closeErr)
			}
		}()
	}

	// Setup runs after the web server is listening.
	var transport inventory.Transport
	if srv != nil {
		transport = srv
	}
	endpoint := inventory.NewComponent(transport, router)
	endpoint.SetLogger(log)
	endpoint.Setup()
	endpoint.DumpConfig()

	g, gctx := errgroup.WithContext(ctx)

	publisher, closePublisher, err := startPublisher(cfg, registry, metrics, log)
	if err != nil {
		return err
	}
	defer closePublisher()
	if publisher != nil {
		g.Go(func() error {
			return publisher.Run(gctx)
		})
	}

	log.Info("initialisation complete, waiting for shutdown signal")
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("shutdown signal received, cleaning up")
	log.Info("components node stopped")
	return nil
}

// loadRegistry seeds config-declared entities into the store and loads the
// store into a fresh registry.
func loadRegistry(ctx context.Context, db *database.DB, seeds []config.EntitySeed, log *logging.Logger) (*entity.Registry, error) {
	repo := entity.NewSQLiteRepository(db.DB)

	records := make([]entity.Record, 0, len(seeds))
	for _, s := range seeds {
		kind := entity.Kind(s.Kind)
		if !kind.IsKnown() {
			log.Warn("ignoring entity of unknown kind", "kind", s.Kind, "name", s.Name)
			continue
		}
		objectID := s.ObjectID
		if objectID == "" {
			objectID = entity.GenerateObjectID(s.Name)
		}
		records = append(records, entity.Record{Kind: kind, ObjectID: objectID, Name: s.Name})
	}

	created, err := entity.Seed(ctx, repo, records)
	if err != nil {
		return nil, fmt.Errorf("seeding entities: %w", err)
	}
	if created > 0 {
		log.Info("seeded entities from config", "created", created)
	}

	registry := entity.NewRegistry()
	registry.SetLogger(log)
	if _, err := registry.Load(ctx, repo); err != nil {
		return nil, fmt.Errorf("loading entity registry: %w", err)
	}
	return registry, nil
}

// startWebServer creates and starts the web server. It returns a nil server
// without error when the transport is unavailable; the endpoint then reports
// that during setup and the node keeps running.
func startWebServer(ctx context.Context, cfg *config.Config, gatherer prometheus.Gatherer, log *logging.Logger) (*webserver.Server, error) {
	srv, err := webserver.New(webserver.Deps{
		Config:   cfg.WebServer,
		Security: cfg.Security,
		Logger:   log,
		Gatherer: gatherer,
		Version:  version,
	})
	if errors.Is(err, webserver.ErrUnsupportedBackend) {
		log.Warn("no supported web server backend, /components will not be served",
			"backend", cfg.WebServer.Backend,
			"supported", webserver.SupportedBackends(),
		)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("creating web server: %w", err)
	}

	if startErr := srv.Start(ctx); startErr != nil {
		log.Error("web server failed to start", "error", startErr)
		return nil, nil
	}
	return srv, nil
}

// startPublisher connects the optional MQTT and InfluxDB sinks and builds the
// inventory publisher. It returns a nil publisher when both are disabled.
// The returned close function is always safe to call.
func startPublisher(cfg *config.Config, registry *entity.Registry, metrics *inventory.Metrics, log *logging.Logger) (*inventory.Publisher, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	opts := inventory.PublisherOptions{
		Source:           registry,
		Topic:            mqtt.Topics{}.Components(),
		QoS:              byte(cfg.MQTT.QoS),
		Interval:         cfg.GetPublishInterval(),
		MaxDocumentBytes: cfg.Inventory.MaxDocumentBytes,
		Logger:           log,
		Metrics:          metrics,
	}

	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		client, err := mqtt.Connect(cfg.MQTT)
		if err != nil {
			return nil, closeAll, fmt.Errorf("connecting to MQTT: %w", err)
		}
		client.SetLogger(log)
		closers = append(closers, func() {
			log.Info("disconnecting from MQTT")
			if closeErr := client.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		})
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
		mqttClient = client
		opts.MQTT = client
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		client, err := influxdb.Connect(cfg.InfluxDB, cfg.Site.ID)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		client.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		closers = append(closers, func() {
			log.Info("closing InfluxDB connection")
			if closeErr := client.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		})
		log.Info("InfluxDB connected", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
		opts.Counts = client
	} else {
		log.Info("InfluxDB disabled")
	}

	if opts.MQTT == nil && opts.Counts == nil {
		return nil, closeAll, nil
	}

	publisher, err := inventory.NewPublisher(opts)
	if err != nil {
		closeAll()
		return nil, func() {}, fmt.Errorf("creating inventory publisher: %w", err)
	}

	if mqttClient != nil {
		// Republish after a reconnect so the retained document is fresh.
		mqttClient.SetOnConnect(func() {
			go func() {
				if pubErr := publisher.PublishOnce(context.Background()); pubErr != nil {
					log.Warn("republish after reconnect failed", "error", pubErr)
				}
			}()
		})
	}

	return publisher, closeAll, nil
}

// getConfigPath returns the configuration file path.
// Uses GRAYLOGIC_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GRAYLOGIC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
