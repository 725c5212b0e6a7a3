// Gray Logic Match - Device Best-Match Engine
//
// This is the main entry point for the matcher service. It resolves
// partially-specified, multilingual device descriptions from the voice /
// intent pipeline against the installation's entity catalog and publishes
// ranked, scored, explainable candidate lists over MQTT.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/gray-logic-match/migrations"

	"github.com/nerrad567/gray-logic-match/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-match/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-match/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-match/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-match/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-match/internal/inventory"
	"github.com/nerrad567/gray-logic-match/internal/match"
	"github.com/nerrad567/gray-logic-match/internal/resolver"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Gray Logic Match",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
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
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise catalog repository
	repo := inventory.NewSQLiteRepository(db.DB)
	count, err := repo.CountEntities(ctx)
	if err != nil {
		return fmt.Errorf("counting catalog entities: %w", err)
	}
	log.Info("entity catalog ready", "entities", count)

	// Build the match engine
	engine, err := buildEngine(cfg, log)
	if err != nil {
		return fmt.Errorf("building match engine: %w", err)
	}

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Set up MQTT logging callbacks
	mqttClient.SetLogger(log)
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		// Set up InfluxDB error callback
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Wire the resolver onto the message bus
	svc := resolver.NewService(engine, repo, mqttClient, byte(cfg.MQTT.QoS))
	svc.SetLogger(log.With("component", "resolver"))
	if influxClient != nil {
		svc.SetMetrics(influxClient)
	}
	if err := svc.Start(mqttClient); err != nil {
		return fmt.Errorf("starting resolver: %w", err)
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. InfluxDB (if enabled)
	// 2. MQTT
	// 3. Database

	log.Info("Gray Logic Match stopped")
	return nil
}

// buildEngine creates the match engine from configuration: alias table
// (file-based when configured, built-in defaults otherwise) and scoring
// parameters with config overrides applied over the defaults.
func buildEngine(cfg *config.Config, log *logging.Logger) (*match.Engine, error) {
	aliasCfg := match.DefaultAliasConfig()
	if cfg.Aliases.Path != "" {
		loaded, err := match.LoadAliasConfig(cfg.Aliases.Path)
		if err != nil {
			return nil, fmt.Errorf("loading alias config: %w", err)
		}
		aliasCfg = loaded
		log.Info("alias table loaded", "path", cfg.Aliases.Path)
	} else {
		log.Info("alias table using built-in defaults")
	}

	params := cfg.MatchParams()
	engine, err := match.NewEngine(match.NewAliasTable(aliasCfg), params)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(log.With("component", "engine"))

	log.Info("match engine ready",
		"top_k", params.TopK,
		"disambiguation_gap", params.DisambigGap,
	)
	return engine, nil
}

// getConfigPath returns the configuration file path.
// Uses GRAYMATCH_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GRAYMATCH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
