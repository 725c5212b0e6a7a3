package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/gray-logic-match/internal/match"
)

// Config is the root configuration structure for the matcher service.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
	Matcher  MatcherConfig  `yaml:"matcher"`
	Aliases  AliasesConfig  `yaml:"aliases"`
}

// ServiceConfig contains service identity settings.
type ServiceConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings for match metrics.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// MatcherConfig contains the scoring weights, stage thresholds and ranking
// limits of the match engine. Zero values fall back to the engine defaults
// during Load, so a config file only needs to name what it changes.
type MatcherConfig struct {
	Weights     WeightsConfig    `yaml:"weights"`
	Thresholds  ThresholdsConfig `yaml:"thresholds"`
	TopK        int              `yaml:"top_k"`
	DisambigGap float64          `yaml:"disambiguation_gap"`
}

// WeightsConfig contains the per-dimension scoring weights.
// Pointers distinguish "not set" from an explicit zero.
type WeightsConfig struct {
	Floor *float64 `yaml:"floor"`
	Room  *float64 `yaml:"room"`
	Name  *float64 `yaml:"name"`
	Type  *float64 `yaml:"type"`
}

// ThresholdsConfig contains the per-dimension stage thresholds.
type ThresholdsConfig struct {
	Floor *float64 `yaml:"floor"`
	Room  *float64 `yaml:"room"`
	Type  *float64 `yaml:"type"`
	Name  *float64 `yaml:"name"`
}

// AliasesConfig points at the optional alias-table file. When Path is empty
// the built-in tables are used.
type AliasesConfig struct {
	Path string `yaml:"path"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: GRAYMATCH_SECTION_KEY
// For example: GRAYMATCH_DATABASE_PATH, GRAYMATCH_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			ID:       "graymatch-001",
			Name:     "Gray Logic Match",
			Timezone: "UTC",
		},
		Database: DatabaseConfig{
			Path:        "./data/graymatch.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "graymatch-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Matcher: MatcherConfig{
			TopK:        match.DefaultTopK,
			DisambigGap: match.DefaultDisambigGap,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: GRAYMATCH_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("GRAYMATCH_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("GRAYMATCH_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("GRAYMATCH_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MQTT.Broker.Port = port
		}
	}
	if v := os.Getenv("GRAYMATCH_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("GRAYMATCH_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("GRAYMATCH_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Aliases
	if v := os.Getenv("GRAYMATCH_ALIASES_PATH"); v != "" {
		cfg.Aliases.Path = v
	}

	// Logging
	if v := os.Getenv("GRAYMATCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Service validation
	if c.Service.ID == "" {
		errs = append(errs, "service.id is required")
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}

	// InfluxDB validation: credentials only matter when metrics are on.
	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb.enabled is true")
		}
		if c.InfluxDB.Org == "" {
			errs = append(errs, "influxdb.org is required when influxdb.enabled is true")
		}
		if c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.bucket is required when influxdb.enabled is true")
		}
	}

	// Matcher validation delegates to the engine's own parameter checks.
	if err := c.MatchParams().Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// MatchParams materialises the matcher section into engine parameters,
// filling every unset field from the engine defaults.
func (c *Config) MatchParams() match.Params {
	p := match.DefaultParams()

	if c.Matcher.TopK != 0 {
		p.TopK = c.Matcher.TopK
	}
	if c.Matcher.DisambigGap != 0 {
		p.DisambigGap = c.Matcher.DisambigGap
	}

	w := c.Matcher.Weights
	if w.Floor != nil {
		p.Weights.Floor = *w.Floor
	}
	if w.Room != nil {
		p.Weights.Room = *w.Room
	}
	if w.Name != nil {
		p.Weights.Name = *w.Name
	}
	if w.Type != nil {
		p.Weights.Type = *w.Type
	}

	t := c.Matcher.Thresholds
	if t.Floor != nil {
		p.Thresholds.Floor = *t.Floor
	}
	if t.Room != nil {
		p.Thresholds.Room = *t.Room
	}
	if t.Type != nil {
		p.Thresholds.Type = *t.Type
	}
	if t.Name != nil {
		p.Thresholds.Name = *t.Name
	}

	return p
}

// GetBusyTimeout returns the SQLite busy timeout as a Duration.
func (c *Config) GetBusyTimeout() time.Duration {
	return time.Duration(c.Database.BusyTimeout) * time.Second
}

// GetFlushInterval returns the InfluxDB flush interval as a Duration.
func (c *Config) GetFlushInterval() time.Duration {
	return time.Duration(c.InfluxDB.FlushInterval) * time.Second
}
