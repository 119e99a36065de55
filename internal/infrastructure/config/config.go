package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Web server backends.
const (
	BackendChi = "chi"
	BackendStd = "std"
)

// Config is the root configuration structure for the component inventory service.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	WebServer WebServerConfig `yaml:"webserver"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
	Security  SecurityConfig  `yaml:"security"`
	Inventory InventoryConfig `yaml:"inventory"`
}

// SiteConfig contains site-specific information.
type SiteConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
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
}

// WebServerConfig contains HTTP transport settings.
type WebServerConfig struct {
	Host     string                 `yaml:"host"`
	Port     int                    `yaml:"port"`
	Backend  string                 `yaml:"backend"` // chi, std
	Timeouts WebServerTimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig             `yaml:"cors"`
}

// WebServerTimeoutConfig contains HTTP timeout settings in seconds.
type WebServerTimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// InfluxDBConfig contains InfluxDB connection settings.
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

// SecurityConfig contains request-protection settings for the web server.
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig contains rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
}

// InventoryConfig contains settings for the /components endpoint and the
// entity inventory publisher.
type InventoryConfig struct {
	// PublishInterval is how often the inventory document is republished
	// over MQTT, in seconds. 0 publishes once at startup only.
	PublishInterval int `yaml:"publish_interval"`

	// MaxDocumentBytes caps the serialised document size. 0 means unlimited.
	MaxDocumentBytes int `yaml:"max_document_bytes"`

	// Entities are seeded into the entity store on startup if not already present.
	Entities []EntitySeed `yaml:"entities"`
}

// EntitySeed describes one entity declared in config.yaml.
type EntitySeed struct {
	Kind     string `yaml:"kind"`
	ObjectID string `yaml:"object_id"`
	Name     string `yaml:"name"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: GRAYLOGIC_SECTION_KEY
// For example: GRAYLOGIC_DATABASE_PATH, GRAYLOGIC_WEBSERVER_PORT
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ID:   "site-001",
			Name: "Gray Logic",
		},
		Database: DatabaseConfig{
			Path:        "./data/components.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "graylogic-components",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		WebServer: WebServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Backend: BackendChi,
			Timeouts: WebServerTimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 100,
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: GRAYLOGIC_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRAYLOGIC_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	if v := os.Getenv("GRAYLOGIC_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("GRAYLOGIC_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("GRAYLOGIC_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	if v := os.Getenv("GRAYLOGIC_WEBSERVER_HOST"); v != "" {
		cfg.WebServer.Host = v
	}
	if v := os.Getenv("GRAYLOGIC_WEBSERVER_PORT"); v != "" {
		// Invalid values are left for Validate to report against the file value.
		if port, err := strconv.Atoi(v); err == nil {
			cfg.WebServer.Port = port
		}
	}
	if v := os.Getenv("GRAYLOGIC_WEBSERVER_BACKEND"); v != "" {
		cfg.WebServer.Backend = v
	}

	if v := os.Getenv("GRAYLOGIC_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.WebServer.Port < 1 || c.WebServer.Port > 65535 {
		errs = append(errs, "webserver.port must be between 1 and 65535")
	}

	// webserver.backend is checked at startup, not here.
	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when influxdb is enabled")
	}

	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, "security.rate_limit.requests_per_minute must be positive when rate limiting is enabled")
	}

	if c.Inventory.PublishInterval < 0 {
		errs = append(errs, "inventory.publish_interval must not be negative")
	}
	if c.Inventory.MaxDocumentBytes < 0 {
		errs = append(errs, "inventory.max_document_bytes must not be negative")
	}
	for i, e := range c.Inventory.Entities {
		if e.Kind == "" {
			errs = append(errs, fmt.Sprintf("inventory.entities[%d].kind is required", i))
		}
		if e.ObjectID == "" && e.Name == "" {
			errs = append(errs, fmt.Sprintf("inventory.entities[%d] needs an object_id or a name", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the web server read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.WebServer.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the web server write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.WebServer.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the web server idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.WebServer.Timeouts.Idle) * time.Second
}

// GetPublishInterval returns the inventory republish interval as a Duration.
func (c *Config) GetPublishInterval() time.Duration {
	return time.Duration(c.Inventory.PublishInterval) * time.Second
}
