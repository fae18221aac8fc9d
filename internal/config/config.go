// Package config loads the layered application configuration:
// defaults -> config.yml -> config.local.yml -> environment overrides.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"docuflow/internal/facets"
	"docuflow/internal/logging"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig        `yaml:"server"`
	Logging  logging.Config      `yaml:"logging"`
	Storage  StorageConfig       `yaml:"storage"`
	PubSub   PubSubConfig        `yaml:"pubsub"`
	Identity IdentityConfig      `yaml:"identity"`
	Gateway  GatewayConfig       `yaml:"gateway"`
	Facets   []facets.Definition `yaml:"facets"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSEnabled     bool          `yaml:"cors_enabled"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // memory, mongo
	Mongo   MongoConfig `yaml:"mongo"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI          string        `yaml:"uri"`
	DatabaseName string        `yaml:"database_name"`
	Timeout      time.Duration `yaml:"timeout"`
}

// PubSubConfig selects and configures the event bus backend.
type PubSubConfig struct {
	Backend string `yaml:"backend"` // memory, nats
	NatsURL string `yaml:"nats_url"`
}

// IdentityConfig holds authentication settings.
type IdentityConfig struct {
	PrivateKeyPath  string        `yaml:"private_key_path"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
	MinPasswordLen  int           `yaml:"min_password_len"`
}

// GatewayConfig holds REST gateway behaviour settings.
type GatewayConfig struct {
	DefaultPageSize int           `yaml:"default_page_size"`
	MaxPageSize     int           `yaml:"max_page_size"`
	MaxBodySize     int64         `yaml:"max_body_size"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
}

// LoadConfig loads configuration from files and environment variables.
// Order: defaults -> config.yml -> config.local.yml -> env overrides -> Validate.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	loadFile("config/config.yml", cfg)
	loadFile("config/config.local.yml", cfg)

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	return cfg
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: logging.DefaultConfig(),
		Storage: StorageConfig{
			Backend: "memory",
			Mongo: MongoConfig{
				URI:          "mongodb://localhost:27017",
				DatabaseName: "docuflow",
				Timeout:      10 * time.Second,
			},
		},
		PubSub: PubSubConfig{
			Backend: "memory",
			NatsURL: "nats://localhost:4222",
		},
		Identity: IdentityConfig{
			PrivateKeyPath:  "config/jwt_private.pem",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			MinPasswordLen:  8,
		},
		Gateway: GatewayConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
			MaxBodySize:     1 << 20,
			RequestTimeout:  30 * time.Second,
		},
	}
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Storage.Backend {
	case "memory", "mongo":
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}
	switch c.PubSub.Backend {
	case "memory", "nats":
	default:
		return fmt.Errorf("unknown pubsub backend: %q", c.PubSub.Backend)
	}
	if c.Gateway.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be positive")
	}
	if c.Gateway.MaxPageSize < c.Gateway.DefaultPageSize {
		return fmt.Errorf("max_page_size must be >= default_page_size")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Server.Host, "HTTP_HOST")
	setInt(&c.Server.Port, "HTTP_PORT")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Dir, "LOG_DIR")
	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Storage.Mongo.URI, "MONGO_URI")
	setString(&c.Storage.Mongo.DatabaseName, "DB_NAME")
	setString(&c.PubSub.Backend, "PUBSUB_BACKEND")
	setString(&c.PubSub.NatsURL, "NATS_URL")
	setString(&c.Identity.PrivateKeyPath, "JWT_PRIVATE_KEY_PATH")
}

func loadFile(filename string, cfg *Config) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		log.Printf("Warning: Error reading %s: %v", filename, err)
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Printf("Warning: Error parsing %s: %v", filename, err)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
