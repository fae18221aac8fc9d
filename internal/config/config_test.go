package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("MONGO_URI")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("HTTP_PORT")

	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.Mongo.URI)
	assert.Equal(t, "docuflow", cfg.Storage.Mongo.DatabaseName)
	assert.Equal(t, 10, cfg.Gateway.DefaultPageSize)
}

func TestLoadConfig_EnvVars(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://test:27017")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("NATS_URL", "nats://env:4222")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	assert.Equal(t, "mongodb://test:27017", cfg.Storage.Mongo.URI)
	assert.Equal(t, "testdb", cfg.Storage.Mongo.DatabaseName)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "nats://env:4222", cfg.PubSub.NatsURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_File(t *testing.T) {
	require.NoError(t, os.Mkdir("config", 0755))
	defer os.RemoveAll("config")

	configContent := []byte(`
storage:
  backend: mongo
  mongo:
    uri: "mongodb://file:27017"
    database_name: "filedb"
gateway:
  default_page_size: 25
  max_page_size: 200
facets:
  - table: lignes
    name: weight
    field: quantity
    buckets:
      - name: heavy
        expr: "value > 100.0"
`)
	require.NoError(t, os.WriteFile("config/config.yml", configContent, 0644))

	// Local file overrides the base file.
	localContent := []byte(`
storage:
  mongo:
    database_name: "localdb"
`)
	require.NoError(t, os.WriteFile("config/config.local.yml", localContent, 0644))

	cfg := LoadConfig()

	assert.Equal(t, "mongo", cfg.Storage.Backend)
	assert.Equal(t, "mongodb://file:27017", cfg.Storage.Mongo.URI)
	assert.Equal(t, "localdb", cfg.Storage.Mongo.DatabaseName)
	assert.Equal(t, 25, cfg.Gateway.DefaultPageSize)
	require.Len(t, cfg.Facets, 1)
	assert.Equal(t, "lignes", cfg.Facets[0].Table)
	assert.Equal(t, "value > 100.0", cfg.Facets[0].Buckets[0].Expr)
}

func TestLoadConfig_LoadFileErrors(t *testing.T) {
	require.NoError(t, os.Mkdir("config", 0755))
	defer os.RemoveAll("config")

	// Malformed YAML leaves the defaults in place.
	require.NoError(t, os.WriteFile("config/config.yml", []byte("not: [valid"), 0644))

	cfg := LoadConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = -1 }, "invalid server port"},
		{"bad storage backend", func(c *Config) { c.Storage.Backend = "etcd" }, "unknown storage backend"},
		{"bad pubsub backend", func(c *Config) { c.PubSub.Backend = "kafka" }, "unknown pubsub backend"},
		{"zero page size", func(c *Config) { c.Gateway.DefaultPageSize = 0 }, "default_page_size"},
		{"max below default", func(c *Config) { c.Gateway.MaxPageSize = 5 }, "max_page_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
