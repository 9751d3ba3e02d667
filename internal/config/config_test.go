package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	content := `
http_server:
  port: ":8080"
  timeout: 5s

mongo:
  uri: "mongodb://localhost:27017"
  database: "delivery"
  timeout: 10s

kafka:
  brokers:
    - "localhost:9092"
  topic: "entity-events"

logger:
  level: "DEBUG"
  format: "json"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := MustLoad(path)

	assert.Equal(t, ":8080", cfg.HTTPServer.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "delivery", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "entity-events", cfg.Kafka.Topic)
	assert.Equal(t, "DEBUG", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
}
