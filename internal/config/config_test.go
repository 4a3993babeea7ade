package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("SIGNAL_TIMEOUT_SECONDS", "")

	cfg := Load()

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "exception_logs.txt", cfg.ExceptionLogPath)
	assert.Equal(t, 5*time.Second, cfg.SignalTimeout)
	assert.Equal(t, "supply chain strike", cfg.NewsQuery)
	assert.Nil(t, cfg.KafkaBrokers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " broker-a:9092, ,broker-b:9092 ")
	t.Setenv("SIGNAL_TIMEOUT_SECONDS", "-3")
	t.Setenv("SINK_RETRIES", "0")
	t.Setenv("SIGNAL_RETRIES", "nope")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()

	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Second, cfg.SignalTimeout)
	assert.Equal(t, 1, cfg.SinkRetries)
	assert.Equal(t, 2, cfg.SignalRetries)
	assert.Equal(t, "debug", cfg.LogLevel)
}
