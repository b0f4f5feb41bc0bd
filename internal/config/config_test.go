package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "OPENWEATHER_API_KEY", "OPENWEATHER_BASE_URL", "STORE_BACKEND",
		"KAFKA_BROKERS", "SEARCH_DEBOUNCE", "INSTANCE_ID", "OPENWEATHER_RPS", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.openweathermap.org", cfg.OpenWeatherBaseURL)
	assert.Equal(t, "es", cfg.Lang)
	assert.Equal(t, "metric", cfg.Units)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 350*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 5.0, cfg.RequestsPerSecond)
	assert.NotEmpty(t, cfg.InstanceID)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("OPENWEATHER_BASE_URL", "http://localhost:1234/")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SEARCH_DEBOUNCE", "100ms")
	t.Setenv("INSTANCE_ID", "laptop")
	t.Setenv("OPENWEATHER_RPS", "0.5")
	t.Setenv("KAFKA_GROUP", "")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://localhost:1234", cfg.OpenWeatherBaseURL)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 100*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, "laptop", cfg.InstanceID)
	assert.Equal(t, "history-syncer-laptop", cfg.KafkaGroup)
	assert.Equal(t, 0.5, cfg.RequestsPerSecond)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SEARCH_DEBOUNCE", "soon")
	t.Setenv("OPENWEATHER_BURST", "-3")

	cfg := Load()

	assert.Equal(t, 350*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 5, cfg.Burst)
}
