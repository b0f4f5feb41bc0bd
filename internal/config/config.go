package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Port string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	Lang               string
	Units              string
	RequestsPerSecond  float64
	Burst              int

	StoreBackend string
	RedisURL     string
	RedisPrefix  string
	SQLitePath   string
	DatabaseURL  string

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroup   string
	InstanceID   string

	SearchDebounce time.Duration
	CORSOrigins    []string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	instance := getEnv("INSTANCE_ID", "")
	if instance == "" {
		instance = uuid.NewString()
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: strings.TrimRight(getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"), "/"),
		Lang:               getEnv("OPENWEATHER_LANG", "es"),
		Units:              getEnv("OPENWEATHER_UNITS", "metric"),
		RequestsPerSecond:  getFloat("OPENWEATHER_RPS", 5),
		Burst:              getInt("OPENWEATHER_BURST", 5),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		RedisPrefix:  getEnv("REDIS_PREFIX", "weather-lookup:"),
		SQLitePath:   getEnv("SQLITE_PATH", "weather.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "weather-lookups"),
		KafkaGroup:   getEnv("KAFKA_GROUP", "history-syncer-"+instance),
		InstanceID:   instance,

		SearchDebounce: getDuration("SEARCH_DEBOUNCE", 350*time.Millisecond),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f > 0 {
		return f
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
