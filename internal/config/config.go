package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr           string
	CORSAllowedOrigins []string
	OrdersPath         string
	ModelPath          string
	ManifestPath       string
	ExceptionLogPath   string
	WeatherAPIKey      string
	NewsAPIKey         string
	WeatherBaseURL     string
	NewsBaseURL        string
	NewsQuery          string
	SignalTimeout      time.Duration
	SignalRetries      int
	SinkRetries        int
	DatabaseURL        string
	KafkaBrokers       []string
	KafkaTopic         string
	LogLevel           string
}

func Load() Config {
	timeoutSeconds := getEnvInt("SIGNAL_TIMEOUT_SECONDS", 5)
	if timeoutSeconds <= 0 {
		timeoutSeconds = 5
	}

	return Config{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8000"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		OrdersPath:         getEnv("ORDERS_PATH", "supply_chain_order_fulfillment_delay_risk.csv"),
		ModelPath:          getEnv("MODEL_PATH", "delay_risk_model.json"),
		ManifestPath:       getEnv("MANIFEST_PATH", "shipments_db.xlsx"),
		ExceptionLogPath:   getEnv("EXCEPTION_LOG_PATH", "exception_logs.txt"),
		WeatherAPIKey:      getEnv("WEATHER_API_KEY", ""),
		NewsAPIKey:         getEnv("NEWS_API_KEY", ""),
		WeatherBaseURL:     getEnv("WEATHER_BASE_URL", "http://api.openweathermap.org"),
		NewsBaseURL:        getEnv("NEWS_BASE_URL", "https://newsapi.org"),
		NewsQuery:          getEnv("NEWS_QUERY", "supply chain strike"),
		SignalTimeout:      time.Duration(timeoutSeconds) * time.Second,
		SignalRetries:      max(getEnvInt("SIGNAL_RETRIES", 2), 0),
		SinkRetries:        max(getEnvInt("SINK_RETRIES", 3), 1),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		KafkaBrokers:       getEnvList("KAFKA_BROKERS", nil),
		KafkaTopic:         getEnv("KAFKA_TOPIC_ASSESSMENTS", "risk.assessments"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	parts := strings.Split(os.Getenv(key), ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
