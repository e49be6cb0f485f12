// Package config centralises environment configuration for the report API and consumer.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration values shared by cmd/api and cmd/consumer.
type Config struct {
	HTTPAddress     string
	MetricsAddress  string
	KafkaBrokers    []string
	PackagesTopic   string
	ReportsTopic    string
	ConsumerGroupID string
	HandlerAttempts int
	RetryDelay      time.Duration
	PublishReports  bool // When false the API computes reports without writing them to Kafka.
	JWTSecret       string
	JWTIssuer       string
	ShutdownTimeout time.Duration
}

// Load reads environment variables into Config, applying defaults for local dev.
func Load() Config {
	return Config{
		HTTPAddress:     getEnv("HTTP_ADDRESS", ":8080"),
		MetricsAddress:  getEnv("METRICS_ADDRESS", ":9195"),
		KafkaBrokers:    splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		PackagesTopic:   getEnv("PACKAGES_TOPIC", "workout_packages"),
		ReportsTopic:    getEnv("REPORTS_TOPIC", "workout_reports"),
		ConsumerGroupID: getEnv("CONSUMER_GROUP_ID", "fittracker-consumer"),
		HandlerAttempts: getIntEnv("CONSUMER_HANDLER_ATTEMPTS", 3),
		RetryDelay:      getDurationEnv("CONSUMER_RETRY_DELAY", 500*time.Millisecond),
		PublishReports:  getBoolEnv("PUBLISH_REPORTS", true),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:       getEnv("JWT_ISSUER", "i5e.identity"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
