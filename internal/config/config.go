package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type SecurityConfig struct {
	JWTSecret string
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	GroupID string
}

type MongoConfig struct {
	Enabled  bool
	URI      string
	Database string
	Timeout  time.Duration
}

type BookingConfig struct {
	BasePrice        float64
	SweepInterval    time.Duration
	SeedRestaurantID string
}

type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Security SecurityConfig
	Kafka    KafkaConfig
	Mongo    MongoConfig
	Booking  BookingConfig
}

// Load lee la configuración desde variables de entorno. Solo JWT_SECRET es
// obligatorio; el resto tiene valores por defecto pensados para desarrollo.
func Load() (*Config, error) {
	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	brokers := splitList(firstEnv("KAFKA_BROKERS", "KAFKA_BROKER"))

	sweepInterval, err := durationEnv("BOOKING_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	mongoTimeout, err := durationEnv("MONGO_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	basePrice, err := floatEnv("BOOKING_BASE_PRICE", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Directory: envOr("LOG_DIR", "./logs"),
			Level:     envOr("LOG_LEVEL", "info"),
			Format:    envOr("LOG_FORMAT", "json"),
		},
		Security: SecurityConfig{
			JWTSecret: jwtSecret,
		},
		Kafka: KafkaConfig{
			Enabled: len(brokers) > 0,
			Brokers: brokers,
			GroupID: envOr("KAFKA_GROUP_ID", "mesa-ya-booking"),
		},
		Mongo: MongoConfig{
			URI:      strings.TrimSpace(os.Getenv("MONGO_URI")),
			Database: envOr("MONGO_DATABASE", "mesa_ya_booking"),
			Timeout:  mongoTimeout,
		},
		Booking: BookingConfig{
			BasePrice:        basePrice,
			SweepInterval:    sweepInterval,
			SeedRestaurantID: strings.TrimSpace(os.Getenv("SEED_RESTAURANT_ID")),
		},
	}
	cfg.Mongo.Enabled = cfg.Mongo.URI != ""
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
