package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	DBDriver                 string
	DatabaseURL              string
	FirestoreProjectID       string
	FirestoreCredentialsJSON string

	CatalogURL       string
	CatalogRateLimit float64
	CatalogBurst     int

	APIRateLimit   float64
	APIRateBurst   int
	PaymentLatency time.Duration
	SessionTTL     time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:               getEnv("SERVER_PORT", "8080"),
		Environment:              getEnv("ENVIRONMENT", "development"),
		DBDriver:                 getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:              getEnv("DATABASE_URL", "postgres://localhost:5432/motoride?sslmode=disable"),
		FirestoreProjectID:       getEnv("FIRESTORE_PROJECT_ID", ""),
		FirestoreCredentialsJSON: getEnv("FIRESTORE_CREDENTIALS_JSON", ""),
		CatalogURL:               getEnv("CATALOG_URL", ""),
		CatalogRateLimit:         getEnvAsFloat("CATALOG_RATE_LIMIT", 1),
		CatalogBurst:             getEnvAsInt("CATALOG_BURST", 10),
		APIRateLimit:             getEnvAsFloat("API_RATE_LIMIT", 5),
		APIRateBurst:             getEnvAsInt("API_RATE_BURST", 60),
		PaymentLatency:           getEnvAsDuration("PAYMENT_LATENCY", 1700*time.Millisecond),
		SessionTTL:               getEnvAsDuration("SESSION_TTL", 30*time.Minute),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
