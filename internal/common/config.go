package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Extraction ExtractionConfig
	Broker     BrokerConfig
	Cache      CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ExtractionConfig holds pipeline bounds supplied to the validator.
type ExtractionConfig struct {
	MaxCredits    float64
	LookbackYears int
	Workers       int
}

// BrokerConfig holds the CE Broker submission constants.
type BrokerConfig struct {
	OrganizationID string
	FormVersion    string
	ProviderName   string
	NASBASponsorID string
}

// CacheConfig holds the local dedupe cache settings.
type CacheConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Extraction: ExtractionConfig{
			MaxCredits:    getEnvAsFloat64("MAX_COURSE_CREDITS", 50),
			LookbackYears: getEnvAsInt("REPORTING_LOOKBACK_YEARS", 3),
			Workers:       getEnvAsInt("EXTRACT_WORKERS", 4),
		},
		Broker: BrokerConfig{
			OrganizationID: getEnv("CEBROKER_ORG_ID", ""),
			FormVersion:    getEnv("CEBROKER_FORM_VERSION", ""),
			ProviderName:   getEnv("CEBROKER_PROVIDER_NAME", ""),
			NASBASponsorID: getEnv("CEBROKER_NASBA_SPONSOR", ""),
		},
		Cache: CacheConfig{
			Path: getEnv("DEDUPE_CACHE_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
