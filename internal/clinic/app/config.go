package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer   string // Optional: issuer claim to enforce on access tokens
	Audience string // Optional: audience claim to enforce on access tokens

	JWTAlgorithm     string // Optional: token algorithm (HS256, EdDSA) (default: HS256)
	JWTHS256Secret   string // Required for HS256: shared secret with the identity provider
	JWTPublicKeyFile string // Required for EdDSA: path to PEM-encoded Ed25519 public key

	BootstrapToken string // Optional: token required to perform bootstrap

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./clinic.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 5m)
}

func LoadConfig() Config {
	return Config{
		Issuer:   os.Getenv("CLINIC_JWT_ISSUER"),
		Audience: os.Getenv("CLINIC_JWT_AUDIENCE"),

		JWTAlgorithm:     getEnvOrDefault("CLINIC_JWT_ALGORITHM", "HS256"),
		JWTHS256Secret:   os.Getenv("CLINIC_JWT_HS256_SECRET"),
		JWTPublicKeyFile: os.Getenv("CLINIC_JWT_PUBLIC_KEY_FILE"),

		BootstrapToken: os.Getenv(
			"BOOTSTRAP_TOKEN",
		), // Optional: if set, required to perform bootstrap

		DatabaseFile:         getEnvOrDefault("CLINIC_DATABASE_FILE", "clinic.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 5*time.Minute),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
