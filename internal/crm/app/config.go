package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	StoreDriver  string // Store driver (jsonfile, sqlite) (default: jsonfile)
	DatabaseFile string // Path to the data file for the chosen driver (default: ./crm.json or ./crm.db)

	AllowedOrigins []string // CORS allow-list for the browser frontend
	SecureCookies  bool     // SameSite=None + Secure cookies for cross-origin deployments

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 3001)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		StoreDriver:         getEnvOrDefault("STORE_DRIVER", "jsonfile"),
		DatabaseFile:        os.Getenv("DATABASE_FILE"),
		SecureCookies:       getEnvBoolOrDefault("SECURE_COOKIES", false),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 3001),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.DatabaseFile == "" {
		if cfg.StoreDriver == "sqlite" {
			cfg.DatabaseFile = "crm.db"
		} else {
			cfg.DatabaseFile = "crm.json"
		}
	}

	origins := getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are treated as seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
