package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	MongoDBURI       string
	MongoDBDatabase  string
	EventsCollection string
	MediaCollection  string

	StorageAccountName string
	StorageAccountKey  string
	MediaContainerName string

	AdminPasscode string
	DefaultHostID string

	ArchiveFetchConcurrency int
	CORSAllowedOrigins      []string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),

		MongoDBURI:       os.Getenv("MONGODB_URI"),
		MongoDBDatabase:  getEnvWithDefault("MONGODB_DATABASE", "memorywall"),
		EventsCollection: getEnvWithDefault("EVENTS_COLLECTION", "events"),
		MediaCollection:  getEnvWithDefault("MEDIA_COLLECTION", "media"),

		StorageAccountName: os.Getenv("STORAGE_ACCOUNT_NAME"),
		StorageAccountKey:  os.Getenv("STORAGE_ACCOUNT_KEY"),
		MediaContainerName: os.Getenv("MEDIA_CONTAINER_NAME"),

		AdminPasscode: os.Getenv("ADMIN_PASSCODE"),
		DefaultHostID: getEnvWithDefault("DEFAULT_HOST_ID", "demo-host"),

		ArchiveFetchConcurrency: getEnvIntWithDefault("ARCHIVE_FETCH_CONCURRENCY", 1),
		CORSAllowedOrigins:      splitCSV(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.StorageAccountName == "" {
		return nil, fmt.Errorf("STORAGE_ACCOUNT_NAME is required")
	}
	if cfg.StorageAccountKey == "" {
		return nil, fmt.Errorf("STORAGE_ACCOUNT_KEY is required")
	}
	if cfg.MediaContainerName == "" {
		return nil, fmt.Errorf("MEDIA_CONTAINER_NAME is required")
	}
	if cfg.ArchiveFetchConcurrency < 1 {
		return nil, fmt.Errorf("ARCHIVE_FETCH_CONCURRENCY must be >= 1")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
