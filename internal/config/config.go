package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config collects the environment-driven settings of the loader. Everything
// except DATABASE_URL has a sensible default.
type Config struct {
	DatabaseURL    string
	SourceTimezone string
	AuditFilePath  string
	DBBatchSize    int
	APIPort        string
}

func New() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	cfg := &Config{
		DatabaseURL:    databaseURL,
		SourceTimezone: "America/New_York",
		AuditFilePath:  "duplicates.csv",
		DBBatchSize:    50000,
		APIPort:        "8080",
	}

	if tz := os.Getenv("SOURCE_TIMEZONE"); tz != "" {
		cfg.SourceTimezone = tz
	}

	if path := os.Getenv("AUDIT_FILE_PATH"); path != "" {
		cfg.AuditFilePath = path
	}

	if port := os.Getenv("API_PORT"); port != "" {
		cfg.APIPort = port
	}

	var err error
	cfg.DBBatchSize, err = getEnvAsInt("DB_BATCH_SIZE", cfg.DBBatchSize)
	if err != nil {
		return nil, err
	}
	if cfg.DBBatchSize <= 0 {
		return nil, fmt.Errorf("invalid value for DB_BATCH_SIZE: expected a positive integer, got %d", cfg.DBBatchSize)
	}

	return cfg, nil
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}

	return value, nil
}
