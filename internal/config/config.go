// Package config loads the settings of the arrangement counting function
// from the environment, after reading an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Hostname string

	// Workers bounds how many records a single request counts at once.
	Workers int

	// CacheSize is the number of per-record results kept across requests.
	CacheSize int

	LogLevel  string
	LogFormat string

	BigQuery BigQueryConfig
}

// BigQueryConfig locates the table that scoped record batches are read from.
type BigQueryConfig struct {
	Project  string
	Dataset  string
	Table    string
	Location string
}

// Enabled reports whether scoped requests can be served.
func (c BigQueryConfig) Enabled() bool {
	return c.Project != ""
}

// TableRef returns the fully qualified table name.
func (c BigQueryConfig) TableRef() string {
	return fmt.Sprintf("%s.%s.%s", c.Project, c.Dataset, c.Table)
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	workers, err := intEnv("WORKERS", 4)
	if err != nil {
		return nil, err
	}
	cacheSize, err := intEnv("CACHE_SIZE", 4096)
	if err != nil {
		return nil, err
	}

	hostname := ""
	if strings.EqualFold(strings.TrimSpace(os.Getenv("LOCAL_ONLY")), "true") {
		hostname = "127.0.0.1"
	}

	return &Config{
		Port:      firstNonEmpty(strings.TrimSpace(os.Getenv("PORT")), "8080"),
		Hostname:  hostname,
		Workers:   workers,
		CacheSize: cacheSize,
		LogLevel:  firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_LEVEL")), "info"),
		LogFormat: firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "json"),
		BigQuery: BigQueryConfig{
			Project:  strings.TrimSpace(os.Getenv("BIGQUERY_PROJECT")),
			Dataset:  firstNonEmpty(strings.TrimSpace(os.Getenv("BIGQUERY_DATASET")), "springs"),
			Table:    firstNonEmpty(strings.TrimSpace(os.Getenv("BIGQUERY_TABLE")), "condition_records"),
			Location: firstNonEmpty(strings.TrimSpace(os.Getenv("BIGQUERY_LOCATION")), "US"),
		},
	}, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("%s must be at least 1, got %d", key, v)
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
