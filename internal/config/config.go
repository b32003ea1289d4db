package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"

	DefaultDataFile   = "hotel_rooms.csv"
	DefaultSQLiteFile = "hotel_rooms.db"
)

type Config struct {
	DataFile string
	Backend  string
	Verbose  bool
}

// Load loads configuration from environment variables only.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile loads configuration from an optional .env file and environment variables.
func LoadWithFile(envFile string) (*Config, error) {
	// Attempt to load .env file if provided, but don't fail if it doesn't exist.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Backend: envOrDefault("HOTEL_STORE_BACKEND", BackendCSV),
		Verbose: parseBool(os.Getenv("HOTEL_VERBOSE")),
	}
	defaultFile := DefaultDataFile
	if cfg.Backend == BackendSQLite {
		defaultFile = DefaultSQLiteFile
	}
	cfg.DataFile = envOrDefault("HOTEL_DATA_FILE", defaultFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the backend is known and a data file is set.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("HOTEL_DATA_FILE is required")
	}
	switch c.Backend {
	case BackendCSV, BackendSQLite:
	default:
		return fmt.Errorf("HOTEL_STORE_BACKEND must be %q or %q, got %q", BackendCSV, BackendSQLite, c.Backend)
	}
	return nil
}

// parseBool converts a string to a boolean, defaulting to false.
func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
