package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Storage backends for the watched list
const (
	StorageBolt = "bolt"
	StorageFile = "file"
)

// Config holds all application configuration
type Config struct {
	// OMDb
	OMDbAPIKey  string
	OMDbURL     string
	HTTPTimeout time.Duration

	// Search
	MinQueryLength int // Queries shorter than this never hit the API (default: 3)

	// Storage
	StorageBackend string // "bolt" or "file"

	// Paths
	DatabaseFile string // $CONFIG_DIR/popcorn.db
	StorageDir   string // $CONFIG_DIR/storage
	LogFile      string // $CONFIG_DIR/popcorn.log
	MetricsFile  string // optional Prometheus textfile written on exit

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("OMDB_URL", "https://www.omdbapi.com/")
	v.SetDefault("MIN_QUERY_LENGTH", 3)
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 30)
	v.SetDefault("STORAGE_BACKEND", StorageBolt)
	v.SetDefault("LOG_LEVEL", "info")

	configDir := v.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "popcorn")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		OMDbAPIKey:  v.GetString("OMDB_API_KEY"),
		OMDbURL:     v.GetString("OMDB_URL"),
		HTTPTimeout: time.Duration(v.GetInt("HTTP_TIMEOUT_SECONDS")) * time.Second,

		MinQueryLength: v.GetInt("MIN_QUERY_LENGTH"),

		StorageBackend: v.GetString("STORAGE_BACKEND"),

		DatabaseFile: filepath.Join(configDir, "popcorn.db"),
		StorageDir:   filepath.Join(configDir, "storage"),
		LogFile:      filepath.Join(configDir, "popcorn.log"),
		MetricsFile:  v.GetString("METRICS_FILE"),

		LogLevel: v.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.OMDbAPIKey == "" {
		return nil, fmt.Errorf("OMDB_API_KEY is required")
	}
	if config.MinQueryLength < 0 {
		return nil, fmt.Errorf("MIN_QUERY_LENGTH must not be negative")
	}
	if config.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}
	switch config.StorageBackend {
	case StorageBolt, StorageFile:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", config.StorageBackend)
	}

	return config, nil
}
