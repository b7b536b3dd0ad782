package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Foursquare FoursquareConfig
	Store      StoreConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FoursquareConfig holds Foursquare Places API configuration
type FoursquareConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	Type string `mapstructure:"type"` // "memory" or "file"
	Path string `mapstructure:"path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/convenuence/")

	// Environment variable settings
	v.SetEnvPrefix("CONVENUENCE")
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory into the process
// environment. Existing variables are not overridden. A missing file is fine.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if os.Getenv(key) != "" {
			continue
		}
		os.Setenv(key, strings.TrimSpace(value))
	}
	return scanner.Err()
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Foursquare defaults
	v.SetDefault("foursquare.base_url", "https://api.foursquare.com/v3")
	v.SetDefault("foursquare.max_retries", 3)
	v.SetDefault("foursquare.retry_delay", "1s")
	v.SetDefault("foursquare.timeout", "30s")

	// Store defaults
	v.SetDefault("store.type", "file")
	v.SetDefault("store.path", "./data")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Foursquare.APIKey == "" {
		return fmt.Errorf("Foursquare API key is required (set CONVENUENCE_FOURSQUARE_API_KEY)")
	}

	if config.Store.Type != "memory" && config.Store.Type != "file" {
		return fmt.Errorf("store type must be 'memory' or 'file', got: %s", config.Store.Type)
	}

	if config.Store.Type == "file" && config.Store.Path == "" {
		return fmt.Errorf("store path is required when store type is 'file'")
	}

	if config.Foursquare.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got: %d", config.Foursquare.MaxRetries)
	}

	return nil
}
