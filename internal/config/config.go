package config

import (
	"os"
	"strconv"

	"coinlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Simulation SimulationConfig
	Store      StoreConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	UIPort  string
	APIPort string
	GinMode string
}

// SimulationConfig holds the bounds and defaults of the trial simulator
type SimulationConfig struct {
	MaxFlips           int
	DefaultFlips       int
	DefaultProbability float64
	SignificanceLevel  float64
	ConfidenceLevel    float64
}

// StoreConfig holds session snapshot store settings
type StoreConfig struct {
	// DSN for the in-process SQLite store. Defaults to :memory: so that
	// nothing survives the interactive session.
	DSN string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			UIPort:  getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Simulation: SimulationConfig{
			MaxFlips:           getEnvIntOrDefault("MAX_FLIPS", 1000),
			DefaultFlips:       getEnvIntOrDefault("DEFAULT_FLIPS", 10),
			DefaultProbability: getEnvFloatOrDefault("DEFAULT_PROBABILITY", 0.5),
			SignificanceLevel:  getEnvFloatOrDefault("SIGNIFICANCE_LEVEL", 0.05),
			ConfidenceLevel:    getEnvFloatOrDefault("CONFIDENCE_LEVEL", 0.95),
		},
		Store: StoreConfig{
			DSN: getEnvOrDefault("SESSION_STORE_DSN", ":memory:"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.UIPort == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Simulation.MaxFlips < 1 {
		return errors.ConfigInvalid("MAX_FLIPS must be at least 1")
	}
	if config.Simulation.DefaultFlips < 1 || config.Simulation.DefaultFlips > config.Simulation.MaxFlips {
		return errors.ConfigInvalid("DEFAULT_FLIPS must be between 1 and MAX_FLIPS")
	}
	if config.Simulation.DefaultProbability < 0 || config.Simulation.DefaultProbability > 1 {
		return errors.ConfigInvalid("DEFAULT_PROBABILITY must be in [0, 1]")
	}
	if config.Simulation.SignificanceLevel <= 0 || config.Simulation.SignificanceLevel >= 1 {
		return errors.ConfigInvalid("SIGNIFICANCE_LEVEL must be in (0, 1)")
	}
	if config.Simulation.ConfidenceLevel <= 0 || config.Simulation.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid("CONFIDENCE_LEVEL must be in (0, 1)")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
