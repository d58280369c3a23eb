// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig contains runtime settings sourced from environment
// variables, with sensible defaults for local development.
type EnvironmentConfig struct {
	MetricsAddr     string
	TickRate        int
	MaxSubSteps     int
	ShutdownTimeout time.Duration

	// Circuit Breaker Configuration
	CircuitBreakerMaxConsecutiveFails uint32
}

// LoadConfigFromEnv builds an EnvironmentConfig from SIXDOF_* environment
// variables, falling back to defaults for unset values.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	config := &EnvironmentConfig{
		MetricsAddr:                       getEnvString("SIXDOF_METRICS_ADDR", ":9090"),
		ShutdownTimeout:                   getEnvDuration("SIXDOF_SHUTDOWN_TIMEOUT", 10*time.Second),
		CircuitBreakerMaxConsecutiveFails: uint32(getEnvInt("SIXDOF_CB_MAX_CONSECUTIVE_FAILS", 3)),
	}

	config.TickRate = getEnvInt("SIXDOF_TICK_RATE", 60)
	config.MaxSubSteps = getEnvInt("SIXDOF_MAX_SUB_STEPS", 5)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration values are usable.
func (c *EnvironmentConfig) Validate() error {
	if c.MetricsAddr == "" {
		return fmt.Errorf("invalid MetricsAddr: must not be empty")
	}
	if c.TickRate < 1 || c.TickRate > 1000 {
		return fmt.Errorf("invalid TickRate: %d (must be 1-1000)", c.TickRate)
	}
	if c.MaxSubSteps < 1 {
		return fmt.Errorf("invalid MaxSubSteps: %d (must be at least 1)", c.MaxSubSteps)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid ShutdownTimeout: %v (must be positive)", c.ShutdownTimeout)
	}
	if c.CircuitBreakerMaxConsecutiveFails == 0 {
		return fmt.Errorf("invalid CircuitBreakerMaxConsecutiveFails: must be at least 1")
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
