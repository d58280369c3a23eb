// pkg/config/env_config_test.go
package config

import (
	"os"
	"testing"
	"time"
)

// createValidConfig creates a valid EnvironmentConfig for testing
func createValidConfig() *EnvironmentConfig {
	return &EnvironmentConfig{
		MetricsAddr:     ":9090",
		TickRate:        60,
		MaxSubSteps:     5,
		ShutdownTimeout: 10 * time.Second,
		// Circuit Breaker Configuration
		CircuitBreakerMaxConsecutiveFails: 3,
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	// Save original environment
	originalEnv := make(map[string]string)
	envVars := []string{
		"SIXDOF_METRICS_ADDR",
		"SIXDOF_TICK_RATE",
		"SIXDOF_MAX_SUB_STEPS",
		"SIXDOF_SHUTDOWN_TIMEOUT",
		"SIXDOF_CB_MAX_CONSECUTIVE_FAILS",
	}

	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		os.Unsetenv(key)
	}

	// Restore environment after test
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("DefaultValues", func(t *testing.T) {
		config, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() failed: %v", err)
		}

		if config.MetricsAddr != ":9090" {
			t.Errorf("Expected MetricsAddr ':9090', got '%s'", config.MetricsAddr)
		}
		if config.TickRate != 60 {
			t.Errorf("Expected TickRate 60, got %d", config.TickRate)
		}
		if config.MaxSubSteps != 5 {
			t.Errorf("Expected MaxSubSteps 5, got %d", config.MaxSubSteps)
		}
		if config.ShutdownTimeout != 10*time.Second {
			t.Errorf("Expected ShutdownTimeout 10s, got %v", config.ShutdownTimeout)
		}
		if config.CircuitBreakerMaxConsecutiveFails != 3 {
			t.Errorf("Expected CircuitBreakerMaxConsecutiveFails 3, got %d", config.CircuitBreakerMaxConsecutiveFails)
		}
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		os.Setenv("SIXDOF_METRICS_ADDR", ":8080")
		os.Setenv("SIXDOF_TICK_RATE", "120")
		os.Setenv("SIXDOF_MAX_SUB_STEPS", "8")
		os.Setenv("SIXDOF_SHUTDOWN_TIMEOUT", "30s")
		os.Setenv("SIXDOF_CB_MAX_CONSECUTIVE_FAILS", "5")

		config, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() failed: %v", err)
		}

		if config.MetricsAddr != ":8080" {
			t.Errorf("Expected MetricsAddr ':8080', got '%s'", config.MetricsAddr)
		}
		if config.TickRate != 120 {
			t.Errorf("Expected TickRate 120, got %d", config.TickRate)
		}
		if config.MaxSubSteps != 8 {
			t.Errorf("Expected MaxSubSteps 8, got %d", config.MaxSubSteps)
		}
		if config.ShutdownTimeout != 30*time.Second {
			t.Errorf("Expected ShutdownTimeout 30s, got %v", config.ShutdownTimeout)
		}
		if config.CircuitBreakerMaxConsecutiveFails != 5 {
			t.Errorf("Expected CircuitBreakerMaxConsecutiveFails 5, got %d", config.CircuitBreakerMaxConsecutiveFails)
		}
	})

	t.Run("InvalidValuesFallBackToDefaults", func(t *testing.T) {
		os.Setenv("SIXDOF_TICK_RATE", "not-a-number")
		os.Setenv("SIXDOF_SHUTDOWN_TIMEOUT", "eventually")
		defer os.Unsetenv("SIXDOF_TICK_RATE")
		defer os.Unsetenv("SIXDOF_SHUTDOWN_TIMEOUT")

		config, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() failed: %v", err)
		}

		if config.TickRate != 60 {
			t.Errorf("Expected fallback TickRate 60, got %d", config.TickRate)
		}
		if config.ShutdownTimeout != 10*time.Second {
			t.Errorf("Expected fallback ShutdownTimeout 10s, got %v", config.ShutdownTimeout)
		}
	})
}

func TestValidateEnvironmentConfig(t *testing.T) {
	tests := []struct {
		name        string
		config      *EnvironmentConfig
		expectError bool
	}{
		{
			name:        "ValidConfig",
			config:      createValidConfig(),
			expectError: false,
		},
		{
			name: "EmptyMetricsAddr",
			config: func() *EnvironmentConfig {
				c := createValidConfig()
				c.MetricsAddr = ""
				return c
			}(),
			expectError: true,
		},
		{
			name: "TickRateTooLow",
			config: func() *EnvironmentConfig {
				c := createValidConfig()
				c.TickRate = 0
				return c
			}(),
			expectError: true,
		},
		{
			name: "TickRateTooHigh",
			config: func() *EnvironmentConfig {
				c := createValidConfig()
				c.TickRate = 1001
				return c
			}(),
			expectError: true,
		},
		{
			name: "InvalidMaxSubSteps",
			config: func() *EnvironmentConfig {
				c := createValidConfig()
				c.MaxSubSteps = 0
				return c
			}(),
			expectError: true,
		},
		{
			name: "NonPositiveShutdownTimeout",
			config: func() *EnvironmentConfig {
				c := createValidConfig()
				c.ShutdownTimeout = 0
				return c
			}(),
			expectError: true,
		},
		{
			name: "ZeroConsecutiveFails",
			config: func() *EnvironmentConfig {
				c := createValidConfig()
				c.CircuitBreakerMaxConsecutiveFails = 0
				return c
			}(),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}
