package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fin-sh/fin/log"
)

const ConfigFileName = "config.json"

// GetConfigDir returns the path to fin's XDG-style configuration directory.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "fin"), nil
}

// Config is the persistent application configuration.
type Config struct {
	// TickIntervalMS is the period of the UI's housekeeping timer.
	TickIntervalMS int `json:"tick_interval_ms"`
	// MessageTimeoutSecs is how long transient status messages stay up.
	MessageTimeoutSecs int `json:"message_timeout_secs"`
	// ShowHidden lists dotfiles at startup.
	ShowHidden bool `json:"show_hidden,omitempty"`
	// TelemetryEnabled controls crash reporting via Sentry.
	// Defaults to true when not set.
	TelemetryEnabled *bool `json:"telemetry_enabled,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TickIntervalMS:     2000,
		MessageTimeoutSecs: 4,
	}
}

// LoadConfig loads the configuration, falling back to (and persisting)
// defaults when no config file exists yet.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}
	configPath := filepath.Join(configDir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if err := saveConfig(configPath, defaultCfg); err != nil {
				log.WarningLog.Printf("failed to save default config: %v", err)
			}
			return defaultCfg
		}
		log.WarningLog.Printf("failed to read config file: %v", err)
		return DefaultConfig()
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}
	return cfg
}

func saveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// TickInterval returns the housekeeping timer period.
func (c *Config) TickInterval() time.Duration {
	if c.TickIntervalMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// MessageTimeout returns how long transient messages stay visible.
func (c *Config) MessageTimeout() time.Duration {
	if c.MessageTimeoutSecs <= 0 {
		return 4 * time.Second
	}
	return time.Duration(c.MessageTimeoutSecs) * time.Second
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return true
	}
	return *c.TelemetryEnabled
}
