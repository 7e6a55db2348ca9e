package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"billmaker/internal/logger"
)

// Conventional asset file names, resolved inside AssetDir.
const (
	LogoFileName  = "logo.png"
	StampFileName = "stamp.jpg"
	FontFileName  = "calibri.ttf"
)

type Config struct {
	// Storage Configuration
	DatabasePath string

	// Document Output Configuration
	OutputDir string

	// Static Asset Configuration
	AssetDir string

	// Staff allowed to sign invoices
	Staff []string

	// Host-layer authorization secrets (empty = capability open)
	PrintPassword string
	AdminPassword string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		DatabasePath:  getEnv("BILLMAKER_DB_PATH", "invoices.db"),
		OutputDir:     getEnv("BILLMAKER_OUTPUT_DIR", "."),
		AssetDir:      getEnv("BILLMAKER_ASSET_DIR", "."),
		Staff:         splitList(getEnv("BILLMAKER_STAFF", "Imaaduddin Khan,Bilawal Ali")),
		PrintPassword: getEnv("BILLMAKER_PRINT_PASSWORD", ""),
		AdminPassword: getEnv("BILLMAKER_ADMIN_PASSWORD", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("BILLMAKER_DB_PATH must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("BILLMAKER_OUTPUT_DIR must not be empty")
	}
	if len(c.Staff) == 0 {
		return fmt.Errorf("BILLMAKER_STAFF must name at least one signer")
	}
	return nil
}

// LogoPath returns the mandatory logo image location.
func (c *Config) LogoPath() string {
	return filepath.Join(c.AssetDir, LogoFileName)
}

// StampPath returns the optional signing-stamp image location.
func (c *Config) StampPath() string {
	return filepath.Join(c.AssetDir, StampFileName)
}

// FontPath returns the mandatory brand font location.
func (c *Config) FontPath() string {
	return filepath.Join(c.AssetDir, FontFileName)
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
