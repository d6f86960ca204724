// Package config loads application settings from the environment and an
// optional dotenv file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv        string
	Port          string
	StorageDriver string
	DBPath        string
	BoltPath      string
	SessionSecret string
	LogLevel      string
	LogFormat     string
	LogFile       string
	SeedDemo      bool
	APIRateLimit  float64
	APIRateBurst  int
}

// IsDev reports whether the app runs in development mode.
func (c Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development"
}

// Warnings lists settings that work but should be fixed outside development.
func (c Config) Warnings() []string {
	var warnings []string
	if c.SessionSecret == "" {
		warnings = append(warnings, "SESSION_SECRET is not set; sessions will not survive a restart")
	}
	if c.StorageDriver == DriverMemory && !c.IsDev() {
		warnings = append(warnings, "STORAGE_DRIVER=memory loses saved products on restart")
	}
	return warnings
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORAGE_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "./dev.db")
	v.SetDefault("BOLT_PATH", "./precificalc.bolt")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("SEED_DEMO", false)
	v.SetDefault("API_RATE_LIMIT", 5.0)
	v.SetDefault("API_RATE_BURST", 10)
}

// Load reads envFile (when non-empty and present) and the process
// environment. Environment variables win over the file.
func Load(envFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	cfg := Config{
		AppEnv:        strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		Port:          strings.TrimSpace(v.GetString("PORT")),
		StorageDriver: strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DBPath:        v.GetString("DB_PATH"),
		BoltPath:      v.GetString("BOLT_PATH"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:     strings.ToLower(v.GetString("LOG_FORMAT")),
		LogFile:       v.GetString("LOG_FILE"),
		SeedDemo:      v.GetBool("SEED_DEMO"),
		APIRateLimit:  v.GetFloat64("API_RATE_LIMIT"),
		APIRateBurst:  v.GetInt("API_RATE_BURST"),
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.IsDev() {
			cfg.LogFormat = "console"
		}
	}

	switch cfg.StorageDriver {
	case DriverSQLite, DriverBolt, DriverMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q (want sqlite, bolt or memory)", cfg.StorageDriver)
	}

	if cfg.Port == "" {
		return Config{}, errors.New("PORT must not be empty")
	}
	if cfg.APIRateLimit <= 0 {
		return Config{}, fmt.Errorf("API_RATE_LIMIT must be positive, got %v", cfg.APIRateLimit)
	}
	if cfg.APIRateBurst < 1 {
		return Config{}, fmt.Errorf("API_RATE_BURST must be at least 1, got %d", cfg.APIRateBurst)
	}

	return cfg, nil
}
