// Package config loads quasarc's runtime configuration from the
// environment, following the teacher's plain os.Getenv-plus-defaults
// pattern rather than a struct-tag config library.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds quasarc's runtime configuration.
type Config struct {
	DBPath           string
	PythonBin        string
	HistoryRetention int
}

// LoadConfig loads a local .env (if present; silently ignored otherwise)
// and then reads QUASARC_* environment variables, falling back to
// defaults for anything unset or malformed.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:           os.Getenv("QUASARC_DB_PATH"),
		PythonBin:        os.Getenv("QUASARC_PYTHON_BIN"),
		HistoryRetention: 20, // Default value
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "quasarc.db"
	}
	if cfg.PythonBin == "" {
		cfg.PythonBin = "python3"
	}

	if retentionStr := os.Getenv("QUASARC_HISTORY_RETENTION"); retentionStr != "" {
		if retention, err := strconv.Atoi(retentionStr); err == nil && retention >= 0 {
			cfg.HistoryRetention = retention
		}
	}

	return cfg
}
