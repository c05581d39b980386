package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"QUASARC_DB_PATH", "QUASARC_PYTHON_BIN", "QUASARC_HISTORY_RETENTION"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg := LoadConfig()
	assert.Equal(t, "quasarc.db", cfg.DBPath)
	assert.Equal(t, "python3", cfg.PythonBin)
	assert.Equal(t, 20, cfg.HistoryRetention)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUASARC_DB_PATH", "/tmp/custom.db")
	t.Setenv("QUASARC_PYTHON_BIN", "/usr/bin/python3.11")
	t.Setenv("QUASARC_HISTORY_RETENTION", "5")

	cfg := LoadConfig()
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "/usr/bin/python3.11", cfg.PythonBin)
	assert.Equal(t, 5, cfg.HistoryRetention)
}

func TestLoadConfigMalformedRetentionFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUASARC_HISTORY_RETENTION", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, 20, cfg.HistoryRetention)
}

func TestLoadConfigNegativeRetentionFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUASARC_HISTORY_RETENTION", "-1")

	cfg := LoadConfig()
	assert.Equal(t, 20, cfg.HistoryRetention)
}
