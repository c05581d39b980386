// Package runner handles quasarc's filesystem and subprocess side:
// atomic output-file writes for `compile -o`, unified diff rendering for
// `compile --diff`, and invoking the host Python interpreter for `run`.
// Grounded on the teacher's core.AtomicWriter (temp-file-then-rename with
// optional backup/fsync).
package runner

import (
	"fmt"
	"os"
	"time"
)

// AtomicWriteConfig controls WriteFile's durability/backup behavior.
type AtomicWriteConfig struct {
	UseFsync       bool
	TempSuffix     string
	BackupOriginal bool
}

// DefaultAtomicConfig mirrors the teacher's defaults: performance over
// fsync durability, backups on by default since overwriting a
// hand-edited .py file is the one mistake this package must never make
// silently.
func DefaultAtomicConfig() AtomicWriteConfig {
	return AtomicWriteConfig{
		UseFsync:       false,
		TempSuffix:     ".quasarc.tmp",
		BackupOriginal: true,
	}
}

// WriteFile atomically writes content to path: optional backup of any
// existing file, write-to-temp, then rename over the original.
func WriteFile(path, content string, cfg AtomicWriteConfig) error {
	fileMode := os.FileMode(0o644)
	originalInfo, err := os.Stat(path)
	if err == nil {
		fileMode = originalInfo.Mode()
	}

	if cfg.BackupOriginal && err == nil {
		if err := copyFile(path, path+".bak"); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	tempPath := path + cfg.TempSuffix
	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write content: %w", err)
	}

	if cfg.UseFsync {
		if err := tempFile.Sync(); err != nil {
			tempFile.Close()
			os.Remove(tempPath)
			return fmt.Errorf("failed to sync: %w", err)
		}
	}
	tempFile.Close()

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to atomic rename: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// timeoutDefault bounds how long a subprocess Python run is allowed
// before the runner kills it.
const timeoutDefault = 30 * time.Second
