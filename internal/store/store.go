// Package store persists a compile-history audit log to SQLite via gorm,
// grounded on the teacher's db.Connect/Migrate pattern but trimmed to one
// cgo-free driver and one append-only table — Quasar never reads this log
// back to influence compilation (spec.md's non-goal of cached/incremental
// compilation, SPEC_FULL.md §B).
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CompileRun records one quasarc invocation's outcome.
type CompileRun struct {
	ID            uint   `gorm:"primaryKey"`
	SourcePath    string `gorm:"type:varchar(1024);index"`
	Verb          string `gorm:"type:varchar(20)"` // compile or run
	Success       bool
	DiagCount     int
	DiagCodes     string `gorm:"type:text"` // comma-joined Code list, empty on success
	EmittedPath   string `gorm:"type:varchar(1024)"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

// Connect opens (creating if necessary) the SQLite database at dsn and
// migrates the CompileRun table.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if err := db.AutoMigrate(&CompileRun{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

// Record inserts a CompileRun row.
func Record(db *gorm.DB, run *CompileRun) error {
	return db.Create(run).Error
}

// Recent returns the last n CompileRun rows for sourcePath, newest first.
func Recent(db *gorm.DB, sourcePath string, n int) ([]CompileRun, error) {
	var runs []CompileRun
	err := db.Where("source_path = ?", sourcePath).
		Order("created_at desc").
		Limit(n).
		Find(&runs).Error
	return runs, err
}

// Prune deletes all but the most recent `retain` rows for sourcePath,
// mirroring the teacher's RetentionRuns config knob.
func Prune(db *gorm.DB, sourcePath string, retain int) error {
	var ids []uint
	if err := db.Model(&CompileRun{}).
		Where("source_path = ?", sourcePath).
		Order("created_at desc").
		Offset(retain).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return db.Delete(&CompileRun{}, ids).Error
}
