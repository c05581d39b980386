package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectMigratesTable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "quasarc.db")
	db, err := Connect(dsn, false)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&CompileRun{}))
}

func TestRecordAndRecent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "quasarc.db")
	db, err := Connect(dsn, false)
	require.NoError(t, err)

	require.NoError(t, Record(db, &CompileRun{SourcePath: "a.qsr", Verb: "compile", Success: true}))
	require.NoError(t, Record(db, &CompileRun{SourcePath: "a.qsr", Verb: "compile", Success: false, DiagCount: 2, DiagCodes: "E0101,E0202"}))
	require.NoError(t, Record(db, &CompileRun{SourcePath: "b.qsr", Verb: "compile", Success: true}))

	runs, err := Recent(db, "a.qsr", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// newest first
	assert.False(t, runs[0].Success)
	assert.Equal(t, "E0101,E0202", runs[0].DiagCodes)
}

func TestRecentLimitsToSourcePath(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "quasarc.db")
	db, err := Connect(dsn, false)
	require.NoError(t, err)

	require.NoError(t, Record(db, &CompileRun{SourcePath: "only-this.qsr"}))
	require.NoError(t, Record(db, &CompileRun{SourcePath: "other.qsr"}))

	runs, err := Recent(db, "only-this.qsr", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "only-this.qsr", runs[0].SourcePath)
}

func TestPruneKeepsOnlyMostRecent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "quasarc.db")
	db, err := Connect(dsn, false)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, Record(db, &CompileRun{SourcePath: "a.qsr"}))
	}
	require.NoError(t, Prune(db, "a.qsr", 2))

	runs, err := Recent(db, "a.qsr", 100)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
