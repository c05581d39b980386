package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.py")
	require.NoError(t, WriteFile(path, "print(1)\n", DefaultAtomicConfig()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "print(1)\n", string(got))
}

func TestWriteFileBacksUpExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.py")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	cfg := DefaultAtomicConfig()
	require.NoError(t, WriteFile(path, "new\n", cfg))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(backup))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(current))
}

func TestWriteFileSkipsBackupWhenDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.py")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	cfg := DefaultAtomicConfig()
	cfg.BackupOriginal = false
	require.NoError(t, WriteFile(path, "new\n", cfg))

	_, err := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.py")
	cfg := DefaultAtomicConfig()
	require.NoError(t, WriteFile(path, "x = 1\n", cfg))

	_, err := os.Stat(path + cfg.TempSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestDefaultAtomicConfig(t *testing.T) {
	cfg := DefaultAtomicConfig()
	assert.False(t, cfg.UseFsync)
	assert.True(t, cfg.BackupOriginal)
	assert.Equal(t, ".quasarc.tmp", cfg.TempSuffix)
}
