package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSourceSuccess(t *testing.T) {
	res := CompileSource("t.qsr", `
		fn add(a: int, b: int) -> int {
			return a + b
		}
		let x: int = add(1, 2)
	`)
	require.Empty(t, res.Diagnostics)
	assert.Contains(t, res.Python, "def add(a: int, b: int) -> int:")
	assert.Contains(t, res.Python, "x = add(1, 2)")
}

func TestCompileSourceHaltsAtParseStage(t *testing.T) {
	res := CompileSource("t.qsr", `let x: int = `)
	assert.Empty(t, res.Python)
	assert.NotEmpty(t, res.Diagnostics)
}

func TestCompileSourceHaltsAtSemaStage(t *testing.T) {
	res := CompileSource("t.qsr", `let x: int = "not an int"`)
	assert.Empty(t, res.Python)
	assert.NotEmpty(t, res.Diagnostics)
}

func TestCompileMissingFile(t *testing.T) {
	res := Compile(filepath.Join(t.TempDir(), "does-not-exist.qsr"))
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, "E1300", string(res.Diagnostics[0].Code))
}

func TestCompileWithLocalImport(t *testing.T) {
	dir := t.TempDir()
	utilPath := filepath.Join(dir, "util.qsr")
	mainPath := filepath.Join(dir, "main.qsr")

	require.NoError(t, os.WriteFile(utilPath, []byte(`
		fn double(n: int) -> int {
			return n * 2
		}
	`), 0o644))
	require.NoError(t, os.WriteFile(mainPath, []byte(`
		import "./util.qsr"
		let x: int = double(21)
	`), 0o644))

	res := Compile(mainPath)
	require.Empty(t, res.Diagnostics, "%v", res.Diagnostics)
	assert.Contains(t, res.Python, "from util import *")
	assert.Contains(t, res.Python, "x = double(21)")
}

func TestCompileCircularImportIsNonFatalDiagnostic(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.qsr")
	bPath := filepath.Join(dir, "b.qsr")

	require.NoError(t, os.WriteFile(aPath, []byte(`import "./b.qsr"`), 0o644))
	require.NoError(t, os.WriteFile(bPath, []byte(`import "./a.qsr"`), 0o644))

	res := Compile(aPath)
	require.NotEmpty(t, res.Diagnostics)
	found := false
	for _, d := range res.Diagnostics {
		if string(d.Code) == "E0902" {
			found = true
		}
	}
	assert.True(t, found, "%v", res.Diagnostics)
}

func TestCheckGroupsDiagnosticsByStage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.qsr")
	require.NoError(t, os.WriteFile(path, []byte(`let x: int = "oops"`), 0o644))

	groups, err := Check(path)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "semantic", groups[0].Stage)
	assert.NotEmpty(t, groups[0].Diagnostics)
}

func TestCheckCleanFileHasNoGroups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "good.qsr")
	require.NoError(t, os.WriteFile(path, []byte(`let x: int = 1`), 0o644))

	groups, err := Check(path)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestCompileStructAndEnumEndToEnd(t *testing.T) {
	res := CompileSource("t.qsr", `
		struct Point { x: int, y: int }
		enum Color { Red, Green, Blue }

		fn describe(p: Point, c: Color) -> str {
			return "point"
		}

		let origin: Point = Point { x: 0, y: 0 }
		let favorite: Color = Color.Green
	`)
	require.Empty(t, res.Diagnostics, "%v", res.Diagnostics)
	assert.Contains(t, res.Python, "@dataclass")
	assert.Contains(t, res.Python, "class Point:")
	assert.Contains(t, res.Python, "class Color(Enum):")
	assert.Contains(t, res.Python, "favorite = Color.Green")
}
