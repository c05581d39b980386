package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/quasar/internal/parser"
)

func TestAnalyzeEnumVariantAccess(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		enum Color { Red, Green, Blue }
		let c: Color = Color.Red
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeUnknownEnumVariant(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		enum Color { Red, Green }
		let c: Color = Color.Purple
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeEnumComparisonAcrossTypesRejected(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		enum Color { Red, Green }
		enum Size { Small, Large }
		let ok: bool = Color.Red == Size.Small
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeEnumOrderingRejected(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		enum Color { Red, Green }
		let ok: bool = Color.Red < Color.Green
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeStringConcatenation(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `let s: str = "a" + "b"`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeMixedArithmeticRejected(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `let x: int = 1 + 1.5`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeHeterogeneousListRejected(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `let xs: [int] = [1, "two", 3]`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeListIndex(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let xs: [int] = [1, 2, 3]
		let v: int = xs[0]
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeDictIndexWrongKeyType(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let m: Dict[str, int] = {"a": 1}
		let v: int = m[1]
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeStructInitMissingField(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		struct Point { x: int, y: int }
		let p: Point = Point { x: 1 }
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeStructInitExtraField(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		struct Point { x: int }
		let p: Point = Point { x: 1, y: 2 }
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeStructFieldAccess(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		struct Point { x: int, y: int }
		let p: Point = Point { x: 1, y: 2 }
		let px: int = p.x
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeCallArgCountMismatch(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		fn f(a: int) -> int { return a }
		let x: int = f(1, 2)
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeRangeRequiresInt(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		for i in "a".."z" {
			print(i)
		}
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}
