package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/quasar/internal/parser"
)

func TestAnalyzeStrMethodLen(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `let n: int = "hello".len()`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeListPushReturnsVoid(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let xs: [int] = [1, 2]
		xs.push(3)
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeListJoinRequiresStrElems(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let xs: [int] = [1, 2]
		let s: str = xs.join(",")
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeDictGetSubstitutesValueType(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let m: Dict[str, int] = {"a": 1}
		let v: int = m.get("a", 0)
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeDictKeysReturnsListOfKeyType(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let m: Dict[str, int] = {"a": 1}
		let ks: [str] = m.keys()
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeUnknownMethodOnInt(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `let n: int = 5.upper()`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeMethodArgCountMismatch(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `let b: bool = "hi".contains()`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}

func TestAnalyzeStrStartsWithEndsWith(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let a: bool = "hello".starts_with("he")
		let b: bool = "hello".ends_with("lo")
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeStrTrimStartEndAndCasts(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let a: str = "  hi  ".trim_start()
		let b: str = "  hi  ".trim_end()
		let c: int = "5".to_int()
		let d: float = "5.0".to_float()
	`)
	require.False(t, diags.HasErrors())
	diagBag := Analyze(prog, opaqueResolver{})
	assert.False(t, diagBag.HasErrors(), "%v", diagBag.Items())
}

func TestAnalyzeListReverseAndClear(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let xs: [int] = [1, 2]
		xs.reverse()
		xs.clear()
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeDictHasKeyRemoveClear(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let m: Dict[str, int] = {"a": 1}
		let ok: bool = m.has_key("a")
		m.remove("a")
		m.clear()
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.False(t, d.HasErrors(), "%v", d.Items())
}

func TestAnalyzeDictGetWrongArgCountRejected(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let m: Dict[str, int] = {"a": 1}
		let v: int = m.get("a")
	`)
	require.False(t, diags.HasErrors())
	d := Analyze(prog, opaqueResolver{})
	assert.True(t, d.HasErrors())
}
