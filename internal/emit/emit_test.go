package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/quasar/internal/parser"
)

func TestEmitVarDecl(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `let x: int = 1 + 2`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "x = (1 + 2)")
}

func TestEmitFunc(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		fn add(a: int, b: int) -> int {
			return a + b
		}
	`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "def add(a: int, b: int) -> int:")
	assert.Contains(t, out, "return (a + b)")
}

func TestEmitFuncVoidReturn(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		fn greet(name: str) -> void {
			print(name)
		}
	`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "def greet(name: str):")
}

func TestEmitStructDataclass(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `struct Point { x: int, y: int }`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "from dataclasses import dataclass")
	assert.Contains(t, out, "@dataclass")
	assert.Contains(t, out, "class Point:")
	assert.Contains(t, out, "x: int")
	assert.Contains(t, out, "y: int")
}

func TestEmitEmptyStructUsesPass(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `struct Empty {}`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "class Empty:")
	assert.Contains(t, out, "pass")
}

func TestEmitEnum(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `enum Color { Red, Green, Blue }`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "from enum import Enum, auto")
	assert.Contains(t, out, "class Color(Enum):")
	assert.Contains(t, out, "Red = auto()")
	assert.Contains(t, out, "Green = auto()")
}

func TestEmitEnumVariantMemberAccess(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		enum Color { Red, Green }
		let c: Color = Color.Red
	`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "c = Color.Red")
}

func TestEmitStructFieldMemberAccess(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		struct Point { x: int, y: int }
		let p: Point = Point { x: 1, y: 2 }
		let px: int = p.x
	`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "p = Point(x=1, y=2)")
	assert.Contains(t, out, "px = p.x")
}

func TestEmitPrintFormatMode(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `print("hello {}", name)`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, `print("hello {}".format(name))`)
}

func TestEmitPrintPlainMode(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `print(1, 2, 3)`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "print(1, 2, 3)")
}

func TestEmitPrintSepEnd(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `print(1, sep=",", end="")`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, `sep=","`)
	assert.Contains(t, out, `end=""`)
}

func TestEmitIfElse(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		if x == 1 {
			print(1)
		} else {
			print(0)
		}
	`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "if (x == 1):")
	assert.Contains(t, out, "else:")
}

func TestEmitWhileAndFor(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		while x < 10 {
			print(x)
		}
		for i in 0..5 {
			print(i)
		}
	`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "while (x < 10):")
	assert.Contains(t, out, "for i in range(0, 5):")
}

func TestEmitListMethods(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let xs: [int] = [1, 2, 3]
		xs.push(4)
		let n: int = xs.len()
	`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "xs.append(4)")
	assert.Contains(t, out, "len(xs)")
}

func TestEmitDictMethods(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		let m: Dict[str, int] = {"a": 1}
		let ks: [str] = m.keys()
	`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, `m = {"a": 1}`)
	assert.Contains(t, out, "list(m.keys())")
}

func TestEmitFloatFormatting(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `let f: float = 3.0`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.True(t, strings.Contains(out, "f = 3") && strings.Contains(out, "3.0"))
}

func TestEmitStringEscaping(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `let s: str = "line\nend"`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, `s = "line\nend"`)
}

func TestEmitEmptyFuncBodyUsesPass(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `
		fn noop() -> void {
		}
	`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "def noop():")
	assert.Contains(t, out, "pass")
}

func TestEmitLocalImport(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `import "./util.qsr"`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "from util import *")
}

func TestEmitExternalImport(t *testing.T) {
	prog, diags := parser.Parse("t.qsr", `import math`)
	require.False(t, diags.HasErrors())
	out := Emit(prog)
	assert.Contains(t, out, "import math")
}
