package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/quasar/internal/token"
)

func TestBagAdd(t *testing.T) {
	var b Bag
	assert.False(t, b.HasErrors())

	sp := token.Span{StartLine: 1, StartCol: 1, File: "x.qsr"}
	b.Add(ErrTypeMismatch, sp, "cannot assign %s to %s", "int", "str")

	require.True(t, b.HasErrors())
	require.Len(t, b.Items(), 1)
	assert.Equal(t, ErrTypeMismatch, b.Items()[0].Code)
	assert.Equal(t, "cannot assign int to str", b.Items()[0].Message)
}

func TestBagExtend(t *testing.T) {
	var a, b Bag
	a.Add(ErrUnknownType, token.Span{}, "unknown")
	b.Add(ErrMissingReturn, token.Span{}, "missing")

	a.Extend(&b)
	require.Len(t, a.Items(), 2)
	assert.Equal(t, ErrUnknownType, a.Items()[0].Code)
	assert.Equal(t, ErrMissingReturn, a.Items()[1].Code)
}

func TestDiagnosticError(t *testing.T) {
	d := Diagnostic{
		Code:    ErrBadIterable,
		Message: "cannot iterate over int",
		Span:    token.Span{StartLine: 2, StartCol: 3, File: "x.qsr"},
	}
	assert.Equal(t, "x.qsr:2:3: E0505: cannot iterate over int", d.Error())
}

func TestDiagnosticJSON(t *testing.T) {
	d := Diagnostic{Code: ErrUnknownMethod, Message: "no such method"}
	j := d.JSON()
	assert.Contains(t, j, `"code":"E1105"`)
	assert.Contains(t, j, `"message":"no such method"`)
}
