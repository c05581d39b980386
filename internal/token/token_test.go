package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		word string
		want Kind
	}{
		{"let", LET},
		{"fn", FN},
		{"Dict", DICT_TYPE},
		{"int", INT_TYPE},
		{"sep", IDENT}, // sep/end are not lexical keywords
		{"end", IDENT},
		{"someVar", IDENT},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.word))
		})
	}
}

func TestMerge(t *testing.T) {
	a := Span{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 5, File: "a.qsr"}
	b := Span{StartLine: 1, StartCol: 10, EndLine: 2, EndCol: 3, File: "a.qsr"}

	got := Merge(a, b)
	assert.Equal(t, 1, got.StartLine)
	assert.Equal(t, 1, got.StartCol)
	assert.Equal(t, 2, got.EndLine)
	assert.Equal(t, 3, got.EndCol)
}

func TestSpanString(t *testing.T) {
	s := Span{StartLine: 4, StartCol: 7, File: "foo.qsr"}
	assert.Equal(t, "foo.qsr:4:7", s.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "fn", FN.String())
	assert.Equal(t, "+", PLUS.String())
}
