package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same primitive", TInt, TInt, true},
		{"different primitive", TInt, TStr, false},
		{"same list", NewList(TInt), NewList(TInt), true},
		{"different list elem", NewList(TInt), NewList(TStr), false},
		{"same dict", NewDict(TStr, TInt), NewDict(TStr, TInt), true},
		{"different dict val", NewDict(TStr, TInt), NewDict(TStr, TBool), false},
		{"same struct name", NewStruct("Point"), NewStruct("Point"), true},
		{"different struct name", NewStruct("Point"), NewStruct("Line"), false},
		{"different family", NewStruct("Point"), NewEnum("Point"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestAssignableTo(t *testing.T) {
	tests := []struct {
		name     string
		from, to Type
		want     bool
	}{
		{"same type", TInt, TInt, true},
		{"int to str rejected", TInt, TStr, false},
		{"any accepts anything", TInt, TAny, true},
		{"anything accepts any", TAny, TInt, true},
		{"list of any is not list of int (no nested Any rule)", NewList(TAny), NewList(TInt), false},
		{"identical list of int", NewList(TInt), NewList(TInt), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignableTo(tt.from, tt.to))
		})
	}
}

func TestIsHashable(t *testing.T) {
	assert.True(t, IsHashable(TInt))
	assert.True(t, IsHashable(TStr))
	assert.True(t, IsHashable(TBool))
	assert.False(t, IsHashable(TFloat))
	assert.False(t, IsHashable(NewList(TInt)))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric(TInt))
	assert.True(t, IsNumeric(TFloat))
	assert.False(t, IsNumeric(TStr))
	assert.False(t, IsNumeric(TBool))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "List[int]", NewList(TInt).String())
	assert.Equal(t, "Dict[str, int]", NewDict(TStr, TInt).String())
	assert.Equal(t, "Point", NewStruct("Point").String())
}
