// Package types implements Quasar's closed type universe (spec.md §3): a
// finite, enumerable sum of primitives, homogeneous collections, nominal
// struct/enum references, module namespaces, and function signatures.
package types

import "fmt"

// Family distinguishes the variants of the type sum.
type Family int

const (
	FPrimitive Family = iota
	FList
	FDict
	FStruct
	FEnum
	FModule
	FFunction
)

// Primitive enumerates the primitive type family.
type Primitive int

const (
	Int Primitive = iota
	Float
	Bool
	Str
	Void
	Any
)

func (p Primitive) String() string {
	switch p {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Str:
		return "str"
	case Void:
		return "void"
	case Any:
		return "Any"
	default:
		return "?"
	}
}

// Type is an immutable value describing one member of the closed type
// universe. Exactly one of its fields is meaningful, selected by Family.
type Type struct {
	Family Family

	Prim Primitive // FPrimitive

	Elem *Type // FList: element type

	Key *Type // FDict: key type (Int, Str, or Bool)
	Val *Type // FDict: value type

	Name string // FStruct, FEnum, FModule: nominal name

	Params []Type // FFunction: parameter types
	Ret    *Type  // FFunction: return type
}

func NewPrimitive(p Primitive) Type { return Type{Family: FPrimitive, Prim: p} }

func NewList(elem Type) Type { return Type{Family: FList, Elem: &elem} }

func NewDict(key, val Type) Type { return Type{Family: FDict, Key: &key, Val: &val} }

func NewStruct(name string) Type { return Type{Family: FStruct, Name: name} }

func NewEnum(name string) Type { return Type{Family: FEnum, Name: name} }

func NewModule(name string) Type { return Type{Family: FModule, Name: name} }

func NewFunction(params []Type, ret Type) Type {
	return Type{Family: FFunction, Params: params, Ret: &ret}
}

var (
	TInt   = NewPrimitive(Int)
	TFloat = NewPrimitive(Float)
	TBool  = NewPrimitive(Bool)
	TStr   = NewPrimitive(Str)
	TVoid  = NewPrimitive(Void)
	TAny   = NewPrimitive(Any)
)

// IsAny reports whether t is the opaque Any primitive.
func (t Type) IsAny() bool {
	return t.Family == FPrimitive && t.Prim == Any
}

// Equal reports structural equality: same variant and same parameters.
// Any is NOT equal to other types under Equal — assignment compatibility
// (where Any matches anything) is a separate rule, see AssignableTo.
func Equal(a, b Type) bool {
	if a.Family != b.Family {
		return false
	}
	switch a.Family {
	case FPrimitive:
		return a.Prim == b.Prim
	case FList:
		return Equal(*a.Elem, *b.Elem)
	case FDict:
		return Equal(*a.Key, *b.Key) && Equal(*a.Val, *b.Val)
	case FStruct, FEnum, FModule:
		return a.Name == b.Name
	case FFunction:
		if len(a.Params) != len(b.Params) || !Equal(*a.Ret, *b.Ret) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// AssignableTo reports whether a value of type from may be bound to a
// location of type to, per spec.md §4.3: identical types are always
// assignable, and Any is compatible in both directions with any concrete
// type. There is no implicit numeric coercion — Int and Float are never
// mutually assignable.
func AssignableTo(from, to Type) bool {
	if from.IsAny() || to.IsAny() {
		return true
	}
	return Equal(from, to)
}

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t Type) bool {
	return t.Family == FPrimitive && (t.Prim == Int || t.Prim == Float)
}

// IsHashable reports whether t may be used as a dict key: Int, Str, or
// Bool only (spec.md §9 adopts the stricter reading; Float keys are
// rejected).
func IsHashable(t Type) bool {
	return t.Family == FPrimitive && (t.Prim == Int || t.Prim == Str || t.Prim == Bool)
}

// IsPrintable reports whether t may appear as a print(...) positional
// argument: Int, Float, Bool, or Str.
func IsPrintable(t Type) bool {
	return t.Family == FPrimitive && t.Prim != Void && t.Prim != Any
}

func (t Type) String() string {
	switch t.Family {
	case FPrimitive:
		return t.Prim.String()
	case FList:
		return fmt.Sprintf("List[%s]", t.Elem)
	case FDict:
		return fmt.Sprintf("Dict[%s, %s]", t.Key, t.Val)
	case FStruct:
		return t.Name
	case FEnum:
		return t.Name
	case FModule:
		return fmt.Sprintf("module %s", t.Name)
	case FFunction:
		return fmt.Sprintf("fn(%v) -> %s", t.Params, t.Ret)
	default:
		return "<invalid type>"
	}
}
