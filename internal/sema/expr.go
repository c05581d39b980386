package sema

import (
	"github.com/oxhq/quasar/internal/ast"
	"github.com/oxhq/quasar/internal/diag"
	"github.com/oxhq/quasar/internal/types"
)

// analyzeExpr types e in scope s, annotates e with the result via
// e.SetType, and returns the resolved type. Every *ast.Expr variant is
// handled by name; the switch is exhaustive over the closed Expr family
// (spec.md §9).
func (a *Analyzer) analyzeExpr(e ast.Expr, s *scope) types.Type {
	switch n := e.(type) {
	case *ast.IntLit:
		return a.set(n, types.TInt)
	case *ast.FloatLit:
		return a.set(n, types.TFloat)
	case *ast.BoolLit:
		return a.set(n, types.TBool)
	case *ast.StringLit:
		return a.set(n, types.TStr)
	case *ast.Ident:
		return a.analyzeIdent(n, s)
	case *ast.ListLit:
		return a.analyzeListLit(n, s)
	case *ast.DictLit:
		return a.analyzeDictLit(n, s)
	case *ast.RangeExpr:
		return a.analyzeRange(n, s)
	case *ast.BinaryExpr:
		return a.analyzeBinary(n, s)
	case *ast.UnaryExpr:
		return a.analyzeUnary(n, s)
	case *ast.CallExpr:
		return a.analyzeCall(n, s)
	case *ast.MethodCallExpr:
		return a.analyzeMethodCall(n, s)
	case *ast.MemberExpr:
		return a.analyzeMember(n, s)
	case *ast.IndexExpr:
		return a.analyzeIndex(n, s)
	case *ast.StructInit:
		return a.analyzeStructInit(n, s)
	default:
		return types.TAny
	}
}

func (a *Analyzer) set(e ast.Expr, t types.Type) types.Type {
	e.SetType(t)
	return t
}

func (a *Analyzer) analyzeIdent(n *ast.Ident, s *scope) types.Type {
	if sym, ok := s.resolve(n.Name); ok {
		return a.set(n, sym.typ)
	}
	a.diags.Add(diag.ErrTypeMismatch, n.Span(), "undefined name %q", n.Name)
	return a.set(n, types.TAny)
}

func (a *Analyzer) analyzeListLit(n *ast.ListLit, s *scope) types.Type {
	if len(n.Elems) == 0 {
		return a.set(n, types.NewList(types.TAny))
	}
	elem := a.analyzeExpr(n.Elems[0], s)
	for _, e := range n.Elems[1:] {
		t := a.analyzeExpr(e, s)
		if !types.Equal(t, elem) && !t.IsAny() && !elem.IsAny() {
			a.diags.Add(diag.ErrHeterogeneousList, e.Span(), "list element has type %s, expected %s", t, elem)
		}
	}
	return a.set(n, types.NewList(elem))
}

func (a *Analyzer) analyzeDictLit(n *ast.DictLit, s *scope) types.Type {
	if len(n.Entries) == 0 {
		return a.set(n, types.NewDict(types.TAny, types.TAny))
	}
	keyT := a.analyzeExpr(n.Entries[0].Key, s)
	valT := a.analyzeExpr(n.Entries[0].Value, s)
	if !types.IsHashable(keyT) {
		a.diags.Add(diag.ErrBadDictKeyType, n.Entries[0].Key.Span(), "dict key type must be int, str, or bool, got %s", keyT)
	}
	for _, entry := range n.Entries[1:] {
		kt := a.analyzeExpr(entry.Key, s)
		vt := a.analyzeExpr(entry.Value, s)
		if !types.Equal(kt, keyT) && !kt.IsAny() && !keyT.IsAny() {
			a.diags.Add(diag.ErrHeterogeneousDict, entry.Key.Span(), "dict key has type %s, expected %s", kt, keyT)
		}
		if !types.Equal(vt, valT) && !vt.IsAny() && !valT.IsAny() {
			a.diags.Add(diag.ErrHeterogeneousDict, entry.Value.Span(), "dict value has type %s, expected %s", vt, valT)
		}
	}
	return a.set(n, types.NewDict(keyT, valT))
}

func (a *Analyzer) analyzeRange(n *ast.RangeExpr, s *scope) types.Type {
	st := a.analyzeExpr(n.Start, s)
	et := a.analyzeExpr(n.End, s)
	if !(st.Family == types.FPrimitive && st.Prim == types.Int) {
		a.diags.Add(diag.ErrTypeMismatch, n.Start.Span(), "range bound must be int, got %s", st)
	}
	if !(et.Family == types.FPrimitive && et.Prim == types.Int) {
		a.diags.Add(diag.ErrTypeMismatch, n.End.Span(), "range bound must be int, got %s", et)
	}
	return a.set(n, types.NewList(types.TInt))
}

var arithOps = map[ast.BinOp]bool{ast.OpAdd: true, ast.OpSub: true, ast.OpMul: true, ast.OpDiv: true, ast.OpMod: true}
var cmpOps = map[ast.BinOp]bool{ast.OpLt: true, ast.OpGt: true, ast.OpLe: true, ast.OpGe: true}

func (a *Analyzer) analyzeBinary(n *ast.BinaryExpr, s *scope) types.Type {
	lt := a.analyzeExpr(n.Left, s)
	rt := a.analyzeExpr(n.Right, s)

	switch {
	case n.Op == ast.OpAnd || n.Op == ast.OpOr:
		if !isBoolish(lt) || !isBoolish(rt) {
			a.diags.Add(diag.ErrBadLogical, n.Span(), "&& and || require bool operands, got %s and %s", lt, rt)
		}
		return a.set(n, types.TBool)

	case n.Op == ast.OpEq || n.Op == ast.OpNeq:
		if lt.Family == types.FEnum && rt.Family == types.FEnum && lt.Name != rt.Name {
			a.diags.Add(diag.ErrEnumsIncomparable, n.Span(), "cannot compare enum %s with %s", lt, rt)
		} else if !types.Equal(lt, rt) && !lt.IsAny() && !rt.IsAny() {
			a.diags.Add(diag.ErrTypeMismatch, n.Span(), "cannot compare %s with %s", lt, rt)
		}
		return a.set(n, types.TBool)

	case cmpOps[n.Op]:
		if lt.Family == types.FEnum || rt.Family == types.FEnum {
			a.diags.Add(diag.ErrEnumOrdering, n.Span(), "enums do not support ordering")
		} else if sameNumericOrStr(lt, rt) {
			// ok
		} else if !lt.IsAny() && !rt.IsAny() {
			a.diags.Add(diag.ErrBadOrdering, n.Span(), "cannot order %s and %s", lt, rt)
		}
		return a.set(n, types.TBool)

	case arithOps[n.Op]:
		if n.Op == ast.OpAdd && isStr(lt) && isStr(rt) {
			return a.set(n, types.TStr)
		}
		if types.IsNumeric(lt) && types.IsNumeric(rt) {
			if types.Equal(lt, rt) {
				return a.set(n, lt)
			}
			a.diags.Add(diag.ErrMixedArithmetic, n.Span(), "cannot mix %s and %s in arithmetic", lt, rt)
			return a.set(n, lt)
		}
		if lt.IsAny() || rt.IsAny() {
			return a.set(n, types.TAny)
		}
		a.diags.Add(diag.ErrMixedArithmetic, n.Span(), "arithmetic requires numeric operands, got %s and %s", lt, rt)
		return a.set(n, types.TAny)
	}
	return a.set(n, types.TAny)
}

func isBoolish(t types.Type) bool {
	return t.Family == types.FPrimitive && (t.Prim == types.Bool || t.Prim == types.Any)
}

func isStr(t types.Type) bool { return t.Family == types.FPrimitive && t.Prim == types.Str }

func sameNumericOrStr(a, b types.Type) bool {
	if types.IsNumeric(a) && types.IsNumeric(b) {
		return types.Equal(a, b)
	}
	return isStr(a) && isStr(b)
}

func (a *Analyzer) analyzeUnary(n *ast.UnaryExpr, s *scope) types.Type {
	t := a.analyzeExpr(n.Operand, s)
	switch n.Op {
	case ast.OpNeg:
		if !types.IsNumeric(t) && !t.IsAny() {
			a.diags.Add(diag.ErrMixedArithmetic, n.Span(), "unary - requires a numeric operand, got %s", t)
		}
		return a.set(n, t)
	case ast.OpNot:
		if !isBoolish(t) {
			a.diags.Add(diag.ErrBadLogical, n.Span(), "! requires a bool operand, got %s", t)
		}
		return a.set(n, types.TBool)
	}
	return a.set(n, types.TAny)
}

// builtinNames are the global functions spec.md §4.3 intercepts during call
// analysis rather than resolving through scope: they are never first-class
// symbols, so a user-defined name of the same spelling always wins (checked
// by the caller before reaching here).
var builtinNames = map[string]bool{
	"len": true, "push": true, "keys": true, "values": true,
	"input": true, "int": true, "float": true, "str": true, "bool": true,
}

func (a *Analyzer) analyzeCall(n *ast.CallExpr, s *scope) types.Type {
	if id, ok := n.Callee.(*ast.Ident); ok && builtinNames[id.Name] {
		if _, shadowed := s.resolve(id.Name); !shadowed {
			return a.analyzeBuiltinCall(n, id.Name, s)
		}
	}

	calleeT := a.analyzeExpr(n.Callee, s)
	argTypes := make([]types.Type, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i] = a.analyzeExpr(arg, s)
	}
	if calleeT.IsAny() {
		return a.set(n, types.TAny)
	}
	if calleeT.Family != types.FFunction {
		a.diags.Add(diag.ErrTypeMismatch, n.Span(), "cannot call a value of type %s", calleeT)
		return a.set(n, types.TAny)
	}
	if len(argTypes) != len(calleeT.Params) {
		a.diags.Add(diag.ErrArgCountMismatch, n.Span(), "expected %d arguments, got %d", len(calleeT.Params), len(argTypes))
	} else {
		for i, pt := range calleeT.Params {
			if !types.AssignableTo(argTypes[i], pt) {
				a.diags.Add(diag.ErrArgTypeMismatch, n.Args[i].Span(), "argument %d: cannot use %s as %s", i+1, argTypes[i], pt)
			}
		}
	}
	return a.set(n, *calleeT.Ret)
}

// analyzeBuiltinCall type-checks one of the global functions spec.md §4.3
// intercepts ahead of ordinary name resolution.
func (a *Analyzer) analyzeBuiltinCall(n *ast.CallExpr, name string, s *scope) types.Type {
	argTypes := make([]types.Type, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i] = a.analyzeExpr(arg, s)
	}

	arity := func(want int) bool {
		if len(argTypes) != want {
			a.diags.Add(diag.ErrArgCountMismatch, n.Span(), "%s expects %d arguments, got %d", name, want, len(argTypes))
			return false
		}
		return true
	}

	switch name {
	case "len":
		if arity(1) {
			t := argTypes[0]
			ok := t.IsAny() || (t.Family == types.FPrimitive && t.Prim == types.Str) || t.Family == types.FList || t.Family == types.FDict
			if !ok {
				a.diags.Add(diag.ErrArgTypeMismatch, n.Args[0].Span(), "len argument must be str, list, or dict, got %s", t)
			}
		}
		return a.set(n, types.TInt)
	case "push":
		if arity(2) {
			recv := argTypes[0]
			if recv.Family != types.FList && !recv.IsAny() {
				a.diags.Add(diag.ErrArgTypeMismatch, n.Args[0].Span(), "push argument 1 must be a list, got %s", recv)
			} else if recv.Family == types.FList && recv.Elem != nil && !types.AssignableTo(argTypes[1], *recv.Elem) {
				a.diags.Add(diag.ErrArgTypeMismatch, n.Args[1].Span(), "push argument 2: cannot use %s as %s", argTypes[1], *recv.Elem)
			}
		}
		return a.set(n, types.TVoid)
	case "keys", "values":
		if arity(1) {
			recv := argTypes[0]
			if recv.Family != types.FDict && !recv.IsAny() {
				a.diags.Add(diag.ErrArgTypeMismatch, n.Args[0].Span(), "%s argument must be a dict, got %s", name, recv)
				return a.set(n, types.NewList(types.TAny))
			}
			if recv.Family == types.FDict {
				if name == "keys" && recv.Key != nil {
					return a.set(n, types.NewList(*recv.Key))
				}
				if name == "values" && recv.Val != nil {
					return a.set(n, types.NewList(*recv.Val))
				}
			}
		}
		return a.set(n, types.NewList(types.TAny))
	case "input":
		if len(argTypes) > 1 {
			a.diags.Add(diag.ErrArgCountMismatch, n.Span(), "input expects 0 or 1 arguments, got %d", len(argTypes))
		} else if len(argTypes) == 1 && !(argTypes[0].Family == types.FPrimitive && argTypes[0].Prim == types.Str) && !argTypes[0].IsAny() {
			a.diags.Add(diag.ErrArgTypeMismatch, n.Args[0].Span(), "input argument must be str, got %s", argTypes[0])
		}
		return a.set(n, types.TStr)
	case "int", "float", "str", "bool":
		if arity(1) {
			if !types.IsPrintable(argTypes[0]) && !argTypes[0].IsAny() {
				a.diags.Add(diag.ErrArgTypeMismatch, n.Args[0].Span(), "%s argument must be a printable type, got %s", name, argTypes[0])
			}
		}
		switch name {
		case "int":
			return a.set(n, types.TInt)
		case "float":
			return a.set(n, types.TFloat)
		case "str":
			return a.set(n, types.TStr)
		default:
			return a.set(n, types.TBool)
		}
	}
	return a.set(n, types.TAny)
}

func (a *Analyzer) analyzeIndex(n *ast.IndexExpr, s *scope) types.Type {
	recvT := a.analyzeExpr(n.Receiver, s)
	idxT := a.analyzeExpr(n.Index, s)
	switch recvT.Family {
	case types.FList:
		if !(idxT.Family == types.FPrimitive && idxT.Prim == types.Int) && !idxT.IsAny() {
			a.diags.Add(diag.ErrTypeMismatch, n.Index.Span(), "list index must be int, got %s", idxT)
		}
		return a.set(n, *recvT.Elem)
	case types.FDict:
		if !types.AssignableTo(idxT, *recvT.Key) {
			a.diags.Add(diag.ErrTypeMismatch, n.Index.Span(), "dict key must be %s, got %s", *recvT.Key, idxT)
		}
		return a.set(n, *recvT.Val)
	case types.FPrimitive:
		if recvT.IsAny() {
			return a.set(n, types.TAny)
		}
	}
	a.diags.Add(diag.ErrTypeMismatch, n.Receiver.Span(), "cannot index into %s", recvT)
	return a.set(n, types.TAny)
}

func (a *Analyzer) analyzeStructInit(n *ast.StructInit, s *scope) types.Type {
	decl, ok := a.structs[n.TypeName]
	if !ok {
		a.diags.Add(diag.ErrUnknownType, n.Span(), "unknown struct %q", n.TypeName)
		return a.set(n, types.TAny)
	}
	fieldTypes := make(map[string]types.Type, len(decl.Fields))
	for _, f := range decl.Fields {
		fieldTypes[f.Name] = a.resolveType(f.AnnType)
	}
	seen := make(map[string]bool, len(n.Fields))
	for _, fi := range n.Fields {
		ft, known := fieldTypes[fi.Name]
		valT := a.analyzeExpr(fi.Value, s)
		if !known {
			a.diags.Add(diag.ErrUnknownStructField, fi.Value.Span(), "struct %q has no field %q", n.TypeName, fi.Name)
			continue
		}
		seen[fi.Name] = true
		if !types.AssignableTo(valT, ft) {
			a.diags.Add(diag.ErrTypeMismatch, fi.Value.Span(), "field %q: cannot assign %s to %s", fi.Name, valT, ft)
		}
	}
	for _, f := range decl.Fields {
		if !seen[f.Name] {
			a.diags.Add(diag.ErrMissingStructField, n.Span(), "struct %q is missing field %q", n.TypeName, f.Name)
		}
	}
	if len(n.Fields) > len(decl.Fields) {
		a.diags.Add(diag.ErrExtraStructField, n.Span(), "struct %q initializer has extra fields", n.TypeName)
	}
	return a.set(n, types.NewStruct(n.TypeName))
}

// analyzeMember resolves `a.b`: an enum-variant access when the receiver is
// a bare identifier naming a declared enum, otherwise a struct field
// access, otherwise an opaque module member. Quasar's grammar produces the
// same MemberExpr node for both shapes (spec.md §4.2's disambiguation rule
// defers the enum-vs-field decision to analysis); rather than splicing in a
// replacement node, EnumName.Field stays a MemberExpr whose Type() is the
// enum and whose Receiver is never independently typed — the emitter
// recognizes the identical "receiver names a declared enum" shape to
// render it as Python attribute access.
func (a *Analyzer) analyzeMember(n *ast.MemberExpr, s *scope) types.Type {
	if id, ok := n.Receiver.(*ast.Ident); ok {
		if _, isEnum := a.enums[id.Name]; isEnum {
			return a.analyzeEnumVariant(n, id.Name)
		}
	}
	recvT := a.analyzeExpr(n.Receiver, s)
	switch recvT.Family {
	case types.FStruct:
		decl := a.structs[recvT.Name]
		for _, f := range decl.Fields {
			if f.Name == n.Field {
				return a.set(n, a.resolveType(f.AnnType))
			}
		}
		a.diags.Add(diag.ErrUnknownStructField, n.Span(), "struct %q has no field %q", recvT.Name, n.Field)
		return a.set(n, types.TAny)
	case types.FModule:
		return a.set(n, types.TAny)
	}
	if recvT.IsAny() {
		return a.set(n, types.TAny)
	}
	a.diags.Add(diag.ErrUnknownStructField, n.Span(), "%s has no member %q", recvT, n.Field)
	return a.set(n, types.TAny)
}

func (a *Analyzer) analyzeEnumVariant(n *ast.MemberExpr, enumName string) types.Type {
	decl := a.enums[enumName]
	found := false
	for _, v := range decl.Variants {
		if v == n.Field {
			found = true
			break
		}
	}
	if !found {
		a.diags.Add(diag.ErrUnknownVariant, n.Span(), "enum %q has no variant %q", enumName, n.Field)
	}
	return a.set(n, types.NewEnum(enumName))
}
