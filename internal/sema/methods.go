package sema

import (
	"github.com/oxhq/quasar/internal/ast"
	"github.com/oxhq/quasar/internal/diag"
	"github.com/oxhq/quasar/internal/types"
)

// methodSig describes one primitive method's signature in terms of the
// receiver's own generic parameters (T for List's element, K/V for Dict's
// key/value) so one table entry covers every instantiation (spec.md §4.3
// "primitive method registry").
type methodSig struct {
	params []genericType
	ret    genericType
}

// genericType is either a concrete Type or one of the receiver-family
// placeholders, substituted against the actual receiver type at the call
// site.
type genericType struct {
	concrete *types.Type
	param    string // "T", "K", "V", or "" if concrete is set
}

func c(t types.Type) genericType  { return genericType{concrete: &t} }
func g(name string) genericType   { return genericType{param: name} }

var strMethods = map[string]methodSig{
	"len":         {nil, c(types.TInt)},
	"upper":       {nil, c(types.TStr)},
	"lower":       {nil, c(types.TStr)},
	"trim":        {nil, c(types.TStr)},
	"trim_start":  {nil, c(types.TStr)},
	"trim_end":    {nil, c(types.TStr)},
	"contains":    {[]genericType{c(types.TStr)}, c(types.TBool)},
	"split":       {[]genericType{c(types.TStr)}, g("[]str")},
	"replace":     {[]genericType{c(types.TStr), c(types.TStr)}, c(types.TStr)},
	"starts_with": {[]genericType{c(types.TStr)}, c(types.TBool)},
	"ends_with":   {[]genericType{c(types.TStr)}, c(types.TBool)},
	"to_int":      {nil, c(types.TInt)},
	"to_float":    {nil, c(types.TFloat)},
}

var listMethods = map[string]methodSig{
	"len":      {nil, c(types.TInt)},
	"push":     {[]genericType{g("T")}, g("void")},
	"pop":      {nil, g("T")},
	"contains": {[]genericType{g("T")}, c(types.TBool)},
	"join":     {[]genericType{c(types.TStr)}, c(types.TStr)}, // T must be str, checked separately
	"reverse":  {nil, g("void")},
	"clear":    {nil, g("void")},
}

var dictMethods = map[string]methodSig{
	"len":     {nil, c(types.TInt)},
	"keys":    {nil, g("[]K")},
	"values":  {nil, g("[]V")},
	"get":     {[]genericType{g("K"), g("V")}, g("V")},
	"has_key": {[]genericType{g("K")}, c(types.TBool)},
	"remove":  {[]genericType{g("K")}, g("void")},
	"clear":   {nil, g("void")},
}

// analyzeMethodCall looks up recv.method(args) against the method table for
// the receiver's family, substituting T/K/V against the receiver's actual
// element/key/value types.
func (a *Analyzer) analyzeMethodCall(n *ast.MethodCallExpr, s *scope) types.Type {
	recvT := a.analyzeExpr(n.Receiver, s)
	argTypes := make([]types.Type, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i] = a.analyzeExpr(arg, s)
	}
	if recvT.IsAny() || recvT.Family == types.FModule {
		return a.set(n, types.TAny)
	}

	var table map[string]methodSig
	var tParam, kParam, vParam *types.Type
	switch recvT.Family {
	case types.FPrimitive:
		if recvT.Prim == types.Str {
			table = strMethods
		}
	case types.FList:
		table = listMethods
		tParam = recvT.Elem
	case types.FDict:
		table = dictMethods
		kParam = recvT.Key
		vParam = recvT.Val
	}
	if table == nil {
		a.diags.Add(diag.ErrUnknownMethod, n.Span(), "%s has no methods", recvT)
		return a.set(n, types.TAny)
	}
	sig, ok := table[n.Method]
	if !ok {
		a.diags.Add(diag.ErrUnknownMethod, n.Span(), "%s has no method %q", recvT, n.Method)
		return a.set(n, types.TAny)
	}

	if recvT.Family == types.FList && n.Method == "join" {
		if recvT.Elem == nil || !(recvT.Elem.Family == types.FPrimitive && recvT.Elem.Prim == types.Str) {
			a.diags.Add(diag.ErrJoinNotStrList, n.Span(), "join requires a List[str] receiver, got %s", recvT)
		}
	}

	if len(argTypes) != len(sig.params) {
		a.diags.Add(diag.ErrArgCountMismatch, n.Span(), "%s.%s expects %d arguments, got %d", recvT, n.Method, len(sig.params), len(argTypes))
	} else {
		for i, p := range sig.params {
			want := substitute(p, tParam, kParam, vParam)
			if !types.AssignableTo(argTypes[i], want) {
				a.diags.Add(diag.ErrArgTypeMismatch, n.Args[i].Span(), "%s.%s argument %d: cannot use %s as %s", recvT, n.Method, i+1, argTypes[i], want)
			}
		}
	}

	return a.set(n, substituteList(sig.ret, recvT, tParam, kParam, vParam))
}

func substitute(g genericType, t, k, v *types.Type) types.Type {
	if g.concrete != nil {
		return *g.concrete
	}
	switch g.param {
	case "T":
		if t != nil {
			return *t
		}
	case "K":
		if k != nil {
			return *k
		}
	case "V":
		if v != nil {
			return *v
		}
	}
	return types.TAny
}

// substituteList additionally resolves the "[]T"-shaped placeholders used
// by split/keys/values, which return a list of the substituted type.
func substituteList(g genericType, recv types.Type, t, k, v *types.Type) types.Type {
	switch g.param {
	case "[]str":
		return types.NewList(types.TStr)
	case "[]K":
		if k != nil {
			return types.NewList(*k)
		}
	case "[]V":
		if v != nil {
			return types.NewList(*v)
		}
	case "void":
		return types.TVoid
	}
	return substitute(g, t, k, v)
}
