// Package sema implements Quasar's semantic analyzer (spec.md §4.3): a
// single mutable analyzer context walks the tree once, resolving names,
// checking types against the closed type universe, and annotating every
// expression node with its resolved type in place — no visitor interfaces,
// just exhaustive Go type switches over the closed ast node set (spec.md §9
// "Design Notes").
package sema

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/oxhq/quasar/internal/ast"
	"github.com/oxhq/quasar/internal/diag"
	"github.com/oxhq/quasar/internal/token"
	"github.com/oxhq/quasar/internal/types"
)

// Analyzer is the single mutable context threaded through analysis. One
// Analyzer handles exactly one compilation unit (a file plus whatever
// local imports it pulls in through Resolver).
type Analyzer struct {
	file     string
	diags    diag.Bag
	resolver ImportResolver

	structs map[string]*ast.StructDecl
	enums   map[string]*ast.EnumDecl
	funcs   map[string]*ast.FuncDecl
	modules map[string]*ModuleInfo

	globals *scope

	currentRet *types.Type
	loopDepth  int
}

// Analyze type-checks prog in place and returns the accumulated
// diagnostics. An empty Bag means prog is well-typed.
func Analyze(prog *ast.Program, resolver ImportResolver) diag.Bag {
	a := newAnalyzer(prog, resolver)
	a.collectDecls(prog)
	a.analyzeImports(prog)
	a.analyzeBodies(prog)
	return a.diags
}

// AnalyzeModule type-checks prog the same way Analyze does, but also
// returns the resulting struct/enum/function registry as a ModuleInfo so
// the importing compilation unit can bind it as a local module (spec.md
// §5, SPEC_FULL.md §C.1).
func AnalyzeModule(prog *ast.Program, resolver ImportResolver) (*ModuleInfo, diag.Bag) {
	a := newAnalyzer(prog, resolver)
	a.collectDecls(prog)
	a.analyzeImports(prog)
	a.analyzeBodies(prog)
	return &ModuleInfo{
		Structs: a.structs,
		Enums:   a.enums,
		Funcs:   a.funcs,
	}, a.diags
}

func newAnalyzer(prog *ast.Program, resolver ImportResolver) *Analyzer {
	return &Analyzer{
		file:     prog.File,
		resolver: resolver,
		structs:  make(map[string]*ast.StructDecl),
		enums:    make(map[string]*ast.EnumDecl),
		funcs:    make(map[string]*ast.FuncDecl),
		modules:  make(map[string]*ModuleInfo),
		globals:  newScope(nil),
	}
}

// collectDecls registers every top-level struct/enum/function name before
// any body is type-checked, so forward references between declarations
// resolve regardless of source order.
func (a *Analyzer) collectDecls(prog *ast.Program) {
	for _, item := range prog.Items {
		switch d := item.Decl.(type) {
		case *ast.StructDecl:
			if _, dup := a.structs[d.Name]; dup {
				a.diags.Add(diag.ErrDuplicateDecl, d.Span(), "struct %q already declared", d.Name)
				continue
			}
			if _, dup := a.enums[d.Name]; dup {
				a.diags.Add(diag.ErrEnumNameConflict, d.Span(), "%q already declared as an enum", d.Name)
				continue
			}
			a.structs[d.Name] = d
		case *ast.EnumDecl:
			if _, dup := a.enums[d.Name]; dup {
				a.diags.Add(diag.ErrDuplicateDecl, d.Span(), "enum %q already declared", d.Name)
				continue
			}
			if _, dup := a.structs[d.Name]; dup {
				a.diags.Add(diag.ErrEnumNameConflict, d.Span(), "%q already declared as a struct", d.Name)
				continue
			}
			seen := make(map[string]bool, len(d.Variants))
			for _, v := range d.Variants {
				if seen[v] {
					a.diags.Add(diag.ErrDuplicateVariant, d.Span(), "duplicate variant %q in enum %q", v, d.Name)
				}
				seen[v] = true
			}
			a.enums[d.Name] = d
		case *ast.FuncDecl:
			if _, dup := a.funcs[d.Name]; dup {
				a.diags.Add(diag.ErrDuplicateDecl, d.Span(), "function %q already declared", d.Name)
				continue
			}
			a.funcs[d.Name] = d
		}
	}
	for name, d := range a.funcs {
		params := make([]types.Type, len(d.Params))
		for i, p := range d.Params {
			params[i] = a.resolveType(p.AnnType)
		}
		ret := a.resolveType(d.RetType)
		a.globals.define(name, types.NewFunction(params, ret), true)
	}
}

// analyzeImports type-checks import declarations and binds the resulting
// module namespace into scope. A missing local file is reported as E0901;
// any other local resolution failure, such as a circular import, as E0902.
// Either way the import is bound as an empty opaque module rather than
// aborting the rest of analysis (spec.md's supplemented non-fatal
// circular-import behavior).
func (a *Analyzer) analyzeImports(prog *ast.Program) {
	seenPaths := make(map[string]bool)
	for _, item := range prog.Items {
		imp, ok := item.Decl.(*ast.ImportDecl)
		if !ok {
			continue
		}
		key := imp.Path
		bindName := imp.ModuleName
		if imp.IsLocal {
			bindName = localModuleName(imp.Path)
		}
		if seenPaths[key+bindName] {
			a.diags.Add(diag.ErrDuplicateImport, imp.Span(), "module %q imported more than once", bindName)
			continue
		}
		seenPaths[key+bindName] = true

		info, err := a.resolver.Resolve(imp.Path, imp.IsLocal)
		if err != nil {
			switch {
			case !imp.IsLocal:
				a.diags.Add(diag.ErrImportNotFound, imp.Span(), "module %q not found", imp.ModuleName)
			case errors.Is(err, fs.ErrNotExist):
				a.diags.Add(diag.ErrImportNotFound, imp.Span(), "import of %q: file not found", imp.Path)
			default:
				a.diags.Add(diag.ErrCircularImport, imp.Span(), "import of %q: %s", imp.Path, err)
			}
			info = &ModuleInfo{Opaque: true}
		}
		a.modules[bindName] = info
		a.globals.define(bindName, types.NewModule(bindName), true)
	}
}

func localModuleName(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".qsr")
	return base
}

// analyzeBodies type-checks every top-level statement and function body.
func (a *Analyzer) analyzeBodies(prog *ast.Program) {
	for _, item := range prog.Items {
		switch d := item.Decl.(type) {
		case *ast.VarDecl:
			a.analyzeVarDecl(d, a.globals)
		case *ast.FuncDecl:
			a.analyzeFuncDecl(d)
		case *ast.StructDecl:
			for _, f := range d.Fields {
				a.resolveType(f.AnnType)
			}
		}
		if item.Stmt != nil {
			a.analyzeStmt(item.Stmt, a.globals)
		}
	}
}

func (a *Analyzer) analyzeFuncDecl(d *ast.FuncDecl) {
	fnScope := newScope(a.globals)
	for _, p := range d.Params {
		fnScope.define(p.Name, a.resolveType(p.AnnType), false)
	}
	ret := a.resolveType(d.RetType)
	prevRet := a.currentRet
	a.currentRet = &ret
	a.analyzeBlockIn(d.Body, fnScope)
	a.currentRet = prevRet

	if !(ret.Family == types.FPrimitive && ret.Prim == types.Void) {
		if !returnsOnAllPaths(d.Body.Stmts) {
			a.diags.Add(diag.ErrMissingReturn, d.Span(), "function %q does not return on all paths", d.Name)
		}
	}
}

// returnsOnAllPaths is a conservative syntactic walk (spec.md §4.3): it
// never executes the program, only asks whether every syntactic path
// through stmts ends in a return statement.
func returnsOnAllPaths(stmts []ast.Stmt) bool {
	for _, st := range stmts {
		switch s := st.(type) {
		case *ast.ReturnStmt:
			return true
		case *ast.IfStmt:
			if s.Else != nil && returnsOnAllPaths(s.Then.Stmts) && returnsOnAllPaths(s.Else.Stmts) {
				return true
			}
		case *ast.Block:
			if returnsOnAllPaths(s.Stmts) {
				return true
			}
		}
	}
	return false
}

func (a *Analyzer) analyzeVarDecl(d *ast.VarDecl, s *scope) {
	if s.declaredHere(d.Name) {
		a.diags.Add(diag.ErrDuplicateDecl, d.Span(), "%q already declared in this scope", d.Name)
	}
	declared := a.resolveType(d.AnnType)
	initType := a.analyzeExpr(d.Init, s)

	if lit, ok := d.Init.(*ast.ListLit); ok && len(lit.Elems) == 0 {
		// Open question decision: an empty list literal is only valid when
		// bound to an explicitly annotated List type (spec.md's binding
		// already required an annotation here, so this just confirms shape).
		if declared.Family != types.FList {
			a.diags.Add(diag.ErrTypeMismatch, d.Span(), "empty list literal requires a List-typed binding")
		}
	} else if !types.AssignableTo(initType, declared) {
		a.diags.Add(diag.ErrTypeMismatch, d.Span(), "cannot assign %s to %s", initType, declared)
	}
	s.define(d.Name, declared, d.Const)
}

func (a *Analyzer) analyzeBlockIn(b *ast.Block, s *scope) {
	for _, st := range b.Stmts {
		a.analyzeStmt(st, s)
	}
}

func (a *Analyzer) analyzeBlock(b *ast.Block, parent *scope) {
	a.analyzeBlockIn(b, newScope(parent))
}

func (a *Analyzer) analyzeStmt(st ast.Stmt, s *scope) {
	switch n := st.(type) {
	case *ast.ExprStmt:
		a.analyzeExpr(n.X, s)
	case *ast.PrintStmt:
		a.analyzePrint(n, s)
	case *ast.AssignStmt:
		a.analyzeAssign(n, s)
	case *ast.IfStmt:
		a.requireBool(a.analyzeExpr(n.Cond, s), n.Cond.Span())
		a.analyzeBlock(n.Then, s)
		if n.Else != nil {
			a.analyzeBlock(n.Else, s)
		}
	case *ast.WhileStmt:
		a.requireBool(a.analyzeExpr(n.Cond, s), n.Cond.Span())
		a.loopDepth++

		a.analyzeBlock(n.Body, s)
		a.loopDepth--
	case *ast.ForStmt:
		iterType := a.analyzeExpr(n.Iter, s)
		elem := types.TAny
		switch {
		case iterType.Family == types.FList:
			elem = *iterType.Elem
		case iterType.IsAny():
			elem = types.TAny
		default:
			a.diags.Add(diag.ErrBadIterable, n.Iter.Span(), "cannot iterate over %s", iterType)
		}
		loopScope := newScope(s)
		loopScope.define(n.Var, elem, false)
		a.loopDepth++
		a.analyzeBlockIn(n.Body, newScope(loopScope))
		a.loopDepth--
	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.diags.Add(diag.ErrBreakOutsideLoop, n.Span(), "break outside of a loop")
		}
	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.diags.Add(diag.ErrContinueOutsideLoop, n.Span(), "continue outside of a loop")
		}
	case *ast.ReturnStmt:
		if a.currentRet == nil {
			a.diags.Add(diag.ErrReturnOutsideFunc, n.Span(), "return outside of a function")
			a.analyzeExpr(n.Value, s)
			return
		}
		valType := a.analyzeExpr(n.Value, s)
		if !types.AssignableTo(valType, *a.currentRet) {
			a.diags.Add(diag.ErrTypeMismatch, n.Span(), "cannot return %s from a function declared to return %s", valType, *a.currentRet)
		}
	case *ast.Block:
		a.analyzeBlock(n, s)
	}
}

func (a *Analyzer) requireBool(t types.Type, sp token.Span) {
	if !(t.Family == types.FPrimitive && (t.Prim == types.Bool || t.Prim == types.Any)) {
		a.diags.Add(diag.ErrConditionNotBool, sp, "condition must be bool, got %s", t)
	}
}

func (a *Analyzer) analyzeAssign(n *ast.AssignStmt, s *scope) {
	if id, ok := n.Left.(*ast.Ident); ok {
		if sym, found := s.resolve(id.Name); found && sym.constant {
			a.diags.Add(diag.ErrTypeMismatch, n.Span(), "cannot assign to constant %q", id.Name)
		}
	}
	leftType := a.analyzeExpr(n.Left, s)
	rightType := a.analyzeExpr(n.Right, s)
	if !types.AssignableTo(rightType, leftType) {
		a.diags.Add(diag.ErrTypeMismatch, n.Span(), "cannot assign %s to %s", rightType, leftType)
	}
}

func (a *Analyzer) analyzePrint(n *ast.PrintStmt, s *scope) {
	if len(n.Args) == 0 {
		a.diags.Add(diag.ErrPrintNoArgs, n.Span(), "print requires at least one argument")
	}
	placeholders := 0
	for i, arg := range n.Args {
		t := a.analyzeExpr(arg, s)
		if i == 0 && n.FirstIsLiteral {
			if lit, ok := arg.(*ast.StringLit); ok {
				placeholders = countPlaceholders(lit.Lexeme)
			}
			continue
		}
		if !types.IsPrintable(t) {
			a.diags.Add(diag.ErrPrintArgType, arg.Span(), "cannot print a value of type %s", t)
		}
	}
	if n.FirstIsLiteral && placeholders > 0 {
		extra := len(n.Args) - 1
		if extra < placeholders {
			a.diags.Add(diag.ErrFormatTooFewArgs, n.Span(), "format string expects %d arguments, got %d", placeholders, extra)
		} else if extra > placeholders {
			a.diags.Add(diag.ErrFormatTooManyArgs, n.Span(), "format string expects %d arguments, got %d", placeholders, extra)
		}
	}
	if n.Sep != nil {
		if t := a.analyzeExpr(n.Sep, s); !(t.Family == types.FPrimitive && t.Prim == types.Str) {
			a.diags.Add(diag.ErrSepNotStr, n.Sep.Span(), "sep must be str, got %s", t)
		}
	}
	if n.End != nil {
		if t := a.analyzeExpr(n.End, s); !(t.Family == types.FPrimitive && t.Prim == types.Str) {
			a.diags.Add(diag.ErrEndNotStr, n.End.Span(), "end must be str, got %s", t)
		}
	}
}

// countPlaceholders scans a format-string lexeme for unescaped {} pairs.
// {{ and }} are literal-brace escapes and do not count (spec.md §4.3 print).
func countPlaceholders(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && s[i] == '{' && s[i+1] == '{':
			i++
		case i+1 < len(s) && s[i] == '}' && s[i+1] == '}':
			i++
		case i+1 < len(s) && s[i] == '{' && s[i+1] == '}':
			count++
			i++
		}
	}
	return count
}

func (a *Analyzer) resolveType(ta *ast.TypeAnnotation) types.Type {
	if ta == nil {
		return types.TVoid
	}
	switch {
	case ta.Primitive != "":
		switch ta.Primitive {
		case "int":
			return types.TInt
		case "float":
			return types.TFloat
		case "bool":
			return types.TBool
		case "str":
			return types.TStr
		}
		return types.TAny
	case ta.ListElem != nil:
		return types.NewList(a.resolveType(ta.ListElem))
	case ta.DictKey != nil:
		key := a.resolveType(ta.DictKey)
		val := a.resolveType(ta.DictVal)
		if !types.IsHashable(key) {
			a.diags.Add(diag.ErrBadDictKeyType, ta.Span(), "dict key type must be int, str, or bool, got %s", key)
		}
		return types.NewDict(key, val)
	case ta.Name != "":
		if _, ok := a.structs[ta.Name]; ok {
			return types.NewStruct(ta.Name)
		}
		if _, ok := a.enums[ta.Name]; ok {
			return types.NewEnum(ta.Name)
		}
		a.diags.Add(diag.ErrUnknownType, ta.Span(), "unknown type %q", ta.Name)
		return types.TAny
	}
	return types.TVoid
}

