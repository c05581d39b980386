// Package emit renders a type-checked Quasar program as Python 3.10+
// source (spec.md §4.4): one deterministic tree walk, defensive full
// parenthesization of binary expressions so operator precedence never has
// to be re-derived by the reader, 4-space indentation, and `pass` for any
// block that would otherwise be empty.
package emit

import (
	"fmt"
	"strings"

	"github.com/oxhq/quasar/internal/ast"
)

type emitter struct {
	sb      strings.Builder
	indent  int
	structs map[string]*ast.StructDecl
	enums   map[string]*ast.EnumDecl

	needsDataclass bool
	needsEnum      bool
}

// Emit renders prog as a complete Python module. prog must already have
// passed semantic analysis: every expression node's Type() is resolved.
func Emit(prog *ast.Program) string {
	e := &emitter{structs: make(map[string]*ast.StructDecl), enums: make(map[string]*ast.EnumDecl)}
	for _, item := range prog.Items {
		switch d := item.Decl.(type) {
		case *ast.StructDecl:
			e.structs[d.Name] = d
			e.needsDataclass = true
		case *ast.EnumDecl:
			e.enums[d.Name] = d
			e.needsEnum = true
		}
	}

	for _, item := range prog.Items {
		if item.Decl != nil {
			e.emitDecl(item.Decl)
		} else {
			e.emitStmt(item.Stmt)
		}
	}
	body := e.sb.String()

	var header strings.Builder
	if e.needsDataclass {
		header.WriteString("from dataclasses import dataclass\n")
	}
	if e.needsEnum {
		header.WriteString("from enum import Enum, auto\n")
	}
	if e.needsDataclass || e.needsEnum {
		header.WriteString("\n")
	}
	header.WriteString(body)
	return header.String()
}

func (e *emitter) writeIndent() {
	e.sb.WriteString(strings.Repeat("    ", e.indent))
}

func (e *emitter) line(format string, args ...interface{}) {
	e.writeIndent()
	e.sb.WriteString(fmt.Sprintf(format, args...))
	e.sb.WriteString("\n")
}

func (e *emitter) emitDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.ImportDecl:
		e.emitImport(n)
	case *ast.VarDecl:
		e.line("%s = %s", n.Name, e.expr(n.Init))
	case *ast.FuncDecl:
		e.emitFunc(n)
	case *ast.StructDecl:
		e.emitStruct(n)
	case *ast.EnumDecl:
		e.emitEnum(n)
	}
}

func (e *emitter) emitImport(n *ast.ImportDecl) {
	if n.IsLocal {
		mod := strings.TrimSuffix(n.Path, ".qsr")
		mod = strings.TrimPrefix(mod, "./")
		mod = strings.ReplaceAll(mod, "/", ".")
		e.line("from %s import *", mod)
		return
	}
	e.line("import %s", n.ModuleName)
}

func (e *emitter) emitFunc(n *ast.FuncDecl) {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, pyType(p.AnnType))
	}
	ret := pyReturnType(n.RetType)
	e.line("def %s(%s)%s:", n.Name, strings.Join(params, ", "), ret)
	e.indent++
	e.emitStmts(n.Body.Stmts)
	e.indent--
	e.sb.WriteString("\n")
}

func (e *emitter) emitStruct(n *ast.StructDecl) {
	e.line("@dataclass")
	e.line("class %s:", n.Name)
	e.indent++
	if len(n.Fields) == 0 {
		e.line("pass")
	}
	for _, f := range n.Fields {
		e.line("%s: %s", f.Name, pyType(f.AnnType))
	}
	e.indent--
	e.sb.WriteString("\n")
}

func (e *emitter) emitEnum(n *ast.EnumDecl) {
	e.line("class %s(Enum):", n.Name)
	e.indent++
	if len(n.Variants) == 0 {
		e.line("pass")
	}
	for _, v := range n.Variants {
		e.line("%s = auto()", v)
	}
	e.indent--
	e.sb.WriteString("\n")
}

func (e *emitter) emitStmts(stmts []ast.Stmt) {
	if len(stmts) == 0 {
		e.line("pass")
		return
	}
	for _, s := range stmts {
		e.emitStmt(s)
	}
}

func (e *emitter) emitStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		e.line("%s", e.expr(n.X))
	case *ast.PrintStmt:
		e.emitPrint(n)
	case *ast.AssignStmt:
		e.line("%s = %s", e.expr(n.Left), e.expr(n.Right))
	case *ast.IfStmt:
		e.line("if %s:", e.expr(n.Cond))
		e.indent++
		e.emitStmts(n.Then.Stmts)
		e.indent--
		if n.Else != nil {
			e.line("else:")
			e.indent++
			e.emitStmts(n.Else.Stmts)
			e.indent--
		}
	case *ast.WhileStmt:
		e.line("while %s:", e.expr(n.Cond))
		e.indent++
		e.emitStmts(n.Body.Stmts)
		e.indent--
	case *ast.ForStmt:
		e.line("for %s in %s:", n.Var, e.expr(n.Iter))
		e.indent++
		e.emitStmts(n.Body.Stmts)
		e.indent--
	case *ast.BreakStmt:
		e.line("break")
	case *ast.ContinueStmt:
		e.line("continue")
	case *ast.ReturnStmt:
		if n.Value == nil {
			e.line("return")
		} else {
			e.line("return %s", e.expr(n.Value))
		}
	case *ast.Block:
		e.emitStmts(n.Stmts)
	}
}

func (e *emitter) emitPrint(n *ast.PrintStmt) {
	var args []string
	if n.FirstIsLiteral && len(n.Args) > 0 {
		lit := n.Args[0].(*ast.StringLit)
		if strings.Contains(lit.Lexeme, "{}") {
			rest := make([]string, len(n.Args)-1)
			for i, a := range n.Args[1:] {
				rest[i] = e.expr(a)
			}
			args = append(args, fmt.Sprintf("%s.format(%s)", pyStringLit(lit.Value), strings.Join(rest, ", ")))
		} else {
			for _, a := range n.Args {
				args = append(args, e.expr(a))
			}
		}
	} else {
		for _, a := range n.Args {
			args = append(args, e.expr(a))
		}
	}
	if n.Sep != nil {
		args = append(args, "sep="+e.expr(n.Sep))
	}
	if n.End != nil {
		args = append(args, "end="+e.expr(n.End))
	}
	e.line("print(%s)", strings.Join(args, ", "))
}

// expr renders an expression. Every binary expression is fully
// parenthesized regardless of precedence (spec.md §4.4): correctness over
// readability, since Quasar's own precedence has already been resolved by
// the time the tree reaches here.
func (e *emitter) expr(x ast.Expr) string {
	switch n := x.(type) {
	case *ast.IntLit:
		return fmt.Sprintf("%d", n.Value)
	case *ast.FloatLit:
		return formatFloat(n.Value)
	case *ast.BoolLit:
		if n.Value {
			return "True"
		}
		return "False"
	case *ast.StringLit:
		return pyStringLit(n.Value)
	case *ast.Ident:
		return n.Name
	case *ast.ListLit:
		elems := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = e.expr(el)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *ast.DictLit:
		entries := make([]string, len(n.Entries))
		for i, en := range n.Entries {
			entries[i] = fmt.Sprintf("%s: %s", e.expr(en.Key), e.expr(en.Value))
		}
		return "{" + strings.Join(entries, ", ") + "}"
	case *ast.RangeExpr:
		return fmt.Sprintf("range(%s, %s)", e.expr(n.Start), e.expr(n.End))
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.expr(n.Left), pyOp(n.Op), e.expr(n.Right))
	case *ast.UnaryExpr:
		if n.Op == ast.OpNot {
			return fmt.Sprintf("(not %s)", e.expr(n.Operand))
		}
		return fmt.Sprintf("(-%s)", e.expr(n.Operand))
	case *ast.CallExpr:
		return e.call(n)
	case *ast.MethodCallExpr:
		return e.methodCall(n)
	case *ast.MemberExpr:
		return e.member(n)
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", e.expr(n.Receiver), e.expr(n.Index))
	case *ast.StructInit:
		args := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			args[i] = fmt.Sprintf("%s=%s", f.Name, e.expr(f.Value))
		}
		return fmt.Sprintf("%s(%s)", n.TypeName, strings.Join(args, ", "))
	}
	return "None"
}

// call renders a global call expression. push/keys/values have no global
// Python equivalent of their own; the global and method forms of the same
// builtin emit identically (spec.md §4.4), so they're rewritten onto the
// same receiver-dotted shape the method-call path produces.
func (e *emitter) call(n *ast.CallExpr) string {
	if id, ok := n.Callee.(*ast.Ident); ok {
		switch id.Name {
		case "push":
			return fmt.Sprintf("%s.append(%s)", e.expr(n.Args[0]), e.expr(n.Args[1]))
		case "keys":
			return fmt.Sprintf("list(%s.keys())", e.expr(n.Args[0]))
		case "values":
			return fmt.Sprintf("list(%s.values())", e.expr(n.Args[0]))
		}
	}
	return fmt.Sprintf("%s(%s)", e.expr(n.Callee), e.exprList(n.Args))
}

func (e *emitter) exprList(xs []ast.Expr) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = e.expr(x)
	}
	return strings.Join(parts, ", ")
}

// member renders `a.b`: an Enum attribute when the receiver names a
// declared enum, otherwise a plain Python attribute access.
func (e *emitter) member(n *ast.MemberExpr) string {
	if id, ok := n.Receiver.(*ast.Ident); ok {
		if _, isEnum := e.enums[id.Name]; isEnum {
			return fmt.Sprintf("%s.%s", id.Name, n.Field)
		}
	}
	return fmt.Sprintf("%s.%s", e.expr(n.Receiver), n.Field)
}

var pyMethodNames = map[string]string{
	"upper": "upper", "lower": "lower", "trim": "strip",
	"trim_start": "lstrip", "trim_end": "rstrip",
	"split": "split", "replace": "replace",
	"starts_with": "startswith", "ends_with": "endswith",
	"push": "append", "pop": "pop",
	"keys": "keys", "values": "values", "get": "get",
	"reverse": "reverse", "clear": "clear",
}

func (e *emitter) methodCall(n *ast.MethodCallExpr) string {
	switch n.Method {
	case "len":
		return fmt.Sprintf("len(%s)", e.expr(n.Receiver))
	case "contains":
		return fmt.Sprintf("(%s in %s)", e.expr(n.Args[0]), e.expr(n.Receiver))
	case "has_key":
		return fmt.Sprintf("(%s in %s)", e.expr(n.Args[0]), e.expr(n.Receiver))
	case "join":
		return fmt.Sprintf("%s.join(%s)", e.expr(n.Args[0]), e.expr(n.Receiver))
	case "keys":
		return fmt.Sprintf("list(%s.keys())", e.expr(n.Receiver))
	case "values":
		return fmt.Sprintf("list(%s.values())", e.expr(n.Receiver))
	case "to_int":
		return fmt.Sprintf("int(%s)", e.expr(n.Receiver))
	case "to_float":
		return fmt.Sprintf("float(%s)", e.expr(n.Receiver))
	case "remove":
		return fmt.Sprintf("%s.pop(%s, None)", e.expr(n.Receiver), e.expr(n.Args[0]))
	}
	if py, ok := pyMethodNames[n.Method]; ok {
		return fmt.Sprintf("%s.%s(%s)", e.expr(n.Receiver), py, e.exprList(n.Args))
	}
	return fmt.Sprintf("%s.%s(%s)", e.expr(n.Receiver), n.Method, e.exprList(n.Args))
}

func pyOp(op ast.BinOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpEq:
		return "=="
	case ast.OpNeq:
		return "!="
	case ast.OpLt:
		return "<"
	case ast.OpGt:
		return ">"
	case ast.OpLe:
		return "<="
	case ast.OpGe:
		return ">="
	case ast.OpAnd:
		return "and"
	case ast.OpOr:
		return "or"
	}
	return "?"
}

func pyStringLit(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func pyType(ta *ast.TypeAnnotation) string {
	switch {
	case ta.Primitive != "":
		switch ta.Primitive {
		case "int":
			return "int"
		case "float":
			return "float"
		case "bool":
			return "bool"
		case "str":
			return "str"
		}
		return "object"
	case ta.ListElem != nil:
		return fmt.Sprintf("list[%s]", pyType(ta.ListElem))
	case ta.DictKey != nil:
		return fmt.Sprintf("dict[%s, %s]", pyType(ta.DictKey), pyType(ta.DictVal))
	case ta.Name != "":
		return ta.Name
	}
	return "object"
}

func pyReturnType(ta *ast.TypeAnnotation) string {
	if ta == nil || ta.Name == "void" || ta.Primitive == "" && ta.ListElem == nil && ta.DictKey == nil && ta.Name == "" {
		return ""
	}
	return " -> " + pyType(ta)
}
