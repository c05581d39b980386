// Package ast defines the Quasar syntax tree: three closed node families —
// expressions, statements, and declarations — each a marker interface over
// one struct per node shape. Semantic analysis walks over Go's type switch
// as the exhaustive-match discipline recommended for a target language
// without native sum types (spec.md §9 "Design Notes").
package ast

import (
	"github.com/oxhq/quasar/internal/token"
	"github.com/oxhq/quasar/internal/types"
)

// Node is implemented by every tree node.
type Node interface {
	Span() token.Span
}

// Expr is implemented by every expression node. After semantic analysis,
// Type() returns the expression's resolved type; before analysis it is the
// zero Type.
type Expr interface {
	Node
	exprNode()
	Type() types.Type
	SetType(types.Type)
	SetSpan(token.Span)
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
	SetSpan(token.Span)
}

// Decl is implemented by every top-level declaration node.
type Decl interface {
	Node
	declNode()
	SetSpan(token.Span)
}

// exprBase is embedded by every Expr implementation to carry the common
// span and post-analysis type annotation.
type exprBase struct {
	span     token.Span
	resolved types.Type
}

func (e *exprBase) Span() token.Span     { return e.span }
func (e *exprBase) Type() types.Type     { return e.resolved }
func (e *exprBase) SetType(t types.Type) { e.resolved = t }
func (e *exprBase) SetSpan(sp token.Span) { e.span = sp }

// stmtBase is embedded by every Stmt implementation to carry the common
// span; the parser sets it once the full statement has been consumed.
type stmtBase struct {
	span token.Span
}

func (s *stmtBase) Span() token.Span      { return s.span }
func (s *stmtBase) SetSpan(sp token.Span) { s.span = sp }

// declBase is embedded by every Decl implementation to carry the common
// span.
type declBase struct {
	span token.Span
}

func (d *declBase) Span() token.Span      { return d.span }
func (d *declBase) SetSpan(sp token.Span) { d.span = sp }

// ---- Expressions ----

type IntLit struct {
	exprBase
	Value int64
}

type FloatLit struct {
	exprBase
	Value float64
}

type StringLit struct {
	exprBase
	Value  string // unescaped text
	Lexeme string // original source lexeme, verbatim, for format-placeholder scanning
}

type BoolLit struct {
	exprBase
	Value bool
}

type Ident struct {
	exprBase
	Name string
}

type ListLit struct {
	exprBase
	Elems []Expr
}

type DictEntry struct {
	Key   Expr
	Value Expr
}

type DictLit struct {
	exprBase
	Entries []DictEntry
}

type RangeExpr struct {
	exprBase
	Start Expr
	End   Expr
}

// BinOp is one of the 13 binary operators in spec.md §4.3.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
)

type BinaryExpr struct {
	exprBase
	Op          BinOp
	Left, Right Expr
}

type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

type UnaryExpr struct {
	exprBase
	Op      UnaryOp
	Operand Expr
}

type CallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

type MethodCallExpr struct {
	exprBase
	Receiver Expr
	Method   string
	Args     []Expr
}

type MemberExpr struct {
	exprBase
	Receiver Expr
	Field    string
}

type IndexExpr struct {
	exprBase
	Receiver Expr
	Index    Expr
}

type FieldInit struct {
	Name  string
	Value Expr
}

type StructInit struct {
	exprBase
	TypeName string
	Fields   []FieldInit
}

func (*IntLit) exprNode()         {}
func (*FloatLit) exprNode()       {}
func (*StringLit) exprNode()      {}
func (*BoolLit) exprNode()        {}
func (*Ident) exprNode()          {}
func (*ListLit) exprNode()        {}
func (*DictLit) exprNode()        {}
func (*RangeExpr) exprNode()      {}
func (*BinaryExpr) exprNode()     {}
func (*UnaryExpr) exprNode()      {}
func (*CallExpr) exprNode()       {}
func (*MethodCallExpr) exprNode() {}
func (*MemberExpr) exprNode()     {}
func (*IndexExpr) exprNode()      {}
func (*StructInit) exprNode()     {}

func NewIntLit(v int64, sp token.Span) *IntLit       { return &IntLit{exprBase{span: sp}, v} }
func NewFloatLit(v float64, sp token.Span) *FloatLit  { return &FloatLit{exprBase{span: sp}, v} }
func NewBoolLit(v bool, sp token.Span) *BoolLit       { return &BoolLit{exprBase{span: sp}, v} }
func NewIdent(name string, sp token.Span) *Ident      { return &Ident{exprBase{span: sp}, name} }
func NewStringLit(val, lex string, sp token.Span) *StringLit {
	return &StringLit{exprBase{span: sp}, val, lex}
}

// ---- Statements ----

type ExprStmt struct {
	stmtBase
	X Expr
}

// PrintStmt models print(args..., sep=?, end=?). FirstIsLiteral records
// whether Args[0] is a string-literal node, which format-mode detection
// keys off of.
type PrintStmt struct {
	stmtBase
	Args           []Expr
	Sep            Expr // nil if absent
	End            Expr // nil if absent
	FirstIsLiteral bool
}

// AssignTarget is one of Ident, IndexExpr, or MemberExpr — enforced by the
// parser, never by the Go type system, matching the grammar's own
// restriction (spec.md §4.2 "Assignment").
type AssignStmt struct {
	stmtBase
	Left  Expr
	Right Expr
}

type IfStmt struct {
	stmtBase
	Cond Expr
	Then *Block
	Else *Block // nil if absent
}

type WhileStmt struct {
	stmtBase
	Cond Expr
	Body *Block
}

type ForStmt struct {
	stmtBase
	Var  string
	Iter Expr
	Body *Block
}

type BreakStmt struct{ stmtBase }
type ContinueStmt struct{ stmtBase }

type ReturnStmt struct {
	stmtBase
	Value Expr
}

// Block is a brace-delimited statement sequence. It is itself a Stmt so it
// can appear as a function body and as if/while/for bodies uniformly.
type Block struct {
	stmtBase
	Stmts []Stmt
}

func (*ExprStmt) stmtNode()     {}
func (*PrintStmt) stmtNode()    {}
func (*AssignStmt) stmtNode()   {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()   {}
func (*Block) stmtNode()        {}

func NewExprStmt(x Expr, sp token.Span) *ExprStmt {
	s := &ExprStmt{X: x}
	s.SetSpan(sp)
	return s
}

func NewBlock(stmts []Stmt, sp token.Span) *Block {
	b := &Block{Stmts: stmts}
	b.SetSpan(sp)
	return b
}

// ---- Declarations ----

// TypeAnnotation is the surface-syntax spelling of a type (spec.md §3): a
// bare primitive keyword, Dict[K, V], [T] for a list, or a bare identifier
// resolved later against the struct/enum registries.
type TypeAnnotation struct {
	span token.Span

	// Exactly one of the following describes this annotation's shape.
	Primitive string // "int", "float", "bool", "str" — empty if not primitive
	ListElem  *TypeAnnotation
	DictKey   *TypeAnnotation
	DictVal   *TypeAnnotation
	Name      string // bare identifier: struct or enum name
}

func (t *TypeAnnotation) Span() token.Span      { return t.span }
func (t *TypeAnnotation) SetSpan(sp token.Span) { t.span = sp }

type VarDecl struct {
	declBase
	Name    string
	AnnType *TypeAnnotation
	Init    Expr
	Const   bool
}

type Param struct {
	Name    string
	AnnType *TypeAnnotation
}

type FuncDecl struct {
	declBase
	Name    string
	Params  []Param
	RetType *TypeAnnotation
	Body    *Block
}

type StructField struct {
	Name    string
	AnnType *TypeAnnotation
}

type StructDecl struct {
	declBase
	Name   string
	Fields []StructField
}

type EnumDecl struct {
	declBase
	Name     string
	Variants []string
}

type ImportDecl struct {
	declBase
	ModuleName string // for `import ident`
	Path       string // for `import "./path.qsr"`, relative as written
	IsLocal    bool
}

func (*VarDecl) declNode()    {}
func (*FuncDecl) declNode()   {}
func (*StructDecl) declNode() {}
func (*EnumDecl) declNode()   {}
func (*ImportDecl) declNode() {}

// TopLevel is a declaration or a bare top-level statement — spec.md defines
// Program as "an ordered list of top-level declarations and statements".
type TopLevel struct {
	Decl Decl // nil if this element is a statement
	Stmt Stmt // nil if this element is a declaration
}

func (t TopLevel) Span() token.Span {
	if t.Decl != nil {
		return t.Decl.Span()
	}
	return t.Stmt.Span()
}

// Program is the root of the tree: an ordered list of top-level elements.
type Program struct {
	File  string
	Items []TopLevel
}
