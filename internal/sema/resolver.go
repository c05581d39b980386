package sema

import "github.com/oxhq/quasar/internal/ast"

// ModuleInfo is the public surface of a resolved import: what declarations
// an importer may reference through the module's namespace. An opaque
// Python module (spec.md §4.3 "import resolution") resolves to a
// ModuleInfo with Opaque set and no declarations, so every member access on
// it types as Any.
type ModuleInfo struct {
	Opaque  bool
	Structs map[string]*ast.StructDecl
	Enums   map[string]*ast.EnumDecl
	Funcs   map[string]*ast.FuncDecl
}

// ImportResolver resolves an import's path or module name to the module it
// names. The compiler package supplies the concrete implementation: local
// ".qsr" paths are read, lexed, parsed, and recursively analyzed; bare
// identifiers resolve to an opaque Python module. A resolver tracks its own
// in-flight path stack so it can report circular imports as err rather than
// recursing forever.
type ImportResolver interface {
	Resolve(path string, isLocal bool) (*ModuleInfo, error)
}
