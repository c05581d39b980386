// Package compiler wires the four pipeline stages — lex, parse, analyze,
// emit — into one facade, and supplies the concrete ImportResolver that
// recursively compiles local ".qsr" files.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oxhq/quasar/internal/diag"
	"github.com/oxhq/quasar/internal/emit"
	"github.com/oxhq/quasar/internal/lexer"
	"github.com/oxhq/quasar/internal/parser"
	"github.com/oxhq/quasar/internal/sema"
)

// Result is the outcome of compiling a single source file: either Python
// source with no diagnostics, or diagnostics with no source — spec.md §2
// never emits a partial output for a stage that reported errors.
type Result struct {
	Python      string
	Diagnostics []diag.Diagnostic
}

// Compile reads path, runs it through lex → parse → analyze → emit, and
// returns the emitted Python source or the accumulated diagnostics.
func Compile(path string) Result {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{Diagnostics: []diag.Diagnostic{{
			Code:    diag.ErrFileNotFound,
			Message: fmt.Sprintf("cannot read %s: %v", path, err),
		}}}
	}
	return CompileSource(path, string(src))
}

// CompileSource compiles already-loaded source text attributed to file.
func CompileSource(file, src string) Result {
	prog, diags := parser.Parse(file, src)
	if diags.HasErrors() {
		return Result{Diagnostics: diags.Items()}
	}

	resolver := newFileResolver(filepath.Dir(file))
	semaDiags := sema.Analyze(prog, resolver)
	if semaDiags.HasErrors() {
		return Result{Diagnostics: semaDiags.Items()}
	}

	return Result{Python: emit.Emit(prog)}
}

// StageDiagnostics groups one stage's diagnostics, for quasarc check's
// per-stage reporting (SPEC_FULL.md §C.2).
type StageDiagnostics struct {
	Stage       string
	Diagnostics []diag.Diagnostic
}

// Check runs lex, parse, and analyze (never emit) and returns whatever
// diagnostics each stage produced, grouped by stage. An empty result
// means the file is well-formed and well-typed.
func Check(path string) ([]StageDiagnostics, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var groups []StageDiagnostics

	_, lexDiags := lexer.Lex(path, string(src))
	if lexDiags.HasErrors() {
		groups = append(groups, StageDiagnostics{Stage: "lex", Diagnostics: lexDiags.Items()})
		return groups, nil
	}

	prog, parseDiags := parser.Parse(path, string(src))
	if parseDiags.HasErrors() {
		groups = append(groups, StageDiagnostics{Stage: "parse", Diagnostics: parseDiags.Items()})
		return groups, nil
	}

	resolver := newFileResolver(filepath.Dir(path))
	semaDiags := sema.Analyze(prog, resolver)
	if semaDiags.HasErrors() {
		groups = append(groups, StageDiagnostics{Stage: "semantic", Diagnostics: semaDiags.Items()})
	}
	return groups, nil
}

// fileResolver implements sema.ImportResolver over the local filesystem,
// recursively compiling imported ".qsr" files and tracking an in-flight
// path stack so a re-entrant import is reported rather than looping
// forever (spec.md §5, SPEC_FULL.md §C.1).
type fileResolver struct {
	baseDir   string
	inFlight  map[string]bool
	compiled  map[string]*sema.ModuleInfo
}

func newFileResolver(baseDir string) *fileResolver {
	return &fileResolver{
		baseDir:  baseDir,
		inFlight: make(map[string]bool),
		compiled: make(map[string]*sema.ModuleInfo),
	}
}

func (r *fileResolver) Resolve(path string, isLocal bool) (*sema.ModuleInfo, error) {
	if !isLocal {
		// External Python module: no source to load; it binds as an opaque
		// module whose members all type as Any.
		return &sema.ModuleInfo{Opaque: true}, nil
	}

	abs := filepath.Join(r.baseDir, path)
	abs, err := filepath.Abs(abs)
	if err != nil {
		return nil, err
	}
	if mod, ok := r.compiled[abs]; ok {
		return mod, nil
	}
	if r.inFlight[abs] {
		return nil, fmt.Errorf("circular import: %s", path)
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	r.inFlight[abs] = true
	defer delete(r.inFlight, abs)

	prog, diags := parser.Parse(abs, string(src))
	if diags.HasErrors() {
		return nil, fmt.Errorf("import %q failed to parse", path)
	}

	sub := newFileResolver(filepath.Dir(abs))
	sub.inFlight = r.inFlight // share the cycle-detection stack across nested imports
	modInfo, modDiags := sema.AnalyzeModule(prog, sub)
	// A cycle detected further down the import chain is passed up as an
	// error so the importing file reports it too.
	for _, d := range modDiags.Items() {
		if d.Code == diag.ErrCircularImport {
			return nil, fmt.Errorf("circular import through %s", path)
		}
	}

	r.compiled[abs] = modInfo
	return modInfo, nil
}
