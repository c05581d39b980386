// Package diag defines Quasar's diagnostic payload and the accumulating
// collector every pipeline stage reports through. The shape mirrors the
// teacher's uniform CLIError{Code, Message, Detail}: a stable code plus a
// human message, here additionally pinned to a source span.
package diag

import (
	"encoding/json"
	"fmt"

	"github.com/oxhq/quasar/internal/token"
)

// Code ranges are append-only; a code, once shipped, is never reused for a
// different diagnostic (spec.md §6).
type Code string

const (
	// E0000-E0099: scope/identifier.
	ErrUnrecognizedChar    Code = "E0000"
	ErrUnterminatedString  Code = "E0001"
	ErrDuplicateDecl       Code = "E0002"

	// E0100-E0199: type errors.
	ErrTypeMismatch     Code = "E0100"
	ErrConditionNotBool Code = "E0101"
	ErrMixedArithmetic  Code = "E0102"
	ErrBadOrdering      Code = "E0103"
	ErrBadLogical       Code = "E0104"

	// E0200-E0299: control flow.
	ErrBreakOutsideLoop    Code = "E0200"
	ErrContinueOutsideLoop Code = "E0201"

	// E0300-E0399: return paths.
	ErrMissingReturn     Code = "E0303"
	ErrReturnOutsideFunc Code = "E0304"

	// E0400-E0499: print/format strings.
	ErrPrintArgType     Code = "E0401"
	ErrSepNotStr        Code = "E0402"
	ErrEndNotStr        Code = "E0403"
	ErrPrintNoArgs      Code = "E0406"
	ErrFormatTooFewArgs Code = "E0410"
	ErrFormatTooManyArgs Code = "E0411"

	// E0500-E0599: lists and ranges.
	ErrHeterogeneousList Code = "E0500"
	ErrBadIterable       Code = "E0505"

	// E0600-E0699: input/casts (reserved, none emitted by the core yet).

	// E0800-E0899: structs.
	ErrUnknownStructField Code = "E0801"
	ErrMissingStructField Code = "E0802"
	ErrExtraStructField   Code = "E0803"

	// E0900-E0999: imports.
	ErrDuplicateImport Code = "E0900"
	ErrImportNotFound  Code = "E0901"
	ErrCircularImport  Code = "E0902"

	// E1000-E1099: dicts.
	ErrHeterogeneousDict Code = "E1000"
	ErrBadDictKeyType    Code = "E1001"

	// E1100-E1199: primitive methods.
	ErrGenericParamMismatch Code = "E1100"
	ErrJoinNotStrList       Code = "E1102"
	ErrUnknownMethod        Code = "E1105"
	ErrArgCountMismatch     Code = "E1106"
	ErrArgTypeMismatch      Code = "E1107"

	// E1200-E1299: enums.
	ErrEnumNameConflict Code = "E1200"
	ErrDuplicateVariant Code = "E1201"
	ErrUnknownVariant   Code = "E1202"
	ErrUnknownType      Code = "E1203"
	ErrEnumsIncomparable Code = "E1204"
	ErrEnumOrdering      Code = "E1205"

	// E1300-E1399: collaborator-facing (not raised by lex/parse/sema
	// themselves; used by the compiler facade and CLI for I/O-level
	// failures that still need a stable code for --json output).
	ErrFileNotFound Code = "E1300"
)

// Diagnostic is a structured error with a stable code, a message, and a
// span. It is produced eagerly and batched within a stage; the core never
// prints one (spec.md §6) — only a collaborator formats it.
type Diagnostic struct {
	Code    Code       `json:"code"`
	Message string     `json:"message"`
	Span    token.Span `json:"span"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Code, d.Message)
}

// JSON renders the diagnostic as a compact JSON object, for the CLI's
// --json output mode.
func (d Diagnostic) JSON() string {
	b, _ := json.Marshal(d)
	return string(b)
}

// Bag accumulates diagnostics for one pipeline stage. Each stage owns its
// own Bag; the pipeline halts at the first stage whose Bag is non-empty
// (spec.md §7).
type Bag struct {
	items []Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(code Code, span token.Span, format string, args ...interface{}) {
	b.items = append(b.items, Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	})
}

// Extend copies another bag's diagnostics into this one, preserving order.
// Used when a local-file import's analysis contributes diagnostics to the
// importing compilation.
func (b *Bag) Extend(other *Bag) {
	b.items = append(b.items, other.items...)
}

// HasErrors reports whether any diagnostic has been recorded.
func (b *Bag) HasErrors() bool {
	return len(b.items) > 0
}

// Items returns the accumulated diagnostics in the order they were added.
func (b *Bag) Items() []Diagnostic {
	return b.items
}
