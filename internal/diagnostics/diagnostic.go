// Package diagnostics defines the closed set of semantic diagnostics the
// analysis passes emit (spec §6) and the ordered bag every pass collects
// into (spec §7's "each pass collects into an ordered list").
package diagnostics

import (
	"fmt"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
)

// Level mirrors the severity tiers a pass can report at. Every diagnostic
// shape in this package is an Error; Warning/Info/Note exist so an embedder
// (the CLI, the report store) can uniformly format lower-priority notes
// alongside them without a second type hierarchy.
type Level int

const (
	Error Level = iota
	Warning
	Info
	Note
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Diagnostic is implemented by each of the eight shapes below. Message
// renders the human-readable text a CLI or LSP client shows; Level is
// always Error for the semantic diagnostics this analyzer produces.
type Diagnostic interface {
	Level() Level
	Span() ast.Span
	Message() string
	Kind() string
}

// UndefinedName: a variable expression has no symbol reachable by LEGB
// lookup from its enclosing scope.
type UndefinedName struct {
	Name     string
	Location ast.Span
}

func (d *UndefinedName) Level() Level   { return Error }
func (d *UndefinedName) Span() ast.Span { return d.Location }
func (d *UndefinedName) Kind() string   { return "UndefinedName" }

func (d *UndefinedName) Message() string { return fmt.Sprintf("undefined name %q", d.Name) }

// UseBeforeAssignment: a variable is read at a point the definite-assignment
// dataflow cannot prove it assigned on every path reaching that point.
type UseBeforeAssignment struct {
	Name     string
	Location ast.Span
}

func (d *UseBeforeAssignment) Level() Level   { return Error }
func (d *UseBeforeAssignment) Span() ast.Span { return d.Location }
func (d *UseBeforeAssignment) Kind() string   { return "UseBeforeAssignment" }

func (d *UseBeforeAssignment) Message() string {
	return fmt.Sprintf("%q used before assignment", d.Name)
}

// DuplicateSymbol: a name was defined twice in the same scope.
type DuplicateSymbol struct {
	Name         string
	Location     ast.Span
	PreviousSpan ast.Span
}

func (d *DuplicateSymbol) Level() Level   { return Error }
func (d *DuplicateSymbol) Span() ast.Span { return d.Location }
func (d *DuplicateSymbol) Kind() string   { return "DuplicateSymbol" }

func (d *DuplicateSymbol) Message() string {
	return fmt.Sprintf("%q is already defined at %s", d.Name, d.PreviousSpan)
}

// TypeMismatch: an expression's inferred type is not compatible with the
// type its context requires (assignment target, argument, subscript...).
type TypeMismatch struct {
	Expected string
	Found    string
	Location ast.Span
}

func (d *TypeMismatch) Level() Level   { return Error }
func (d *TypeMismatch) Span() ast.Span { return d.Location }
func (d *TypeMismatch) Kind() string   { return "TypeMismatch" }

func (d *TypeMismatch) Message() string {
	return fmt.Sprintf("expected type %s, found %s", d.Expected, d.Found)
}

// ReturnTypeMismatch: a function's return expression's type is not
// compatible with its declared return annotation.
type ReturnTypeMismatch struct {
	Expected string
	Found    string
	Location ast.Span
}

func (d *ReturnTypeMismatch) Level() Level   { return Error }
func (d *ReturnTypeMismatch) Span() ast.Span { return d.Location }
func (d *ReturnTypeMismatch) Kind() string   { return "ReturnTypeMismatch" }

func (d *ReturnTypeMismatch) Message() string {
	return fmt.Sprintf("function declared to return %s, but this returns %s", d.Expected, d.Found)
}

// AttributeError: an attribute/method lookup found no member of that name on
// the receiver's type.
type AttributeError struct {
	TypeName  string
	Attribute string
	Location  ast.Span
}

func (d *AttributeError) Level() Level   { return Error }
func (d *AttributeError) Span() ast.Span { return d.Location }
func (d *AttributeError) Kind() string   { return "AttributeError" }

func (d *AttributeError) Message() string {
	return fmt.Sprintf("%s has no attribute %q", d.TypeName, d.Attribute)
}

// InvalidOperator: a binary or unary operator has no defined meaning for its
// operand type(s).
type InvalidOperator struct {
	Op        string
	LeftType  string
	RightType string // "" for a unary operator
	Location  ast.Span
}

func (d *InvalidOperator) Level() Level   { return Error }
func (d *InvalidOperator) Span() ast.Span { return d.Location }
func (d *InvalidOperator) Kind() string   { return "InvalidOperator" }

func (d *InvalidOperator) Message() string {
	if d.RightType == "" {
		return fmt.Sprintf("operator %s is not defined for %s", d.Op, d.LeftType)
	}
	return fmt.Sprintf("operator %s is not defined between %s and %s", d.Op, d.LeftType, d.RightType)
}

// NotCallable: a call expression's callee has a type that cannot be invoked.
type NotCallable struct {
	TypeName string
	Location ast.Span
}

func (d *NotCallable) Level() Level   { return Error }
func (d *NotCallable) Span() ast.Span { return d.Location }
func (d *NotCallable) Kind() string   { return "NotCallable" }

func (d *NotCallable) Message() string {
	return fmt.Sprintf("%s is not callable", d.TypeName)
}
