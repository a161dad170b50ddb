// Package ast defines the arena-allocated abstract syntax tree produced by
// an external lexer/parser and consumed by the semantic analysis passes in
// internal/analyzer and internal/cfg.
package ast

import "fmt"

// Span is a byte-offset range into the owning source file, keyed by the
// file path an embedder associates with the tree (the arena itself is
// single-file; multi-file correlation is the embedder's concern).
type Span struct {
	Start uint32
	End   uint32
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// Zero reports whether the span carries no position information, as for
// synthesized nodes that have no corresponding source text.
func (s Span) Zero() bool {
	return s.Start == 0 && s.End == 0
}
