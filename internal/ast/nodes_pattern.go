package ast

// WildcardPattern represents the placeholder target `_`, which binds
// nothing (spec §4.4: never introduces a symbol).
type WildcardPattern struct{ Span Span }

func (p *WildcardPattern) NodeKind() Kind     { return KindPattern }
func (p *WildcardPattern) NodeSpan() Span     { return p.Span }
func (p *WildcardPattern) Children() []NodeID { return nil }

// IdentifierPattern wraps a single bound name inside a destructuring
// target, e.g. the `a` in `(a, b) = pair`.
type IdentifierPattern struct {
	Span Span
	Name string
}

func (p *IdentifierPattern) NodeKind() Kind       { return KindPattern }
func (p *IdentifierPattern) NodeSpan() Span       { return p.Span }
func (p *IdentifierPattern) Children() []NodeID   { return nil }
func (p *IdentifierPattern) TokenLiteral() string { return p.Name }

// TuplePattern represents a destructuring target `(a, b, *rest)`. StarIndex
// is the index of an Elements entry preceded by `*` (collecting the
// remainder into a list), or -1 if none.
type TuplePattern struct {
	Span      Span
	Elements  []NodeID // Pattern
	StarIndex int
}

func (p *TuplePattern) NodeKind() Kind     { return KindPattern }
func (p *TuplePattern) NodeSpan() Span     { return p.Span }
func (p *TuplePattern) Children() []NodeID { return p.Elements }
