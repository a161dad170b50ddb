package ast

// FunctionDecl represents `def name(params) -> ret: body` (IsAsync for
// `async def`, which the analyzer treats identically — spec §4.4, §9).
type FunctionDecl struct {
	Span       Span
	Name       string
	Parameters []NodeID // ParameterIdent
	ReturnType NodeID   // a Type node, or PlaceholderNodeID if unannotated
	Body       []NodeID // Statement
	Decorators []NodeID // Expression
	IsAsync    bool
}

func (d *FunctionDecl) NodeKind() Kind { return KindDeclaration }
func (d *FunctionDecl) NodeSpan() Span { return d.Span }
func (d *FunctionDecl) Children() []NodeID {
	children := make([]NodeID, 0, len(d.Decorators)+len(d.Parameters)+1+len(d.Body))
	children = append(children, d.Decorators...)
	children = append(children, d.Parameters...)
	if !d.ReturnType.IsPlaceholder() {
		children = append(children, d.ReturnType)
	}
	children = append(children, d.Body...)
	return children
}

// ClassDecl represents `class Name(bases): body`.
type ClassDecl struct {
	Span  Span
	Name  string
	Bases []NodeID // Expression
	Body  []NodeID // Declaration | Statement
}

func (d *ClassDecl) NodeKind() Kind { return KindDeclaration }
func (d *ClassDecl) NodeSpan() Span { return d.Span }
func (d *ClassDecl) Children() []NodeID {
	children := make([]NodeID, 0, len(d.Bases)+len(d.Body))
	children = append(children, d.Bases...)
	children = append(children, d.Body...)
	return children
}

// VariableDecl represents an annotated binding: `x: Int` or `x: Int = 1`.
// Per spec §4.4 it is marked "defined" by the collector only when Value is
// set.
type VariableDecl struct {
	Span           Span
	Name           string
	TypeAnnotation NodeID // Type, or PlaceholderNodeID if absent
	Value          NodeID // Expression, or PlaceholderNodeID if absent
}

func (d *VariableDecl) NodeKind() Kind { return KindDeclaration }
func (d *VariableDecl) NodeSpan() Span { return d.Span }
func (d *VariableDecl) HasValue() bool { return !d.Value.IsPlaceholder() }
func (d *VariableDecl) Children() []NodeID {
	var children []NodeID
	if !d.TypeAnnotation.IsPlaceholder() {
		children = append(children, d.TypeAnnotation)
	}
	if d.HasValue() {
		children = append(children, d.Value)
	}
	return children
}

// TypeDecl represents a type alias: `type Name = <type expr>`.
type TypeDecl struct {
	Span  Span
	Name  string
	Value NodeID // Type
}

func (d *TypeDecl) NodeKind() Kind     { return KindDeclaration }
func (d *TypeDecl) NodeSpan() Span     { return d.Span }
func (d *TypeDecl) Children() []NodeID { return []NodeID{d.Value} }
