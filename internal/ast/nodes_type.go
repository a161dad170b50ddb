package ast

// NameType represents a bare named type reference, e.g. `Int` or `Foo`.
type NameType struct {
	Span Span
	Name string
}

func (t *NameType) NodeKind() Kind       { return KindType }
func (t *NameType) NodeSpan() Span       { return t.Span }
func (t *NameType) Children() []NodeID   { return nil }
func (t *NameType) TokenLiteral() string { return t.Name }

// GenericType represents a parameterized type, e.g. `List[Int]` or
// `Dict[Str, Int]`.
type GenericType struct {
	Span     Span
	Name     string
	TypeArgs []NodeID // Type
}

func (t *GenericType) NodeKind() Kind     { return KindType }
func (t *GenericType) NodeSpan() Span     { return t.Span }
func (t *GenericType) Children() []NodeID { return t.TypeArgs }

// UnionType represents `A | B | C`.
type UnionType struct {
	Span  Span
	Types []NodeID // Type
}

func (t *UnionType) NodeKind() Kind     { return KindType }
func (t *UnionType) NodeSpan() Span     { return t.Span }
func (t *UnionType) Children() []NodeID { return t.Types }

// OptionalType represents `T?`, sugar for `T | None`.
type OptionalType struct {
	Span Span
	Elem NodeID // Type
}

func (t *OptionalType) NodeKind() Kind     { return KindType }
func (t *OptionalType) NodeSpan() Span     { return t.Span }
func (t *OptionalType) Children() []NodeID { return []NodeID{t.Elem} }

// CallableType represents a function type, e.g. `(Int, Str) -> Bool`.
type CallableType struct {
	Span       Span
	Parameters []NodeID // Type
	ReturnType NodeID   // Type
}

func (t *CallableType) NodeKind() Kind { return KindType }
func (t *CallableType) NodeSpan() Span { return t.Span }
func (t *CallableType) Children() []NodeID {
	children := make([]NodeID, 0, len(t.Parameters)+1)
	children = append(children, t.Parameters...)
	children = append(children, t.ReturnType)
	return children
}
