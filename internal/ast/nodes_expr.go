package ast

// VariableExpr is a reference to a bound name, e.g. `x`.
type VariableExpr struct {
	Span Span
	Name string
}

func (e *VariableExpr) NodeKind() Kind       { return KindExpression }
func (e *VariableExpr) NodeSpan() Span       { return e.Span }
func (e *VariableExpr) Children() []NodeID   { return nil }
func (e *VariableExpr) TokenLiteral() string { return e.Name }

// IntLiteral represents an integer literal.
type IntLiteral struct {
	Span  Span
	Value int64
}

func (e *IntLiteral) NodeKind() Kind     { return KindExpression }
func (e *IntLiteral) NodeSpan() Span     { return e.Span }
func (e *IntLiteral) Children() []NodeID { return nil }

// FloatLiteral represents a floating point literal.
type FloatLiteral struct {
	Span  Span
	Value float64
}

func (e *FloatLiteral) NodeKind() Kind     { return KindExpression }
func (e *FloatLiteral) NodeSpan() Span     { return e.Span }
func (e *FloatLiteral) Children() []NodeID { return nil }

// StringLiteral represents a string literal.
type StringLiteral struct {
	Span  Span
	Value string
}

func (e *StringLiteral) NodeKind() Kind     { return KindExpression }
func (e *StringLiteral) NodeSpan() Span     { return e.Span }
func (e *StringLiteral) Children() []NodeID { return nil }

// BytesLiteral represents a bytes literal, e.g. b"...".
type BytesLiteral struct {
	Span  Span
	Value []byte
}

func (e *BytesLiteral) NodeKind() Kind     { return KindExpression }
func (e *BytesLiteral) NodeSpan() Span     { return e.Span }
func (e *BytesLiteral) Children() []NodeID { return nil }

// BoolLiteral represents `true`/`false`.
type BoolLiteral struct {
	Span  Span
	Value bool
}

func (e *BoolLiteral) NodeKind() Kind     { return KindExpression }
func (e *BoolLiteral) NodeSpan() Span     { return e.Span }
func (e *BoolLiteral) Children() []NodeID { return nil }

// NoneLiteral represents `None`, the sole inhabitant of the None type.
type NoneLiteral struct{ Span Span }

func (e *NoneLiteral) NodeKind() Kind     { return KindExpression }
func (e *NoneLiteral) NodeSpan() Span     { return e.Span }
func (e *NoneLiteral) Children() []NodeID { return nil }

// ListExpr represents a list display, e.g. `[1, 2, 3]`.
type ListExpr struct {
	Span     Span
	Elements []NodeID
}

func (e *ListExpr) NodeKind() Kind     { return KindExpression }
func (e *ListExpr) NodeSpan() Span     { return e.Span }
func (e *ListExpr) Children() []NodeID { return e.Elements }

// TupleExpr represents a tuple display, e.g. `(1, "x", true)`.
type TupleExpr struct {
	Span     Span
	Elements []NodeID
}

func (e *TupleExpr) NodeKind() Kind     { return KindExpression }
func (e *TupleExpr) NodeSpan() Span     { return e.Span }
func (e *TupleExpr) Children() []NodeID { return e.Elements }

// SetExpr represents a set display, e.g. `{1, 2, 3}`.
type SetExpr struct {
	Span     Span
	Elements []NodeID
}

func (e *SetExpr) NodeKind() Kind     { return KindExpression }
func (e *SetExpr) NodeSpan() Span     { return e.Span }
func (e *SetExpr) Children() []NodeID { return e.Elements }

// DictEntry is one `key: value` pair of a DictExpr.
type DictEntry struct {
	Key   NodeID
	Value NodeID
}

// DictExpr represents a dict display, e.g. `{"a": 1, "b": 2}`.
type DictExpr struct {
	Span    Span
	Entries []DictEntry
}

func (e *DictExpr) NodeKind() Kind { return KindExpression }
func (e *DictExpr) NodeSpan() Span { return e.Span }
func (e *DictExpr) Children() []NodeID {
	children := make([]NodeID, 0, len(e.Entries)*2)
	for _, entry := range e.Entries {
		children = append(children, entry.Key, entry.Value)
	}
	return children
}

// BinaryExpr represents `left op right` for arithmetic, comparison,
// logical, bitwise, shift, and matrix-multiply operators (spec §4.8).
type BinaryExpr struct {
	Span        Span
	Op          string
	Left, Right NodeID
}

func (e *BinaryExpr) NodeKind() Kind     { return KindExpression }
func (e *BinaryExpr) NodeSpan() Span     { return e.Span }
func (e *BinaryExpr) Children() []NodeID { return []NodeID{e.Left, e.Right} }

// UnaryExpr represents `op operand` for `+`, `-`, `not`, `~`.
type UnaryExpr struct {
	Span    Span
	Op      string
	Operand NodeID
}

func (e *UnaryExpr) NodeKind() Kind     { return KindExpression }
func (e *UnaryExpr) NodeSpan() Span     { return e.Span }
func (e *UnaryExpr) Children() []NodeID { return []NodeID{e.Operand} }

// CallExpr represents `callee(args...)`.
type CallExpr struct {
	Span   Span
	Callee NodeID
	Args   []NodeID
}

func (e *CallExpr) NodeKind() Kind { return KindExpression }
func (e *CallExpr) NodeSpan() Span { return e.Span }
func (e *CallExpr) Children() []NodeID {
	children := make([]NodeID, 0, 1+len(e.Args))
	children = append(children, e.Callee)
	children = append(children, e.Args...)
	return children
}

// AttributeExpr represents `value.attr`.
type AttributeExpr struct {
	Span  Span
	Value NodeID
	Attr  string
}

func (e *AttributeExpr) NodeKind() Kind     { return KindExpression }
func (e *AttributeExpr) NodeSpan() Span     { return e.Span }
func (e *AttributeExpr) Children() []NodeID { return []NodeID{e.Value} }

// SubscriptExpr represents `value[index]`.
type SubscriptExpr struct {
	Span  Span
	Value NodeID
	Index NodeID
}

func (e *SubscriptExpr) NodeKind() Kind     { return KindExpression }
func (e *SubscriptExpr) NodeSpan() Span     { return e.Span }
func (e *SubscriptExpr) Children() []NodeID { return []NodeID{e.Value, e.Index} }

// AssignmentExpr represents a walrus assignment expression `target := value`.
type AssignmentExpr struct {
	Span   Span
	Target NodeID
	Value  NodeID
}

func (e *AssignmentExpr) NodeKind() Kind     { return KindExpression }
func (e *AssignmentExpr) NodeSpan() Span     { return e.Span }
func (e *AssignmentExpr) Children() []NodeID { return []NodeID{e.Target, e.Value} }

// LambdaExpr represents `lambda params: body`.
type LambdaExpr struct {
	Span       Span
	Parameters []NodeID // ParameterIdent
	Body       NodeID
}

func (e *LambdaExpr) NodeKind() Kind { return KindExpression }
func (e *LambdaExpr) NodeSpan() Span { return e.Span }
func (e *LambdaExpr) Children() []NodeID {
	children := make([]NodeID, 0, len(e.Parameters)+1)
	children = append(children, e.Parameters...)
	children = append(children, e.Body)
	return children
}

// ComprehensionKind distinguishes the four comprehension forms, all of
// which create a Comprehension scope (spec §3.3, §4.4).
type ComprehensionKind int

const (
	ListComprehensionKind ComprehensionKind = iota
	SetComprehensionKind
	DictComprehensionKind
	GeneratorComprehensionKind
)

// Comprehension represents `[elem for target in iter if cond ...]` and its
// set/dict/generator variants. For DictComprehensionKind, Element is unused
// and KeyExpr/ValueExpr carry the two projected expressions.
type Comprehension struct {
	Span       Span
	Kind       ComprehensionKind
	Element    NodeID // list/set/generator projection; PlaceholderNodeID for dict
	KeyExpr    NodeID // dict key projection; PlaceholderNodeID otherwise
	ValueExpr  NodeID // dict value projection; PlaceholderNodeID otherwise
	Target     NodeID // Identifier or Pattern
	Iter       NodeID
	Conditions []NodeID // `if` clauses
}

func (e *Comprehension) NodeKind() Kind { return KindExpression }
func (e *Comprehension) NodeSpan() Span { return e.Span }
func (e *Comprehension) Children() []NodeID {
	children := make([]NodeID, 0, 4+len(e.Conditions))
	if !e.Element.IsPlaceholder() {
		children = append(children, e.Element)
	}
	if !e.KeyExpr.IsPlaceholder() {
		children = append(children, e.KeyExpr)
	}
	if !e.ValueExpr.IsPlaceholder() {
		children = append(children, e.ValueExpr)
	}
	children = append(children, e.Target, e.Iter)
	children = append(children, e.Conditions...)
	return children
}
