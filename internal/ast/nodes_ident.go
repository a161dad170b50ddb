package ast

// BasicIdent names a binding occurrence that isn't a function parameter:
// assignment targets, for-loop targets, except-handler names, global/class
// members. The symbol collector (spec §4.4) is the only consumer that cares
// about the distinction between this and ParameterIdent.
type BasicIdent struct {
	Span Span
	Name string
}

func (i *BasicIdent) NodeKind() Kind       { return KindIdentifier }
func (i *BasicIdent) NodeSpan() Span       { return i.Span }
func (i *BasicIdent) Children() []NodeID   { return nil }
func (i *BasicIdent) TokenLiteral() string { return i.Name }

// ParameterIdent names one parameter of a FunctionDecl or LambdaExpr. A
// default value makes the parameter optional; a type annotation feeds the
// function's CallableType signature (spec §4.6).
type ParameterIdent struct {
	Span           Span
	Name           string
	TypeAnnotation NodeID // Type, or PlaceholderNodeID if unannotated
	Default        NodeID // Expression, or PlaceholderNodeID if none
	IsVariadic     bool   // `*args`
	IsKeyword      bool   // `**kwargs`
}

func (i *ParameterIdent) NodeKind() Kind       { return KindIdentifier }
func (i *ParameterIdent) NodeSpan() Span       { return i.Span }
func (i *ParameterIdent) TokenLiteral() string { return i.Name }
func (i *ParameterIdent) HasDefault() bool     { return !i.Default.IsPlaceholder() }
func (i *ParameterIdent) Children() []NodeID {
	var children []NodeID
	if !i.TypeAnnotation.IsPlaceholder() {
		children = append(children, i.TypeAnnotation)
	}
	if i.HasDefault() {
		children = append(children, i.Default)
	}
	return children
}
