package ast

// Module is the root node of every tree the analyzer consumes. A Module's
// parent link is always unset.
type Module struct {
	Span       Span
	Name       string
	Statements []NodeID
}

func (m *Module) NodeKind() Kind       { return KindModule }
func (m *Module) NodeSpan() Span       { return m.Span }
func (m *Module) Children() []NodeID   { return m.Statements }
func (m *Module) TokenLiteral() string { return "module " + m.Name }
