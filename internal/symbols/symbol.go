package symbols

import "github.com/typhon-lang/typhon-analyzer/internal/ast"

// SymbolKind discriminates what kind of binding a Symbol represents
// (spec §3.3).
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolParameter
	SymbolFunction
	SymbolClass
	SymbolImport
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	case SymbolImport:
		return "import"
	default:
		return "unknown"
	}
}

// Symbol records one name binding: where it was defined, where it lives,
// who references it, and which nested function scopes close over it
// (spec §3.3). Symbols are created once by the collector and never
// migrate between scopes; the resolver only mutates References, Capturers,
// and the flag fields.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Definition ast.NodeID
	Span       ast.Span
	Scope      ScopeID

	References map[ast.NodeID]struct{}
	Capturers  map[ScopeID]struct{}

	Mutable  bool
	Used     bool
	Defined  bool
	Global   bool
	Nonlocal bool
}

// newSymbol builds a Symbol with its reference-tracking sets initialized.
func newSymbol(name string, kind SymbolKind, def ast.NodeID, span ast.Span, scope ScopeID) *Symbol {
	return &Symbol{
		Name:       name,
		Kind:       kind,
		Definition: def,
		Span:       span,
		Scope:      scope,
		References: make(map[ast.NodeID]struct{}),
		Capturers:  make(map[ScopeID]struct{}),
	}
}

// AddReference records id as a use site of the symbol and marks it used.
func (s *Symbol) AddReference(id ast.NodeID) {
	s.References[id] = struct{}{}
	s.Used = true
}

// AddCapturer records that the function/lambda scope fn closes over this
// symbol.
func (s *Symbol) AddCapturer(fn ScopeID) {
	s.Capturers[fn] = struct{}{}
}

// IsCaptured reports whether any nested scope closes over this symbol.
func (s *Symbol) IsCaptured() bool {
	return len(s.Capturers) > 0
}
