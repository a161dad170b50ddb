// Package symbols implements the scoped symbol table: Python-style LEGB
// lexical scoping over the arena-allocated AST, plus the closure-capture
// bookkeeping the name resolver fills in.
package symbols

import "github.com/typhon-lang/typhon-analyzer/internal/ast"

// ScopeKind discriminates the six scope-introducing contexts (spec §3.3).
type ScopeKind int

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeLambda
	ScopeClass
	ScopeComprehension
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeLambda:
		return "lambda"
	case ScopeClass:
		return "class"
	case ScopeComprehension:
		return "comprehension"
	case ScopeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ScopeID identifies a Scope for the lifetime of a SymbolTable. Scopes are
// never destroyed once created; the zero value is never issued by
// CreateScope.
type ScopeID uint32

// Scope holds one lexical scope's bindings. Parent is the enclosing scope,
// or the zero ScopeID for the module scope (SymbolTable reserves a root
// builtins scope below the module scope; see Builtins in table.go).
type Scope struct {
	ID        ScopeID
	Kind      ScopeKind
	Parent    ScopeID
	HasParent bool
	names     map[string]*Symbol
}

// Names returns the bindings introduced directly in this scope, in no
// particular order. Callers that need insertion order should track it
// themselves; the table does not guarantee one.
func (s *Scope) Names() map[string]*Symbol {
	return s.names
}

// newScope allocates an empty Scope value; SymbolTable.CreateScope is the
// only caller.
func newScope(id ScopeID, kind ScopeKind, parent ScopeID, hasParent bool) *Scope {
	return &Scope{ID: id, Kind: kind, Parent: parent, HasParent: hasParent, names: make(map[string]*Symbol)}
}

// introducesScope reports whether a node kind creates its own Scope per
// spec §4.4: Module, FunctionDecl/LambdaExpr, ClassDecl, and the four
// comprehension forms. if/while/for/try/with do not (their block-scoped
// exceptions — except handlers — are created explicitly by the collector,
// not discovered generically from the node shape).
func introducesScope(n ast.Node) bool {
	switch n.(type) {
	case *ast.Module, *ast.FunctionDecl, *ast.LambdaExpr, *ast.ClassDecl, *ast.Comprehension:
		return true
	default:
		return false
	}
}
