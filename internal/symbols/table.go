package symbols

import (
	"fmt"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
)

// DuplicateSymbolError is returned by Define when name already exists in
// the current scope (spec §4.3: "fails with duplicate symbol").
type DuplicateSymbolError struct {
	Name  string
	Scope ScopeID
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("symbols: duplicate symbol %q in scope %d", e.Name, e.Scope)
}

// ScopeStackUnderflowError is an internal-invariant violation (spec §7,
// tier "Internal"): ExitScope called with no scope entered.
type ScopeStackUnderflowError struct{}

func (e *ScopeStackUnderflowError) Error() string {
	return "symbols: scope stack underflow"
}

// SymbolTable is the C4 component: scope creation/entry with stack
// discipline, name definition and LEGB lookup, and the node→scope
// association used by passes that need to re-enter a scope-introducing
// node's scope later.
type SymbolTable struct {
	scopes  []*Scope
	stack   []ScopeID
	nodeOf  map[ScopeID]ast.NodeID
	scopeOf map[ast.NodeID]ScopeID

	builtins ScopeID
	module   ScopeID
}

// NewSymbolTable builds a table with a synthetic Builtins scope (holding
// builtinNames as pre-defined Variable symbols) as the root of the scope
// chain. The module scope is created and entered automatically.
func NewSymbolTable(builtinNames []string) *SymbolTable {
	t := &SymbolTable{
		nodeOf:  make(map[ScopeID]ast.NodeID),
		scopeOf: make(map[ast.NodeID]ScopeID),
	}

	builtins := newScope(ScopeID(len(t.scopes)), ScopeBlock, 0, false)
	t.scopes = append(t.scopes, builtins)
	t.builtins = builtins.ID

	for _, name := range builtinNames {
		builtins.names[name] = newSymbol(name, SymbolVariable, ast.PlaceholderNodeID, ast.Span{}, builtins.ID)
		builtins.names[name].Defined = true
		builtins.names[name].Used = true // builtins are always considered used; nothing reports them unused
	}

	module := newScope(ScopeID(len(t.scopes)), ScopeModule, builtins.ID, true)
	t.scopes = append(t.scopes, module)
	t.module = module.ID
	t.stack = append(t.stack, module.ID)

	return t
}

// ModuleScope returns the ScopeID of the top-level module scope.
func (t *SymbolTable) ModuleScope() ScopeID { return t.module }

// BuiltinsScope returns the ScopeID of the synthetic builtins scope.
func (t *SymbolTable) BuiltinsScope() ScopeID { return t.builtins }

// CreateScope allocates a new scope as a child of parent and returns its
// ID. It does not enter the scope; callers combine this with EnterScope.
func (t *SymbolTable) CreateScope(kind ScopeKind, parent ScopeID) ScopeID {
	s := newScope(ScopeID(len(t.scopes)), kind, parent, true)
	t.scopes = append(t.scopes, s)
	return s.ID
}

// EnterScope pushes id onto the scope stack, making it the current scope.
func (t *SymbolTable) EnterScope(id ScopeID) {
	t.stack = append(t.stack, id)
}

// ExitScope pops the current scope. Returns a *ScopeStackUnderflowError if
// the stack is already empty — an internal invariant violation, not a
// recoverable semantic error (spec §7).
func (t *SymbolTable) ExitScope() error {
	n := len(t.stack)
	if n == 0 {
		return &ScopeStackUnderflowError{}
	}
	t.stack = t.stack[:n-1]
	return nil
}

// CurrentScope returns the innermost entered scope. Panics if called
// before any scope is entered, which cannot happen via the public API
// since NewSymbolTable always enters the module scope.
func (t *SymbolTable) CurrentScope() ScopeID {
	return t.stack[len(t.stack)-1]
}

func (t *SymbolTable) scope(id ScopeID) *Scope {
	return t.scopes[id]
}

// Scope returns the Scope record for id.
func (t *SymbolTable) Scope(id ScopeID) *Scope {
	return t.scope(id)
}

// Define binds name to symbol in the current scope. Returns
// *DuplicateSymbolError (a semantic error the collector records and
// continues past, per spec §4.4) if name is already bound there.
func (t *SymbolTable) Define(name string, kind SymbolKind, def ast.NodeID, span ast.Span) (*Symbol, error) {
	cur := t.scope(t.CurrentScope())
	if _, exists := cur.names[name]; exists {
		return nil, &DuplicateSymbolError{Name: name, Scope: cur.ID}
	}
	sym := newSymbol(name, kind, def, span, cur.ID)
	cur.names[name] = sym
	return sym, nil
}

// DefineIn is Define targeted at an explicit scope rather than the current
// one, used by the collector when hoisting names into a scope it has
// created but not yet entered, and by for-loop/with targets that bind in
// an already-current enclosing scope looked up by ID.
func (t *SymbolTable) DefineIn(scope ScopeID, name string, kind SymbolKind, def ast.NodeID, span ast.Span) (*Symbol, error) {
	s := t.scope(scope)
	if _, exists := s.names[name]; exists {
		return nil, &DuplicateSymbolError{Name: name, Scope: s.ID}
	}
	sym := newSymbol(name, kind, def, span, s.ID)
	s.names[name] = sym
	return sym, nil
}

// LookupInCurrent looks up name in the current scope only, with no
// fallthrough to enclosing scopes.
func (t *SymbolTable) LookupInCurrent(name string) (*Symbol, bool) {
	sym, ok := t.scope(t.CurrentScope()).names[name]
	return sym, ok
}

// LookupInScope looks up name in scope only.
func (t *SymbolTable) LookupInScope(scope ScopeID, name string) (*Symbol, bool) {
	sym, ok := t.scope(scope).names[name]
	return sym, ok
}

// LookupInChain performs the LEGB walk starting at scope: the scope itself,
// then its parent chain up through Module and finally Builtins. Returns
// the nearest binding. Class scopes are walked like any other — spec §4.5
// excludes them only from closure-capture bookkeeping, not from lookup.
func (t *SymbolTable) LookupInChain(scope ScopeID, name string) (*Symbol, bool) {
	cur := scope
	for {
		s := t.scope(cur)
		if sym, ok := s.names[name]; ok {
			return sym, true
		}
		if !s.HasParent {
			return nil, false
		}
		cur = s.Parent
	}
}

// AssociateNode records that node introduces scope. Used for Function,
// Lambda, Class, and comprehension nodes (spec §4.3).
func (t *SymbolTable) AssociateNode(node ast.NodeID, scope ScopeID) {
	t.nodeOf[scope] = node
	t.scopeOf[node] = scope
}

// ScopeOf returns the scope a scope-introducing node was associated with.
func (t *SymbolTable) ScopeOf(node ast.NodeID) (ScopeID, bool) {
	id, ok := t.scopeOf[node]
	return id, ok
}

// NodeOf returns the node a scope was associated with.
func (t *SymbolTable) NodeOf(scope ScopeID) (ast.NodeID, bool) {
	id, ok := t.nodeOf[scope]
	return id, ok
}

// EnclosingFunction walks up from scope looking for the nearest Function or
// Lambda scope, stopping at Module. Used by the resolver to determine the
// "enclosing function ScopeID" tracked per spec §4.5 (nil/none at module
// level, ignored for class bodies — a class scope does not count as, nor
// block, the search).
func (t *SymbolTable) EnclosingFunction(scope ScopeID) (ScopeID, bool) {
	cur := scope
	for {
		s := t.scope(cur)
		if s.Kind == ScopeFunction || s.Kind == ScopeLambda {
			return s.ID, true
		}
		if s.Kind == ScopeModule || !s.HasParent {
			return 0, false
		}
		cur = s.Parent
	}
}
