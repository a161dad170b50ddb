package symbols

import (
	"testing"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
)

func TestDefineAndLookupInCurrent(t *testing.T) {
	tbl := NewSymbolTable(nil)

	sym, err := tbl.Define("x", SymbolVariable, ast.NodeID{Index: 1}, ast.Span{})
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if sym.Name != "x" {
		t.Errorf("Define() symbol name = %q, want x", sym.Name)
	}

	got, ok := tbl.LookupInCurrent("x")
	if !ok {
		t.Fatalf("LookupInCurrent() ok = false, want true")
	}
	if got != sym {
		t.Errorf("LookupInCurrent() returned a different symbol")
	}
}

func TestDefineDuplicateInSameScope(t *testing.T) {
	tbl := NewSymbolTable(nil)

	if _, err := tbl.Define("x", SymbolVariable, ast.NodeID{Index: 1}, ast.Span{}); err != nil {
		t.Fatalf("first Define() error = %v", err)
	}
	_, err := tbl.Define("x", SymbolVariable, ast.NodeID{Index: 2}, ast.Span{})
	if err == nil {
		t.Fatalf("second Define() error = nil, want *DuplicateSymbolError")
	}
	if _, ok := err.(*DuplicateSymbolError); !ok {
		t.Errorf("second Define() error type = %T, want *DuplicateSymbolError", err)
	}
}

func TestLookupInChainWalksToBuiltins(t *testing.T) {
	tbl := NewSymbolTable([]string{"print", "len"})

	fn := tbl.CreateScope(ScopeFunction, tbl.ModuleScope())
	tbl.EnterScope(fn)
	defer tbl.ExitScope()

	sym, ok := tbl.LookupInChain(tbl.CurrentScope(), "print")
	if !ok {
		t.Fatalf("LookupInChain() ok = false, want true (builtin should be visible)")
	}
	if sym.Scope != tbl.BuiltinsScope() {
		t.Errorf("LookupInChain() found symbol owned by scope %d, want builtins scope %d", sym.Scope, tbl.BuiltinsScope())
	}

	if _, ok := tbl.LookupInChain(tbl.CurrentScope(), "missing"); ok {
		t.Errorf("LookupInChain() found nonexistent name")
	}
}

func TestScopeStackDiscipline(t *testing.T) {
	tbl := NewSymbolTable(nil)

	fn := tbl.CreateScope(ScopeFunction, tbl.ModuleScope())
	tbl.EnterScope(fn)
	if tbl.CurrentScope() != fn {
		t.Fatalf("CurrentScope() = %d, want %d", tbl.CurrentScope(), fn)
	}

	if err := tbl.ExitScope(); err != nil {
		t.Fatalf("ExitScope() error = %v", err)
	}
	if tbl.CurrentScope() != tbl.ModuleScope() {
		t.Errorf("CurrentScope() after exit = %d, want module scope %d", tbl.CurrentScope(), tbl.ModuleScope())
	}

	// One more exit pops the module scope itself, and a second is an
	// internal-invariant violation.
	if err := tbl.ExitScope(); err != nil {
		t.Fatalf("ExitScope() of module scope error = %v", err)
	}
	if err := tbl.ExitScope(); err == nil {
		t.Errorf("ExitScope() on empty stack error = nil, want *ScopeStackUnderflowError")
	}
}

func TestAssociateNodeAndScopeOf(t *testing.T) {
	tbl := NewSymbolTable(nil)
	fn := tbl.CreateScope(ScopeFunction, tbl.ModuleScope())
	node := ast.NodeID{Index: 7}

	tbl.AssociateNode(node, fn)

	scope, ok := tbl.ScopeOf(node)
	if !ok || scope != fn {
		t.Errorf("ScopeOf() = (%d, %v), want (%d, true)", scope, ok, fn)
	}

	gotNode, ok := tbl.NodeOf(fn)
	if !ok || gotNode != node {
		t.Errorf("NodeOf() = (%v, %v), want (%v, true)", gotNode, ok, node)
	}
}

func TestEnclosingFunctionSkipsClassScope(t *testing.T) {
	tbl := NewSymbolTable(nil)

	fn := tbl.CreateScope(ScopeFunction, tbl.ModuleScope())
	tbl.EnterScope(fn)
	cls := tbl.CreateScope(ScopeClass, fn)
	tbl.EnterScope(cls)
	method := tbl.CreateScope(ScopeFunction, cls)
	tbl.EnterScope(method)

	enclosing, ok := tbl.EnclosingFunction(tbl.CurrentScope())
	if !ok {
		t.Fatalf("EnclosingFunction() ok = false, want true")
	}
	if enclosing != method {
		t.Errorf("EnclosingFunction() = %d, want the method's own scope %d", enclosing, method)
	}

	// From inside the class body (not yet in the method), the nearest
	// function is the outer one, skipping over the class scope.
	outerEnclosing, ok := tbl.EnclosingFunction(cls)
	if !ok || outerEnclosing != fn {
		t.Errorf("EnclosingFunction(cls) = (%d, %v), want (%d, true)", outerEnclosing, ok, fn)
	}
}

func TestEnclosingFunctionAtModuleLevel(t *testing.T) {
	tbl := NewSymbolTable(nil)
	if _, ok := tbl.EnclosingFunction(tbl.ModuleScope()); ok {
		t.Errorf("EnclosingFunction(module) ok = true, want false")
	}
}
