package session

import (
	"testing"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
)

func TestNew_AssignsUniqueID(t *testing.T) {
	a := ast.NewArena()
	module := a.Alloc(&ast.Module{})

	s1 := New(a, module, nil)
	s2 := New(a, module, nil)

	if s1.ID == s2.ID {
		t.Error("expected two sessions to receive distinct UUIDs")
	}
	if s1.ID.String() == "" {
		t.Error("expected a non-empty UUID string")
	}
}

func TestNew_RunsPipelineAndReportsUndefinedName(t *testing.T) {
	a := ast.NewArena()
	ref := a.Alloc(&ast.VariableExpr{Name: "missing"})
	exprStmt := a.Alloc(&ast.ExprStmt{Expr: ref})
	module := a.Alloc(&ast.Module{Statements: []ast.NodeID{exprStmt}})

	s := New(a, module, nil)

	if len(s.Diagnostics()) != 1 {
		t.Fatalf("Diagnostics() len = %d, want 1: %v", len(s.Diagnostics()), s.Diagnostics())
	}
	if _, ok := s.Diagnostics()[0].(*diagnostics.UndefinedName); !ok {
		t.Errorf("diagnostic = %#v, want UndefinedName", s.Diagnostics()[0])
	}
}

func TestNew_DefaultsToAnalyzerBuiltins(t *testing.T) {
	a := ast.NewArena()
	ref := a.Alloc(&ast.VariableExpr{Name: "print"})
	exprStmt := a.Alloc(&ast.ExprStmt{Expr: ref})
	module := a.Alloc(&ast.Module{Statements: []ast.NodeID{exprStmt}})

	s := New(a, module, nil)

	if !s.Bag.Empty() {
		t.Errorf("bag = %v, want empty (print should resolve via DefaultBuiltins)", s.Bag.Items())
	}
}

func TestNew_CustomBuiltinsOverrideDefaults(t *testing.T) {
	a := ast.NewArena()
	ref := a.Alloc(&ast.VariableExpr{Name: "print"})
	exprStmt := a.Alloc(&ast.ExprStmt{Expr: ref})
	module := a.Alloc(&ast.Module{Statements: []ast.NodeID{exprStmt}})

	s := New(a, module, []string{"onlyThis"})

	if s.Bag.Empty() {
		t.Fatal("expected an UndefinedName diagnostic when print is not in the custom builtin set")
	}
	if _, ok := s.Diagnostics()[0].(*diagnostics.UndefinedName); !ok {
		t.Errorf("diagnostic = %#v, want UndefinedName", s.Diagnostics()[0])
	}
}
