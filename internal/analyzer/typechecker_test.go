package analyzer

import (
	"testing"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
	"github.com/typhon-lang/typhon-analyzer/internal/symbols"
	"github.com/typhon-lang/typhon-analyzer/internal/typesystem"
)

func runAllPasses(t *testing.T, a *ast.Arena, module ast.NodeID) (*symbols.SymbolTable, *typesystem.TypeEnvironment, *diagnostics.Bag) {
	t.Helper()
	table := newTable()
	env := typesystem.NewTypeEnvironment()
	bag := diagnostics.NewBag()
	if err := Collect(a, module, table, bag); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if err := Resolve(a, module, table, env, bag); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if err := Check(a, module, table, env, bag); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	return table, env, bag
}

// Mixed int/float arithmetic unifies to Float, with no diagnostic.
func TestTypeCheckerNumericUnification(t *testing.T) {
	a := ast.NewArena()
	intType := a.Alloc(&ast.NameType{Name: "int"})
	floatType := a.Alloc(&ast.NameType{Name: "float"})

	aDecl := a.Alloc(&ast.VariableDecl{Name: "a", TypeAnnotation: intType, Value: a.Alloc(&ast.IntLiteral{Value: 1})})
	bDecl := a.Alloc(&ast.VariableDecl{Name: "b", TypeAnnotation: floatType, Value: a.Alloc(&ast.FloatLiteral{Value: 1.5})})

	aRef := a.Alloc(&ast.VariableExpr{Name: "a"})
	bRef := a.Alloc(&ast.VariableExpr{Name: "b"})
	sum := a.Alloc(&ast.BinaryExpr{Op: "+", Left: aRef, Right: bRef})
	exprStmt := a.Alloc(&ast.ExprStmt{Expr: sum})

	module := a.Alloc(&ast.Module{Statements: []ast.NodeID{aDecl, bDecl, exprStmt}})

	_, env, bag := runAllPasses(t, a, module)
	if !bag.Empty() {
		t.Fatalf("bag = %v, want empty", bag.Items())
	}
	ty := env.TypeOf(sum)
	if _, ok := ty.(typesystem.FloatType); !ok {
		t.Errorf("TypeOf(sum) = %v, want FloatType", ty)
	}
}

// Accessing an attribute that does not exist on a concrete Str value reports
// a single AttributeError.
func TestTypeCheckerAttributeErrorOnConcreteType(t *testing.T) {
	a := ast.NewArena()
	strType := a.Alloc(&ast.NameType{Name: "str"})
	sDecl := a.Alloc(&ast.VariableDecl{Name: "s", TypeAnnotation: strType, Value: a.Alloc(&ast.StringLiteral{Value: "x"})})

	sRef := a.Alloc(&ast.VariableExpr{Name: "s"})
	attr := a.Alloc(&ast.AttributeExpr{Value: sRef, Attr: "nonexistent", Span: ast.Span{Start: 20, End: 31}})
	ret := a.Alloc(&ast.ReturnStmt{Value: attr})
	fn := a.Alloc(&ast.FunctionDecl{Name: "f", ReturnType: ast.PlaceholderNodeID, Body: []ast.NodeID{ret}})

	module := a.Alloc(&ast.Module{Statements: []ast.NodeID{sDecl, fn}})

	_, _, bag := runAllPasses(t, a, module)
	if bag.Len() != 1 {
		t.Fatalf("bag.Len() = %d, want 1: %v", bag.Len(), bag.Items())
	}
	attrErr, ok := bag.Items()[0].(*diagnostics.AttributeError)
	if !ok {
		t.Fatalf("diagnostic = %#v, want AttributeError", bag.Items()[0])
	}
	if attrErr.TypeName != "str" || attrErr.Attribute != "nonexistent" {
		t.Errorf("AttributeError = %+v, want {TypeName: str, Attribute: nonexistent}", attrErr)
	}
}

// A function with a declared return type whose return expression mismatches
// reports ReturnTypeMismatch.
func TestTypeCheckerReturnTypeMismatch(t *testing.T) {
	a := ast.NewArena()
	intType := a.Alloc(&ast.NameType{Name: "int"})
	ret := a.Alloc(&ast.ReturnStmt{Value: a.Alloc(&ast.StringLiteral{Value: "oops"})})
	fn := a.Alloc(&ast.FunctionDecl{Name: "f", ReturnType: intType, Body: []ast.NodeID{ret}})
	module := a.Alloc(&ast.Module{Statements: []ast.NodeID{fn}})

	_, _, bag := runAllPasses(t, a, module)
	if bag.Len() != 1 {
		t.Fatalf("bag.Len() = %d, want 1: %v", bag.Len(), bag.Items())
	}
	mismatch, ok := bag.Items()[0].(*diagnostics.ReturnTypeMismatch)
	if !ok || mismatch.Expected != "Int" || mismatch.Found != "Str" {
		t.Errorf("diagnostic = %#v, want ReturnTypeMismatch{Expected: Int, Found: Str}", bag.Items()[0])
	}
}

// Calling a named function infers through its recorded FunctionType rather
// than falling back to Any (the defect this checker deliberately avoids).
func TestTypeCheckerCallsNamedFunctionByReturnType(t *testing.T) {
	a := ast.NewArena()
	intType := a.Alloc(&ast.NameType{Name: "int"})
	ret := a.Alloc(&ast.ReturnStmt{Value: a.Alloc(&ast.IntLiteral{Value: 42})})
	fn := a.Alloc(&ast.FunctionDecl{Name: "answer", ReturnType: intType, Body: []ast.NodeID{ret}})

	callee := a.Alloc(&ast.VariableExpr{Name: "answer"})
	call := a.Alloc(&ast.CallExpr{Callee: callee})
	exprStmt := a.Alloc(&ast.ExprStmt{Expr: call})

	module := a.Alloc(&ast.Module{Statements: []ast.NodeID{fn, exprStmt}})

	_, env, bag := runAllPasses(t, a, module)
	if !bag.Empty() {
		t.Fatalf("bag = %v, want empty", bag.Items())
	}
	ty := env.TypeOf(call)
	if _, ok := ty.(typesystem.IntType); !ok {
		t.Errorf("TypeOf(call) = %v, want IntType", ty)
	}
}

// Int - Str has no valid combination and is not an Any participant; the
// permissive reference behavior of silently falling back to Any is
// tightened here to InvalidOperator (see DESIGN.md's open-question entry).
func TestTypeCheckerInvalidArithmeticOperator(t *testing.T) {
	a := ast.NewArena()
	left := a.Alloc(&ast.IntLiteral{Value: 1})
	right := a.Alloc(&ast.StringLiteral{Value: "x"})
	bin := a.Alloc(&ast.BinaryExpr{Op: "-", Left: left, Right: right, Span: ast.Span{Start: 5, End: 10}})
	exprStmt := a.Alloc(&ast.ExprStmt{Expr: bin})
	module := a.Alloc(&ast.Module{Statements: []ast.NodeID{exprStmt}})

	_, _, bag := runAllPasses(t, a, module)
	if bag.Len() != 1 {
		t.Fatalf("bag.Len() = %d, want 1: %v", bag.Len(), bag.Items())
	}
	if _, ok := bag.Items()[0].(*diagnostics.InvalidOperator); !ok {
		t.Errorf("diagnostic = %#v, want InvalidOperator", bag.Items()[0])
	}
}
