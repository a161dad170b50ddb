package typesystem

import (
	"testing"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
)

func TestResolveAnnotationBuiltins(t *testing.T) {
	a := ast.NewArena()
	env := NewTypeEnvironment()

	tests := []struct {
		name string
		want string
	}{
		{"int", "Int"},
		{"float", "Float"},
		{"str", "Str"},
		{"bool", "Bool"},
		{"bytes", "Bytes"},
		{"None", "None"},
		{"Any", "Any"},
		{"Never", "Never"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := a.Alloc(&ast.NameType{Name: tt.name})
			got := ResolveAnnotation(a, env, id)
			if got.String() != tt.want {
				t.Errorf("ResolveAnnotation(%s) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolveAnnotationUnknownNameBecomesClass(t *testing.T) {
	a := ast.NewArena()
	env := NewTypeEnvironment()

	id := a.Alloc(&ast.NameType{Name: "Widget"})
	got := ResolveAnnotation(a, env, id)

	ct, ok := got.(ClassType)
	if !ok {
		t.Fatalf("ResolveAnnotation(Widget) = %T, want ClassType", got)
	}
	if ct.Name != "Widget" {
		t.Errorf("ClassType.Name = %s, want Widget", ct.Name)
	}
}

func TestResolveAnnotationGenericList(t *testing.T) {
	a := ast.NewArena()
	env := NewTypeEnvironment()

	elem := a.Alloc(&ast.NameType{Name: "int"})
	id := a.Alloc(&ast.GenericType{Name: "list", TypeArgs: []ast.NodeID{elem}})

	got := ResolveAnnotation(a, env, id)
	lt, ok := got.(ListType)
	if !ok {
		t.Fatalf("ResolveAnnotation(list[int]) = %T, want ListType", got)
	}
	if lt.Elem.String() != "Int" {
		t.Errorf("ListType.Elem = %s, want Int", lt.Elem)
	}
}

func TestResolveAnnotationGenericDict(t *testing.T) {
	a := ast.NewArena()
	env := NewTypeEnvironment()

	key := a.Alloc(&ast.NameType{Name: "str"})
	val := a.Alloc(&ast.NameType{Name: "int"})
	id := a.Alloc(&ast.GenericType{Name: "dict", TypeArgs: []ast.NodeID{key, val}})

	got := ResolveAnnotation(a, env, id)
	dt, ok := got.(DictType)
	if !ok {
		t.Fatalf("ResolveAnnotation(dict[str, int]) = %T, want DictType", got)
	}
	if dt.Key.String() != "Str" || dt.Value.String() != "Int" {
		t.Errorf("DictType = %s, want Dict[Str, Int]", dt)
	}
}

func TestResolveAnnotationUnion(t *testing.T) {
	a := ast.NewArena()
	env := NewTypeEnvironment()

	left := a.Alloc(&ast.NameType{Name: "int"})
	right := a.Alloc(&ast.NameType{Name: "str"})
	id := a.Alloc(&ast.UnionType{Types: []ast.NodeID{left, right}})

	got := ResolveAnnotation(a, env, id)
	ut, ok := got.(UnionType)
	if !ok {
		t.Fatalf("ResolveAnnotation(int | str) = %T, want UnionType", got)
	}
	if len(ut.Members) != 2 {
		t.Errorf("UnionType has %d members, want 2", len(ut.Members))
	}
}

func TestResolveAnnotationCallable(t *testing.T) {
	a := ast.NewArena()
	env := NewTypeEnvironment()

	param := a.Alloc(&ast.NameType{Name: "int"})
	ret := a.Alloc(&ast.NameType{Name: "bool"})
	id := a.Alloc(&ast.CallableType{Parameters: []ast.NodeID{param}, ReturnType: ret})

	got := ResolveAnnotation(a, env, id)
	ft, ok := got.(FunctionType)
	if !ok {
		t.Fatalf("ResolveAnnotation((int) -> bool) = %T, want FunctionType", got)
	}
	if ft.Ret.String() != "Bool" {
		t.Errorf("FunctionType.Ret = %s, want Bool", ft.Ret)
	}
}

func TestResolveAnnotationUnresolvableIsAnyNoError(t *testing.T) {
	a := ast.NewArena()
	env := NewTypeEnvironment()

	got := ResolveAnnotation(a, env, ast.PlaceholderNodeID)
	if got.String() != "Any" {
		t.Errorf("ResolveAnnotation(placeholder) = %s, want Any", got)
	}
}
