package diagnostics

import (
	"testing"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
)

func TestBagEmptyOnFreshBag(t *testing.T) {
	b := NewBag()
	if !b.Empty() {
		t.Errorf("Empty() = false, want true for a fresh bag")
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestBagAddPreservesOrder(t *testing.T) {
	b := NewBag()
	b.Add(&UndefinedName{Name: "a", Location: ast.Span{Start: 0, End: 1}})
	b.Add(&UndefinedName{Name: "b", Location: ast.Span{Start: 2, End: 3}})

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("Items() = %d diagnostics, want 2", len(items))
	}
	if items[0].(*UndefinedName).Name != "a" || items[1].(*UndefinedName).Name != "b" {
		t.Errorf("Items() out of order: %v", items)
	}
	if b.Empty() {
		t.Errorf("Empty() = true after Add, want false")
	}
}

func TestBagExtend(t *testing.T) {
	b := NewBag()
	b.Extend([]Diagnostic{
		&UndefinedName{Name: "x"},
		&DuplicateSymbol{Name: "y"},
	})
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}

func TestDiagnosticShapesImplementInterface(t *testing.T) {
	shapes := []Diagnostic{
		&UndefinedName{Name: "x", Location: ast.Span{Start: 1, End: 2}},
		&UseBeforeAssignment{Name: "y", Location: ast.Span{Start: 3, End: 4}},
		&DuplicateSymbol{Name: "z", Location: ast.Span{Start: 5, End: 6}, PreviousSpan: ast.Span{Start: 0, End: 1}},
		&TypeMismatch{Expected: "Int", Found: "Str", Location: ast.Span{Start: 7, End: 8}},
		&ReturnTypeMismatch{Expected: "Int", Found: "None", Location: ast.Span{Start: 9, End: 10}},
		&AttributeError{TypeName: "str", Attribute: "nonexistent", Location: ast.Span{Start: 11, End: 12}},
		&InvalidOperator{Op: "+", LeftType: "Int", RightType: "Str", Location: ast.Span{Start: 13, End: 14}},
		&NotCallable{TypeName: "Int", Location: ast.Span{Start: 15, End: 16}},
	}

	for _, d := range shapes {
		if d.Level() != Error {
			t.Errorf("%T.Level() = %v, want Error", d, d.Level())
		}
		if d.Message() == "" {
			t.Errorf("%T.Message() is empty", d)
		}
	}
}

func TestInvalidOperatorUnaryMessage(t *testing.T) {
	d := &InvalidOperator{Op: "-", LeftType: "Str"}
	got := d.Message()
	want := "operator - is not defined for Str"
	if got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{Error, "error"},
		{Warning, "warning"},
		{Info, "info"},
		{Note, "note"},
		{Level(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
