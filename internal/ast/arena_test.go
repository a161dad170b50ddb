package ast

import "testing"

func TestArenaAllocAndGet(t *testing.T) {
	a := NewArena()
	id := a.Alloc(&PassStmt{Span: Span{Start: 1, End: 2}})

	got, err := a.Get(id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.NodeKind() != KindStatement {
		t.Errorf("NodeKind() = %v, want %v", got.NodeKind(), KindStatement)
	}
}

func TestArenaGetAsMismatch(t *testing.T) {
	a := NewArena()
	id := a.Alloc(&PassStmt{})

	_, err := GetAs[*BreakStmt](a, id)
	if err == nil {
		t.Fatalf("GetAs() error = nil, want TypeMismatchError")
	}
	if _, ok := err.(*TypeMismatchError); !ok {
		t.Errorf("GetAs() error type = %T, want *TypeMismatchError", err)
	}
}

func TestArenaRemoveInvalidatesGeneration(t *testing.T) {
	a := NewArena()
	id := a.Alloc(&PassStmt{})

	if !a.Remove(id) {
		t.Fatalf("Remove() = false, want true")
	}
	if _, err := a.Get(id); err == nil {
		t.Errorf("Get() after Remove() error = nil, want *NotFoundError")
	}

	reused := a.Alloc(&BreakStmt{})
	if reused.Index != id.Index {
		t.Fatalf("Alloc() did not reuse freed slot: got index %d, want %d", reused.Index, id.Index)
	}
	if reused.Generation == id.Generation {
		t.Errorf("Alloc() reused slot with stale generation %d", reused.Generation)
	}

	if _, err := a.Get(id); err == nil {
		t.Errorf("Get() with stale NodeID error = nil, want *NotFoundError")
	}
}

func TestArenaResolvePlaceholder(t *testing.T) {
	a := NewArena()
	if _, err := a.Get(PlaceholderNodeID); err == nil {
		t.Errorf("Get(PlaceholderNodeID) error = nil, want *NotFoundError")
	}
}

func TestArenaParent(t *testing.T) {
	a := NewArena()
	parent := a.Alloc(&FunctionDecl{Name: "f"})
	child := a.Alloc(&PassStmt{})

	if err := a.SetParent(child, parent); err != nil {
		t.Fatalf("SetParent() error = %v", err)
	}

	got, err := a.Parent(child)
	if err != nil {
		t.Fatalf("Parent() error = %v", err)
	}
	if got != parent {
		t.Errorf("Parent() = %v, want %v", got, parent)
	}
}

func TestArenaTraversePreOrder(t *testing.T) {
	a := NewArena()
	leaf1 := a.Alloc(&PassStmt{})
	leaf2 := a.Alloc(&BreakStmt{})
	block := a.Alloc(&IfStmt{
		Condition: a.Alloc(&BoolLiteral{Value: true}),
		Body:      []NodeID{leaf1, leaf2},
	})

	var visited []NodeID
	a.TraversePreOrder(block, func(id NodeID) bool {
		visited = append(visited, id)
		return true
	})

	if len(visited) != 4 {
		t.Fatalf("TraversePreOrder() visited %d nodes, want 4", len(visited))
	}
	if visited[0] != block {
		t.Errorf("TraversePreOrder() first visited = %v, want root %v", visited[0], block)
	}
}

func TestArenaTraverseShortCircuit(t *testing.T) {
	a := NewArena()
	leaf1 := a.Alloc(&PassStmt{})
	leaf2 := a.Alloc(&BreakStmt{})
	block := a.Alloc(&IfStmt{
		Condition: a.Alloc(&BoolLiteral{Value: true}),
		Body:      []NodeID{leaf1, leaf2},
	})

	count := 0
	a.TraversePreOrder(block, func(id NodeID) bool {
		count++
		return false
	})

	if count != 1 {
		t.Errorf("TraversePreOrder() visited %d nodes after stop, want 1", count)
	}
}

func TestNodeIDIsPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		id   NodeID
		want bool
	}{
		{"zero value", NodeID{}, false},
		{"placeholder constant", PlaceholderNodeID, true},
		{"ordinary id", NodeID{Index: 3, Generation: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsPlaceholder(); got != tt.want {
				t.Errorf("IsPlaceholder() = %v, want %v", got, tt.want)
			}
		})
	}
}
