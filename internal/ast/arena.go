package ast

import "fmt"

// NotFoundError is returned when a NodeID does not resolve to a live node,
// either because the index was never allocated or because the slot's
// generation has moved past the one the caller presented.
type NotFoundError struct {
	ID NodeID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ast: node %s not found", e.ID)
}

// TypeMismatchError is returned by GetAs when the node at id exists but is
// not the requested shape.
type TypeMismatchError struct {
	ID   NodeID
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("ast: node %s is %s, want %s", e.ID, e.Got, e.Want)
}

type slot struct {
	generation uint32
	node       Node // nil when the slot is free
	parent     NodeID
}

// Arena is a generational slot store for AST nodes. It is the sole owner of
// every node it allocates; nothing else may outlive it. The arena is not
// safe for concurrent use — analysis of a single module is strictly
// single-threaded (see spec §5); independent modules get independent
// arenas.
type Arena struct {
	slots    []slot
	free     []uint32 // LIFO free list of slot indices
	interned map[string]string
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{interned: make(map[string]string)}
}

// Alloc stores node in a free (or new) slot and returns a NodeID handle for
// it. O(1): reuses the most recently freed slot when one is available.
func (a *Arena) Alloc(node Node) NodeID {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.node = node
		s.parent = NodeID{}
		return NodeID{Index: idx, Generation: s.generation}
	}

	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot{generation: 0, node: node})
	return NodeID{Index: idx, Generation: 0}
}

func (a *Arena) resolve(id NodeID) (*slot, error) {
	if id.IsPlaceholder() || int(id.Index) >= len(a.slots) {
		return nil, &NotFoundError{ID: id}
	}
	s := &a.slots[id.Index]
	if s.node == nil || s.generation != id.Generation {
		return nil, &NotFoundError{ID: id}
	}
	return s, nil
}

// Get returns the live node at id, or a *NotFoundError if id is stale or
// was never allocated. The returned Node may be mutated in place by the
// caller (nodes are stored as pointers); the arena performs no defensive
// copying.
func (a *Arena) Get(id NodeID) (Node, error) {
	s, err := a.resolve(id)
	if err != nil {
		return nil, err
	}
	return s.node, nil
}

// MustGet panics if id does not resolve. Intended for code paths that just
// allocated id themselves and know it is live.
func (a *Arena) MustGet(id NodeID) Node {
	n, err := a.Get(id)
	if err != nil {
		panic(err)
	}
	return n
}

// GetAs resolves id and asserts it to shape T, returning a *TypeMismatchError
// when the node exists but isn't a T, or the resolve error (always a
// *NotFoundError) otherwise.
func GetAs[T Node](a *Arena, id NodeID) (T, error) {
	var zero T
	n, err := a.Get(id)
	if err != nil {
		return zero, err
	}
	t, ok := n.(T)
	if !ok {
		return zero, &TypeMismatchError{ID: id, Want: fmt.Sprintf("%T", zero), Got: fmt.Sprintf("%T", n)}
	}
	return t, nil
}

// Remove frees the slot occupied by id, bumping its generation so any other
// outstanding NodeID referencing it becomes stale. Returns false if id was
// already stale or unallocated. Removal does not cascade to children —
// callers that want a subtree gone must remove each child explicitly.
func (a *Arena) Remove(id NodeID) bool {
	s, err := a.resolve(id)
	if err != nil {
		return false
	}
	s.node = nil
	s.parent = NodeID{}
	s.generation++
	a.free = append(a.free, id.Index)
	return true
}

// SetParent records parent as the owner of child. It does not verify that
// child appears in parent.Children(); callers are expected to only link
// nodes that are already wired that way (the invariant is established at
// construction time by whatever built the tree, typically the parser).
func (a *Arena) SetParent(child, parent NodeID) error {
	s, err := a.resolve(child)
	if err != nil {
		return err
	}
	s.parent = parent
	return nil
}

// Parent returns the recorded parent of id, or the zero NodeID if unset.
func (a *Arena) Parent(id NodeID) (NodeID, error) {
	s, err := a.resolve(id)
	if err != nil {
		return NodeID{}, err
	}
	return s.parent, nil
}

// InternString returns a canonical, deduplicated copy of s that lives for
// the arena's lifetime. Useful for identifier/string-literal payloads that
// repeat heavily across a source file.
func (a *Arena) InternString(s string) string {
	if v, ok := a.interned[s]; ok {
		return v
	}
	a.interned[s] = s
	return s
}

// Len returns the number of slots ever allocated, live or free. It is not
// the count of live nodes.
func (a *Arena) Len() int {
	return len(a.slots)
}

// TraversePreOrder walks the subtree rooted at root in pre-order (node
// before children), invoking visit(id) for each reachable, resolvable node.
// Traversal stops as soon as visit returns false, including for the root.
func (a *Arena) TraversePreOrder(root NodeID, visit func(NodeID) bool) {
	a.traverse(root, true, visit)
}

// TraversePostOrder walks the subtree rooted at root in post-order
// (children before node). Traversal stops as soon as visit returns false.
func (a *Arena) TraversePostOrder(root NodeID, visit func(NodeID) bool) {
	a.traverse(root, false, visit)
}

// traverse returns false to propagate a short-circuit up the call stack.
func (a *Arena) traverse(id NodeID, preOrder bool, visit func(NodeID) bool) bool {
	node, err := a.Get(id)
	if err != nil {
		return true
	}

	if preOrder {
		if !visit(id) {
			return false
		}
	}

	for _, child := range node.Children() {
		if !a.traverse(child, preOrder, visit) {
			return false
		}
	}

	if !preOrder {
		if !visit(id) {
			return false
		}
	}

	return true
}
