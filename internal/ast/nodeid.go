package ast

import "fmt"

// NodeID is an opaque handle into an Arena: a slot index plus the
// generation the slot had when this handle was issued. A NodeID presented
// against a slot carrying a different generation (because the slot was
// freed and reused) is treated as "not found" — it never aliases the new
// occupant.
type NodeID struct {
	Index      uint32
	Generation uint32
}

func (id NodeID) String() string {
	if id == PlaceholderNodeID {
		return "<placeholder>"
	}
	return fmt.Sprintf("#%d.%d", id.Index, id.Generation)
}

// IsPlaceholder reports whether id is the sentinel reserved for nodes still
// under construction (e.g. a parent whose child hasn't been allocated yet).
func (id NodeID) IsPlaceholder() bool {
	return id == PlaceholderNodeID
}

// PlaceholderNodeID is reserved and never returned by Arena.Alloc; it never
// resolves via Arena.Get.
var PlaceholderNodeID = NodeID{Index: ^uint32(0), Generation: ^uint32(0)}
