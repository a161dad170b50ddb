// Package cfg builds a per-function control-flow graph (C9) and runs the
// forward definite-assignment dataflow over it (C10), per spec §3.5, §4.9,
// §4.10.
package cfg

import "github.com/typhon-lang/typhon-analyzer/internal/ast"

// BlockID is a dense index into a CFG's Blocks slice.
type BlockID int

// BasicBlock is an ordered run of statement NodeIDs with no internal
// branching. Edges are stored symmetrically: every successor of a block
// has that block recorded as one of its predecessors, and vice versa
// (spec §3.5's "every edge is symmetric" invariant).
type BasicBlock struct {
	ID            BlockID
	Statements    []ast.NodeID
	Successors    map[BlockID]struct{}
	Predecessors  map[BlockID]struct{}
	HasTerminator bool
}

func newBasicBlock(id BlockID) *BasicBlock {
	return &BasicBlock{
		ID:           id,
		Successors:   make(map[BlockID]struct{}),
		Predecessors: make(map[BlockID]struct{}),
	}
}

func (b *BasicBlock) append(stmt ast.NodeID) {
	b.Statements = append(b.Statements, stmt)
}

// SuccessorIDs returns b's successors as a sorted-by-insertion-irrelevant
// slice; callers that need a deterministic order should sort it
// themselves (block IDs are comparable integers).
func (b *BasicBlock) SuccessorIDs() []BlockID {
	ids := make([]BlockID, 0, len(b.Successors))
	for id := range b.Successors {
		ids = append(ids, id)
	}
	return ids
}

// PredecessorIDs mirrors SuccessorIDs for predecessors.
func (b *BasicBlock) PredecessorIDs() []BlockID {
	ids := make([]BlockID, 0, len(b.Predecessors))
	for id := range b.Predecessors {
		ids = append(ids, id)
	}
	return ids
}
