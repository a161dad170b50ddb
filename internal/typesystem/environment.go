package typesystem

import (
	"fmt"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
)

// TypeID is an interned reference into a TypeEnvironment (spec §3.4).
type TypeID uint64

func (id TypeID) String() string { return fmt.Sprintf("T%d", uint64(id)) }

// TypeEnvironment interns every distinct Type value encountered during
// analysis and records the TypeID assigned to each expression, parameter,
// return-annotation, and variable-declaration node (spec §3.4).
type TypeEnvironment struct {
	types    []Type
	internOf map[string]TypeID
	nodeType map[ast.NodeID]TypeID
}

// NewTypeEnvironment returns an empty environment.
func NewTypeEnvironment() *TypeEnvironment {
	return &TypeEnvironment{
		internOf: make(map[string]TypeID),
		nodeType: make(map[ast.NodeID]TypeID),
	}
}

// Intern returns the TypeID for t, assigning a fresh one the first time a
// given canonical form is seen.
func (e *TypeEnvironment) Intern(t Type) TypeID {
	key := t.String()
	if id, ok := e.internOf[key]; ok {
		return id
	}
	id := TypeID(len(e.types))
	e.types = append(e.types, t)
	e.internOf[key] = id
	return id
}

// Resolve returns the Type a previously interned TypeID denotes. Panics if
// id was never produced by this environment's Intern — callers only ever
// hold IDs this environment issued.
func (e *TypeEnvironment) Resolve(id TypeID) Type {
	return e.types[id]
}

// SetNodeType records that node's type is id.
func (e *TypeEnvironment) SetNodeType(node ast.NodeID, id TypeID) {
	e.nodeType[node] = id
}

// NodeType returns the TypeID recorded for node, if any.
func (e *TypeEnvironment) NodeType(node ast.NodeID) (TypeID, bool) {
	id, ok := e.nodeType[node]
	return id, ok
}

// TypeOf is a convenience combining NodeType and Resolve; it returns Any
// when node has no recorded type, matching the checker's "absent → Any"
// rule (spec §4.8).
func (e *TypeEnvironment) TypeOf(node ast.NodeID) Type {
	id, ok := e.nodeType[node]
	if !ok {
		return AnyType{}
	}
	return e.Resolve(id)
}

// InternAndSet is Intern followed by SetNodeType, the common pairing every
// checker rule performs.
func (e *TypeEnvironment) InternAndSet(node ast.NodeID, t Type) TypeID {
	id := e.Intern(t)
	e.SetNodeType(node, id)
	return id
}
