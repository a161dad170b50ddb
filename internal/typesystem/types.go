// Package typesystem implements the structural type lattice: a closed tagged
// sum of types, an interning TypeEnvironment, subtyping, and unification
// (spec §3.4, §4.7).
package typesystem

import "strings"

// Type is the common interface every concrete type shape implements. The
// sum is closed — callers switch over the concrete shapes below, never
// over an open interface hierarchy.
type Type interface {
	// String returns a canonical textual form. Two types denote the same
	// value iff their String() outputs are equal; the TypeEnvironment uses
	// this as its interning key.
	String() string
}

type AnyType struct{}
type BoolType struct{}
type BytesType struct{}
type FloatType struct{}
type IntType struct{}
type NoneType struct{}
type NeverType struct{}
type StrType struct{}

func (AnyType) String() string   { return "Any" }
func (BoolType) String() string  { return "Bool" }
func (BytesType) String() string { return "Bytes" }
func (FloatType) String() string { return "Float" }
func (IntType) String() string   { return "Int" }
func (NoneType) String() string  { return "None" }
func (NeverType) String() string { return "Never" }
func (StrType) String() string   { return "Str" }

// ListType is `List(Elem)`.
type ListType struct{ Elem Type }

func (t ListType) String() string { return "List[" + t.Elem.String() + "]" }

// SetType is `Set(Elem)`.
type SetType struct{ Elem Type }

func (t SetType) String() string { return "Set[" + t.Elem.String() + "]" }

// DictType is `Dict(Key, Value)`.
type DictType struct{ Key, Value Type }

func (t DictType) String() string { return "Dict[" + t.Key.String() + ", " + t.Value.String() + "]" }

// TupleType is `Tuple(T*)`, length-exact.
type TupleType struct{ Elements []Type }

func (t TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "Tuple[" + strings.Join(parts, ", ") + "]"
}

// OptionalType is `Optional(Elem)`, i.e. `Elem | None`.
type OptionalType struct{ Elem Type }

func (t OptionalType) String() string { return "Optional[" + t.Elem.String() + "]" }

// UnionType is `Union(Members+)`, at least two members by construction
// (MakeUnion collapses singleton and duplicate cases).
type UnionType struct{ Members []Type }

func (t UnionType) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return "Union[" + strings.Join(parts, " | ") + "]"
}

// FunctionType is `Function{params, ret}`.
type FunctionType struct {
	Params []Type
	Ret    Type
}

func (t FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Ret.String()
}

// ClassType is `Class{name, type_params}`. TypeParams holds already-interned
// TypeIDs for a generic class's parameterization; it is empty for a
// non-generic class or when an annotation's type arguments could not be
// resolved (spec §4.6 treats `base[args]` on a non-builtin base as "an
// as-yet-unresolved class parameterization — recorded but not further
// checked", which this field exists to record).
type ClassType struct {
	Name       string
	TypeParams []TypeID
}

func (t ClassType) String() string {
	if len(t.TypeParams) == 0 {
		return "Class<" + t.Name + ">"
	}
	parts := make([]string, len(t.TypeParams))
	for i, p := range t.TypeParams {
		parts[i] = p.String()
	}
	return "Class<" + t.Name + ">[" + strings.Join(parts, ", ") + "]"
}

// TypeVar is an unresolved/free type placeholder. The core constraint
// solver described in spec §4.8 is permitted to be inert at the current
// feature bar, so TypeVar values mostly flow through unify() unresolved
// rather than being bound by a substitution.
type TypeVar struct{ Name string }

func (t TypeVar) String() string { return "'" + t.Name }

// typesEqual reports whether a and b denote the same type by canonical
// string form.
func typesEqual(a, b Type) bool {
	return a.String() == b.String()
}
