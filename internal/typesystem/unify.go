package typesystem

// Unify computes a type covering both a and b, per spec §4.7's numbered
// steps, tried in order:
//  1. Equal → either.
//  2. Either Any → the other.
//  3. Either Never → the other.
//  4. {Int, Float} in any order → Float.
//  5. A <: B → B; B <: A → A.
//  6. Fallback → Union(A, B).
//
// Unify never fails; the "Option<T>" in the spec's signature reflects the
// source language's result type, not a possibility of error here — every
// pair of constructible types unifies to something, in the worst case a
// Union.
func Unify(a, b Type) Type {
	if typesEqual(a, b) {
		return a
	}
	if _, ok := a.(AnyType); ok {
		return b
	}
	if _, ok := b.(AnyType); ok {
		return a
	}
	if _, ok := a.(NeverType); ok {
		return b
	}
	if _, ok := b.(NeverType); ok {
		return a
	}

	_, aIsInt := a.(IntType)
	_, bIsInt := b.(IntType)
	_, aIsFloat := a.(FloatType)
	_, bIsFloat := b.(FloatType)
	if (aIsInt && bIsFloat) || (aIsFloat && bIsInt) {
		return FloatType{}
	}

	if IsSubtype(a, b) {
		return b
	}
	if IsSubtype(b, a) {
		return a
	}

	return MakeUnion(a, b)
}

// MakeUnion builds a UnionType from members, flattening nested unions and
// deduplicating by canonical string form. A single surviving member is
// returned unwrapped rather than as a one-element UnionType.
func MakeUnion(members ...Type) Type {
	seen := make(map[string]bool)
	var flat []Type
	var add func(t Type)
	add = func(t Type) {
		if u, ok := t.(UnionType); ok {
			for _, m := range u.Members {
				add(m)
			}
			return
		}
		key := t.String()
		if seen[key] {
			return
		}
		seen[key] = true
		flat = append(flat, t)
	}
	for _, m := range members {
		add(m)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return UnionType{Members: flat}
}
