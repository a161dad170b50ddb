package typesystem

import "testing"

func TestIsSubtypeReflexive(t *testing.T) {
	types := []Type{
		IntType{}, FloatType{}, StrType{}, BoolType{}, BytesType{}, NoneType{},
		ListType{Elem: IntType{}}, DictType{Key: StrType{}, Value: IntType{}},
		OptionalType{Elem: IntType{}}, ClassType{Name: "Foo"},
	}
	for _, ty := range types {
		if !IsSubtype(ty, ty) {
			t.Errorf("IsSubtype(%s, %s) = false, want true (reflexivity)", ty, ty)
		}
	}
}

func TestIsSubtypeRules(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"Never subtype of anything", NeverType{}, IntType{}, true},
		{"anything subtype of Any", ClassType{Name: "Foo"}, AnyType{}, true},
		{"None subtype of Optional", NoneType{}, OptionalType{Elem: IntType{}}, true},
		{"T subtype of Optional(T)", IntType{}, OptionalType{Elem: IntType{}}, true},
		{"T not subtype of Optional(other)", IntType{}, OptionalType{Elem: StrType{}}, false},
		{"member subtype of Union", IntType{}, UnionType{Members: []Type{IntType{}, StrType{}}}, true},
		{"non-member not subtype of Union", BoolType{}, UnionType{Members: []Type{IntType{}, StrType{}}}, false},
		{"covariant List", ListType{Elem: NeverType{}}, ListType{Elem: IntType{}}, true},
		{"Int not subtype of Float by default subtyping", IntType{}, FloatType{}, false},
		{"Dict covariant on key and value", DictType{Key: NeverType{}, Value: NeverType{}}, DictType{Key: IntType{}, Value: StrType{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSubtype(tt.a, tt.b); got != tt.want {
				t.Errorf("IsSubtype(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompatibleIsSymmetric(t *testing.T) {
	pairs := [][2]Type{
		{IntType{}, FloatType{}},
		{IntType{}, AnyType{}},
		{NoneType{}, OptionalType{Elem: StrType{}}},
		{ListType{Elem: IntType{}}, ListType{Elem: IntType{}}},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		if Compatible(a, b) != Compatible(b, a) {
			t.Errorf("Compatible(%s,%s)=%v but Compatible(%s,%s)=%v", a, b, Compatible(a, b), b, a, Compatible(b, a))
		}
	}
}
