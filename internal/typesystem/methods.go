package typesystem

// LookupMethod resolves name as a method on t, returning its function
// signature. Only the built-in container/string types carry a fixed method
// table (spec §4.7); Class types are resolved against the symbol table by
// the analyzer instead, so LookupMethod only ever answers for List, Set,
// Dict, and Str.
func LookupMethod(t Type, name string) (FunctionType, bool) {
	switch tt := t.(type) {
	case ListType:
		return listMethod(tt, name)
	case SetType:
		return setMethod(tt, name)
	case DictType:
		return dictMethod(tt, name)
	case StrType:
		return strMethod(name)
	default:
		return FunctionType{}, false
	}
}

func listMethod(t ListType, name string) (FunctionType, bool) {
	elem := t.Elem
	self := t
	switch name {
	case "append":
		return FunctionType{Params: []Type{elem}, Ret: NoneType{}}, true
	case "extend":
		return FunctionType{Params: []Type{self}, Ret: NoneType{}}, true
	case "insert":
		return FunctionType{Params: []Type{IntType{}, elem}, Ret: NoneType{}}, true
	case "remove":
		return FunctionType{Params: []Type{elem}, Ret: NoneType{}}, true
	case "pop":
		return FunctionType{Params: nil, Ret: elem}, true
	case "index":
		return FunctionType{Params: []Type{elem}, Ret: IntType{}}, true
	case "count":
		return FunctionType{Params: []Type{elem}, Ret: IntType{}}, true
	case "clear", "reverse", "sort":
		return FunctionType{Params: nil, Ret: NoneType{}}, true
	case "copy":
		return FunctionType{Params: nil, Ret: self}, true
	default:
		return FunctionType{}, false
	}
}

func setMethod(t SetType, name string) (FunctionType, bool) {
	elem := t.Elem
	self := t
	switch name {
	case "add", "discard", "remove":
		return FunctionType{Params: []Type{elem}, Ret: NoneType{}}, true
	case "clear":
		return FunctionType{Params: nil, Ret: NoneType{}}, true
	case "union", "intersection", "difference", "symmetric_difference":
		return FunctionType{Params: []Type{self}, Ret: self}, true
	case "issubset", "issuperset", "isdisjoint":
		return FunctionType{Params: []Type{self}, Ret: BoolType{}}, true
	default:
		return FunctionType{}, false
	}
}

func dictMethod(t DictType, name string) (FunctionType, bool) {
	key, val := t.Key, t.Value
	self := t
	switch name {
	case "get":
		return FunctionType{Params: []Type{key}, Ret: OptionalType{Elem: val}}, true
	case "keys":
		return FunctionType{Params: nil, Ret: ListType{Elem: key}}, true
	case "values":
		return FunctionType{Params: nil, Ret: ListType{Elem: val}}, true
	case "items":
		return FunctionType{Params: nil, Ret: ListType{Elem: TupleType{Elements: []Type{key, val}}}}, true
	case "pop":
		return FunctionType{Params: []Type{key}, Ret: val}, true
	case "popitem":
		return FunctionType{Params: nil, Ret: TupleType{Elements: []Type{key, val}}}, true
	case "setdefault":
		return FunctionType{Params: []Type{key, val}, Ret: val}, true
	case "update":
		return FunctionType{Params: []Type{self}, Ret: NoneType{}}, true
	case "clear":
		return FunctionType{Params: nil, Ret: NoneType{}}, true
	case "copy":
		return FunctionType{Params: nil, Ret: self}, true
	default:
		return FunctionType{}, false
	}
}

func strMethod(name string) (FunctionType, bool) {
	str := StrType{}
	switch name {
	case "upper", "lower", "strip", "lstrip", "rstrip", "title", "capitalize", "swapcase":
		return FunctionType{Params: nil, Ret: str}, true
	case "find", "index", "count", "rfind", "rindex":
		return FunctionType{Params: []Type{str}, Ret: IntType{}}, true
	case "startswith", "endswith":
		return FunctionType{Params: []Type{str}, Ret: BoolType{}}, true
	case "split", "rsplit", "splitlines":
		return FunctionType{Params: []Type{str}, Ret: ListType{Elem: str}}, true
	case "join":
		return FunctionType{Params: []Type{ListType{Elem: str}}, Ret: str}, true
	case "replace":
		return FunctionType{Params: []Type{str, str}, Ret: str}, true
	case "format":
		return FunctionType{Params: nil, Ret: str}, true
	case "isdigit", "isalpha", "isalnum", "isspace", "isupper", "islower":
		return FunctionType{Params: nil, Ret: BoolType{}}, true
	default:
		return FunctionType{}, false
	}
}
