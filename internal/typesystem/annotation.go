package typesystem

import "github.com/typhon-lang/typhon-analyzer/internal/ast"

// builtinNames maps the bare-identifier spellings of primitive/top/bottom
// types recognized by annotation resolution (spec §4.6).
var builtinNames = map[string]Type{
	"int":   IntType{},
	"float": FloatType{},
	"str":   StrType{},
	"bool":  BoolType{},
	"bytes": BytesType{},
	"None":  NoneType{},
	"Any":   AnyType{},
	"Never": NeverType{},
}

// listNames, setNames and dictNames are the generic-application bases that resolve to a
// structural container rather than a ClassType (spec §4.6).
var listNames = map[string]bool{"list": true, "List": true}
var setNames = map[string]bool{"set": true, "Set": true}
var dictNames = map[string]bool{"dict": true, "Dict": true}

// ResolveAnnotation maps a Type-kind AST node to a typesystem.Type by the
// structural rewriting rules of spec §4.6. It is best-effort: any part that
// cannot be resolved (an invalid NodeID, an unrecognized shape, a
// generic-dict annotation missing its second argument) becomes Any and
// never produces an error — use-site errors are the type checker's job,
// not annotation resolution's (spec §4.6, last paragraph).
func ResolveAnnotation(a *ast.Arena, env *TypeEnvironment, id ast.NodeID) Type {
	n, err := a.Get(id)
	if err != nil {
		return AnyType{}
	}

	switch node := n.(type) {
	case *ast.NameType:
		if t, ok := builtinNames[node.Name]; ok {
			return t
		}
		return ClassType{Name: node.Name}

	case *ast.GenericType:
		switch {
		case listNames[node.Name]:
			if len(node.TypeArgs) != 1 {
				return AnyType{}
			}
			return ListType{Elem: ResolveAnnotation(a, env, node.TypeArgs[0])}
		case setNames[node.Name]:
			if len(node.TypeArgs) != 1 {
				return AnyType{}
			}
			return SetType{Elem: ResolveAnnotation(a, env, node.TypeArgs[0])}
		case dictNames[node.Name]:
			if len(node.TypeArgs) != 2 {
				return AnyType{}
			}
			return DictType{
				Key:   ResolveAnnotation(a, env, node.TypeArgs[0]),
				Value: ResolveAnnotation(a, env, node.TypeArgs[1]),
			}
		default:
			params := make([]TypeID, 0, len(node.TypeArgs))
			for _, arg := range node.TypeArgs {
				params = append(params, env.Intern(ResolveAnnotation(a, env, arg)))
			}
			return ClassType{Name: node.Name, TypeParams: params}
		}

	case *ast.UnionType:
		members := make([]Type, 0, len(node.Types))
		for _, m := range node.Types {
			members = append(members, ResolveAnnotation(a, env, m))
		}
		return MakeUnion(members...)

	case *ast.OptionalType:
		return OptionalType{Elem: ResolveAnnotation(a, env, node.Elem)}

	case *ast.CallableType:
		params := make([]Type, 0, len(node.Parameters))
		for _, p := range node.Parameters {
			params = append(params, ResolveAnnotation(a, env, p))
		}
		return FunctionType{Params: params, Ret: ResolveAnnotation(a, env, node.ReturnType)}

	default:
		return AnyType{}
	}
}
