package ast

import (
	"encoding/json"
	"fmt"
)

// wireNode is the on-the-wire shape of one node in a JSON AST fixture: a
// "kind" discriminator plus every field any node shape might carry, most
// left as their zero value for a given kind. Child nodes nest as wireNode
// objects rather than integer IDs — a JSON fixture describes a literal
// tree, not a pre-allocated arena, so there is nothing for an integer ID
// to index into until DecodeJSON builds the arena itself.
type wireNode struct {
	Kind string `json:"kind"`

	Span Span `json:"span"`

	Name    string   `json:"name,omitempty"`
	Names   []string `json:"names,omitempty"`
	Op      string   `json:"op,omitempty"`
	Module  string   `json:"module,omitempty"`
	Alias   string   `json:"alias,omitempty"`
	IsAsync bool     `json:"is_async,omitempty"`

	IntValue    *int64   `json:"value_int,omitempty"`
	FloatValue  *float64 `json:"value_float,omitempty"`
	StringValue *string  `json:"value_string,omitempty"`
	BytesValue  []byte   `json:"value_bytes,omitempty"`
	BoolValue   *bool    `json:"value_bool,omitempty"`

	Value      *wireNode   `json:"value,omitempty"`
	Left       *wireNode   `json:"left,omitempty"`
	Right      *wireNode   `json:"right,omitempty"`
	Operand    *wireNode   `json:"operand,omitempty"`
	Callee     *wireNode   `json:"callee,omitempty"`
	Target     *wireNode   `json:"target,omitempty"`
	Index      *wireNode   `json:"index,omitempty"`
	Body       []*wireNode `json:"body,omitempty"`
	ElseBody   []*wireNode `json:"else_body,omitempty"`
	Elements   []*wireNode `json:"elements,omitempty"`
	Args       []*wireNode `json:"args,omitempty"`
	Statements []*wireNode `json:"statements,omitempty"`
	Parameters []*wireNode `json:"parameters,omitempty"`
	Decorators []*wireNode `json:"decorators,omitempty"`
	Bases      []*wireNode `json:"bases,omitempty"`

	Condition    *wireNode       `json:"condition,omitempty"`
	Test         *wireNode       `json:"test,omitempty"`
	Iter         *wireNode       `json:"iter,omitempty"`
	ElifBranches []wireElif      `json:"elif_branches,omitempty"`
	Entries      []wireDictEntry `json:"entries,omitempty"`

	TypeAnnotation *wireNode `json:"type_annotation,omitempty"`
	Default        *wireNode `json:"default,omitempty"`
	IsVariadic     bool      `json:"is_variadic,omitempty"`
	IsKeyword      bool      `json:"is_keyword,omitempty"`

	Attr string `json:"attr,omitempty"`

	ReturnType *wireNode `json:"return_type,omitempty"`

	Items    []wireWithItem     `json:"items,omitempty"`
	Handlers []wireExceptClause `json:"handlers,omitempty"`
	OrElse   []*wireNode        `json:"or_else,omitempty"`
	Finally  []*wireNode        `json:"finally,omitempty"`

	ExcType *wireNode `json:"exc_type,omitempty"`

	ImportedNames []wireImportedName `json:"imported_names,omitempty"`

	TypeArgs []*wireNode `json:"type_args,omitempty"`
	Types    []*wireNode `json:"types,omitempty"`
	Elem     *wireNode   `json:"elem,omitempty"`

	CompKind   string      `json:"comprehension_kind,omitempty"`
	Element    *wireNode   `json:"element,omitempty"`
	KeyExpr    *wireNode   `json:"key_expr,omitempty"`
	ValueExpr  *wireNode   `json:"value_expr,omitempty"`
	Conditions []*wireNode `json:"conditions,omitempty"`

	StarIndex int `json:"star_index,omitempty"`
}

type wireElif struct {
	Condition *wireNode   `json:"condition"`
	Body      []*wireNode `json:"body"`
}

type wireDictEntry struct {
	Key   *wireNode `json:"key"`
	Value *wireNode `json:"value"`
}

type wireWithItem struct {
	Context *wireNode `json:"context"`
	Target  *wireNode `json:"target,omitempty"`
}

type wireExceptClause struct {
	Span    Span        `json:"span"`
	ExcType *wireNode   `json:"exc_type,omitempty"`
	Name    string      `json:"name,omitempty"`
	Body    []*wireNode `json:"body"`
}

type wireImportedName struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// DecodeJSON parses a JSON AST fixture (the external parser's output
// contract: spec.md §6's build_ast boundary realized as "decode a pre-built
// tree") into a fresh Arena, returning the root node's ID.
func DecodeJSON(data []byte) (*Arena, NodeID, error) {
	var root wireNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, NodeID{}, fmt.Errorf("ast: decoding JSON fixture: %w", err)
	}
	a := NewArena()
	id, err := allocWire(a, &root)
	if err != nil {
		return nil, NodeID{}, err
	}
	return a, id, nil
}

// allocWire recursively allocates w's children, then w itself, into a.
func allocWire(a *Arena, w *wireNode) (NodeID, error) {
	if w == nil {
		return PlaceholderNodeID, nil
	}

	childID := func(c *wireNode) (NodeID, error) {
		if c == nil {
			return PlaceholderNodeID, nil
		}
		return allocWire(a, c)
	}
	childIDs := func(cs []*wireNode) ([]NodeID, error) {
		ids := make([]NodeID, 0, len(cs))
		for _, c := range cs {
			id, err := allocWire(a, c)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	switch w.Kind {
	case "Module":
		stmts, err := childIDs(w.Statements)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&Module{Name: w.Name, Statements: stmts}), nil

	case "VariableExpr":
		return a.Alloc(&VariableExpr{Span: w.Span, Name: w.Name}), nil
	case "IntLiteral":
		v := int64(0)
		if w.IntValue != nil {
			v = *w.IntValue
		}
		return a.Alloc(&IntLiteral{Span: w.Span, Value: v}), nil
	case "FloatLiteral":
		v := float64(0)
		if w.FloatValue != nil {
			v = *w.FloatValue
		}
		return a.Alloc(&FloatLiteral{Span: w.Span, Value: v}), nil
	case "StringLiteral":
		v := ""
		if w.StringValue != nil {
			v = *w.StringValue
		}
		return a.Alloc(&StringLiteral{Span: w.Span, Value: v}), nil
	case "BytesLiteral":
		return a.Alloc(&BytesLiteral{Span: w.Span, Value: w.BytesValue}), nil
	case "BoolLiteral":
		v := false
		if w.BoolValue != nil {
			v = *w.BoolValue
		}
		return a.Alloc(&BoolLiteral{Span: w.Span, Value: v}), nil
	case "NoneLiteral":
		return a.Alloc(&NoneLiteral{Span: w.Span}), nil

	case "ListExpr":
		elems, err := childIDs(w.Elements)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&ListExpr{Span: w.Span, Elements: elems}), nil
	case "TupleExpr":
		elems, err := childIDs(w.Elements)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&TupleExpr{Span: w.Span, Elements: elems}), nil
	case "SetExpr":
		elems, err := childIDs(w.Elements)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&SetExpr{Span: w.Span, Elements: elems}), nil
	case "DictExpr":
		entries := make([]DictEntry, 0, len(w.Entries))
		for _, e := range w.Entries {
			k, err := childID(e.Key)
			if err != nil {
				return NodeID{}, err
			}
			v, err := childID(e.Value)
			if err != nil {
				return NodeID{}, err
			}
			entries = append(entries, DictEntry{Key: k, Value: v})
		}
		return a.Alloc(&DictExpr{Span: w.Span, Entries: entries}), nil

	case "BinaryExpr":
		left, err := childID(w.Left)
		if err != nil {
			return NodeID{}, err
		}
		right, err := childID(w.Right)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&BinaryExpr{Span: w.Span, Op: w.Op, Left: left, Right: right}), nil
	case "UnaryExpr":
		operand, err := childID(w.Operand)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&UnaryExpr{Span: w.Span, Op: w.Op, Operand: operand}), nil
	case "CallExpr":
		callee, err := childID(w.Callee)
		if err != nil {
			return NodeID{}, err
		}
		args, err := childIDs(w.Args)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&CallExpr{Span: w.Span, Callee: callee, Args: args}), nil
	case "AttributeExpr":
		value, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&AttributeExpr{Span: w.Span, Value: value, Attr: w.Attr}), nil
	case "SubscriptExpr":
		value, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		index, err := childID(w.Index)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&SubscriptExpr{Span: w.Span, Value: value, Index: index}), nil
	case "AssignmentExpr":
		target, err := childID(w.Target)
		if err != nil {
			return NodeID{}, err
		}
		value, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&AssignmentExpr{Span: w.Span, Target: target, Value: value}), nil
	case "LambdaExpr":
		params, err := childIDs(w.Parameters)
		if err != nil {
			return NodeID{}, err
		}
		body, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&LambdaExpr{Span: w.Span, Parameters: params, Body: body}), nil
	case "Comprehension":
		element, err := childID(w.Element)
		if err != nil {
			return NodeID{}, err
		}
		keyExpr, err := childID(w.KeyExpr)
		if err != nil {
			return NodeID{}, err
		}
		valueExpr, err := childID(w.ValueExpr)
		if err != nil {
			return NodeID{}, err
		}
		target, err := childID(w.Target)
		if err != nil {
			return NodeID{}, err
		}
		iter, err := childID(w.Iter)
		if err != nil {
			return NodeID{}, err
		}
		conds, err := childIDs(w.Conditions)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&Comprehension{
			Span: w.Span, Kind: comprehensionKindFromString(w.CompKind),
			Element: element, KeyExpr: keyExpr, ValueExpr: valueExpr,
			Target: target, Iter: iter, Conditions: conds,
		}), nil

	case "BasicIdent":
		return a.Alloc(&BasicIdent{Span: w.Span, Name: w.Name}), nil
	case "ParameterIdent":
		typeAnn, err := childID(w.TypeAnnotation)
		if err != nil {
			return NodeID{}, err
		}
		def, err := childID(w.Default)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&ParameterIdent{
			Span: w.Span, Name: w.Name, TypeAnnotation: typeAnn, Default: def,
			IsVariadic: w.IsVariadic, IsKeyword: w.IsKeyword,
		}), nil

	case "WildcardPattern":
		return a.Alloc(&WildcardPattern{Span: w.Span}), nil
	case "IdentifierPattern":
		return a.Alloc(&IdentifierPattern{Span: w.Span, Name: w.Name}), nil
	case "TuplePattern":
		elems, err := childIDs(w.Elements)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&TuplePattern{Span: w.Span, Elements: elems, StarIndex: w.StarIndex}), nil

	case "NameType":
		return a.Alloc(&NameType{Span: w.Span, Name: w.Name}), nil
	case "GenericType":
		args, err := childIDs(w.TypeArgs)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&GenericType{Span: w.Span, Name: w.Name, TypeArgs: args}), nil
	case "UnionType":
		types, err := childIDs(w.Types)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&UnionType{Span: w.Span, Types: types}), nil
	case "OptionalType":
		elem, err := childID(w.Elem)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&OptionalType{Span: w.Span, Elem: elem}), nil
	case "CallableType":
		params, err := childIDs(w.Parameters)
		if err != nil {
			return NodeID{}, err
		}
		ret, err := childID(w.ReturnType)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&CallableType{Span: w.Span, Parameters: params, ReturnType: ret}), nil

	case "ExprStmt":
		expr, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&ExprStmt{Span: w.Span, Expr: expr}), nil
	case "AssignmentStmt":
		target, err := childID(w.Target)
		if err != nil {
			return NodeID{}, err
		}
		value, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&AssignmentStmt{Span: w.Span, Target: target, Value: value}), nil
	case "AugAssignStmt":
		target, err := childID(w.Target)
		if err != nil {
			return NodeID{}, err
		}
		value, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&AugAssignStmt{Span: w.Span, Op: w.Op, Target: target, Value: value}), nil
	case "IfStmt":
		cond, err := childID(w.Condition)
		if err != nil {
			return NodeID{}, err
		}
		body, err := childIDs(w.Body)
		if err != nil {
			return NodeID{}, err
		}
		elseBody, err := childIDs(w.ElseBody)
		if err != nil {
			return NodeID{}, err
		}
		elifs := make([]ElifBranch, 0, len(w.ElifBranches))
		for _, e := range w.ElifBranches {
			ec, err := childID(e.Condition)
			if err != nil {
				return NodeID{}, err
			}
			eb, err := childIDs(e.Body)
			if err != nil {
				return NodeID{}, err
			}
			elifs = append(elifs, ElifBranch{Condition: ec, Body: eb})
		}
		return a.Alloc(&IfStmt{Span: w.Span, Condition: cond, Body: body, ElifBranches: elifs, ElseBody: elseBody}), nil
	case "WhileStmt":
		test, err := childID(w.Test)
		if err != nil {
			return NodeID{}, err
		}
		body, err := childIDs(w.Body)
		if err != nil {
			return NodeID{}, err
		}
		elseBody, err := childIDs(w.ElseBody)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&WhileStmt{Span: w.Span, Test: test, Body: body, ElseBody: elseBody}), nil
	case "ForStmt":
		target, err := childID(w.Target)
		if err != nil {
			return NodeID{}, err
		}
		iter, err := childID(w.Iter)
		if err != nil {
			return NodeID{}, err
		}
		body, err := childIDs(w.Body)
		if err != nil {
			return NodeID{}, err
		}
		elseBody, err := childIDs(w.ElseBody)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&ForStmt{Span: w.Span, Target: target, Iter: iter, Body: body, ElseBody: elseBody, IsAsync: w.IsAsync}), nil
	case "ReturnStmt":
		value, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&ReturnStmt{Span: w.Span, Value: value}), nil
	case "BreakStmt":
		return a.Alloc(&BreakStmt{Span: w.Span}), nil
	case "ContinueStmt":
		return a.Alloc(&ContinueStmt{Span: w.Span}), nil
	case "PassStmt":
		return a.Alloc(&PassStmt{Span: w.Span}), nil
	case "RaiseStmt":
		value, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&RaiseStmt{Span: w.Span, Value: value}), nil
	case "GlobalStmt":
		return a.Alloc(&GlobalStmt{Span: w.Span, Names: w.Names}), nil
	case "NonlocalStmt":
		return a.Alloc(&NonlocalStmt{Span: w.Span, Names: w.Names}), nil
	case "WithStmt":
		items := make([]WithItem, 0, len(w.Items))
		for _, it := range w.Items {
			ctx, err := childID(it.Context)
			if err != nil {
				return NodeID{}, err
			}
			tgt, err := childID(it.Target)
			if err != nil {
				return NodeID{}, err
			}
			items = append(items, WithItem{Context: ctx, Target: tgt})
		}
		body, err := childIDs(w.Body)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&WithStmt{Span: w.Span, Items: items, Body: body, IsAsync: w.IsAsync}), nil
	case "TryStmt":
		body, err := childIDs(w.Body)
		if err != nil {
			return NodeID{}, err
		}
		handlers := make([]*ExceptHandler, 0, len(w.Handlers))
		for _, h := range w.Handlers {
			excType, err := childID(h.ExcType)
			if err != nil {
				return NodeID{}, err
			}
			hBody, err := childIDs(h.Body)
			if err != nil {
				return NodeID{}, err
			}
			handlers = append(handlers, &ExceptHandler{Span: h.Span, ExcType: excType, Name: h.Name, Body: hBody})
		}
		orElse, err := childIDs(w.OrElse)
		if err != nil {
			return NodeID{}, err
		}
		finally, err := childIDs(w.Finally)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&TryStmt{Span: w.Span, Body: body, Handlers: handlers, OrElse: orElse, Finally: finally}), nil
	case "ImportStmt":
		return a.Alloc(&ImportStmt{Span: w.Span, Module: w.Module, Alias: w.Alias}), nil
	case "FromImportStmt":
		names := make([]ImportedName, 0, len(w.ImportedNames))
		for _, n := range w.ImportedNames {
			names = append(names, ImportedName{Name: n.Name, Alias: n.Alias})
		}
		return a.Alloc(&FromImportStmt{Span: w.Span, Module: w.Module, Names: names}), nil

	case "FunctionDecl":
		params, err := childIDs(w.Parameters)
		if err != nil {
			return NodeID{}, err
		}
		ret, err := childID(w.ReturnType)
		if err != nil {
			return NodeID{}, err
		}
		body, err := childIDs(w.Body)
		if err != nil {
			return NodeID{}, err
		}
		decorators, err := childIDs(w.Decorators)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&FunctionDecl{
			Span: w.Span, Name: w.Name, Parameters: params, ReturnType: ret,
			Body: body, Decorators: decorators, IsAsync: w.IsAsync,
		}), nil
	case "ClassDecl":
		bases, err := childIDs(w.Bases)
		if err != nil {
			return NodeID{}, err
		}
		body, err := childIDs(w.Body)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&ClassDecl{Span: w.Span, Name: w.Name, Bases: bases, Body: body}), nil
	case "VariableDecl":
		typeAnn, err := childID(w.TypeAnnotation)
		if err != nil {
			return NodeID{}, err
		}
		value, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&VariableDecl{Span: w.Span, Name: w.Name, TypeAnnotation: typeAnn, Value: value}), nil
	case "TypeDecl":
		value, err := childID(w.Value)
		if err != nil {
			return NodeID{}, err
		}
		return a.Alloc(&TypeDecl{Span: w.Span, Name: w.Name, Value: value}), nil

	default:
		return NodeID{}, fmt.Errorf("ast: unrecognized node kind %q", w.Kind)
	}
}

func comprehensionKindFromString(s string) ComprehensionKind {
	switch s {
	case "set":
		return SetComprehensionKind
	case "dict":
		return DictComprehensionKind
	case "generator":
		return GeneratorComprehensionKind
	default:
		return ListComprehensionKind
	}
}
