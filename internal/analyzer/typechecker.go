package analyzer

import (
	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
	"github.com/typhon-lang/typhon-analyzer/internal/symbols"
	"github.com/typhon-lang/typhon-analyzer/internal/typesystem"
)

// TypeChecker is the C8 type checker: a third, bottom-up pass that infers a
// TypeID for every expression, checks assignment/return compatibility, and
// validates operators, attribute access, and calls against the structural
// type lattice (spec §4.8).
type TypeChecker struct {
	ast.BaseVisitor
	table *symbols.SymbolTable
	env   *typesystem.TypeEnvironment
	bag   *diagnostics.Bag

	// hasReturnType/returnType track the enclosing function's declared
	// return type, mirroring the reference checker's single save/restore
	// slot — there is never more than one enclosing function body active
	// at a time along a given walk.
	hasReturnType bool
	returnType    typesystem.Type
}

// Check runs the type checker over moduleID.
func Check(a *ast.Arena, moduleID ast.NodeID, table *symbols.SymbolTable, env *typesystem.TypeEnvironment, bag *diagnostics.Bag) error {
	c := &TypeChecker{BaseVisitor: ast.BaseVisitor{Arena: a}, table: table, env: env, bag: bag}
	return ast.Walk(a, c, moduleID)
}

// inferType returns expr's type, computing and caching it on first visit.
// Every expression shape not explicitly handled below defaults to Any.
func (c *TypeChecker) inferType(expr ast.NodeID) typesystem.Type {
	if expr.IsPlaceholder() {
		return typesystem.AnyType{}
	}
	if id, ok := c.env.NodeType(expr); ok {
		return c.env.Resolve(id)
	}

	n, err := c.Arena.Get(expr)
	if err != nil {
		return typesystem.AnyType{}
	}

	var ty typesystem.Type
	switch e := n.(type) {
	case *ast.IntLiteral:
		ty = typesystem.IntType{}
	case *ast.FloatLiteral:
		ty = typesystem.FloatType{}
	case *ast.StringLiteral:
		ty = typesystem.StrType{}
	case *ast.BytesLiteral:
		ty = typesystem.BytesType{}
	case *ast.BoolLiteral:
		ty = typesystem.BoolType{}
	case *ast.NoneLiteral:
		ty = typesystem.NoneType{}
	case *ast.VariableExpr:
		ty = c.inferVariableType(e.Name)
	case *ast.ListExpr:
		ty = c.inferSequenceType(e.Elements, func(elem typesystem.Type) typesystem.Type {
			return typesystem.ListType{Elem: elem}
		})
	case *ast.SetExpr:
		ty = c.inferSequenceType(e.Elements, func(elem typesystem.Type) typesystem.Type {
			return typesystem.SetType{Elem: elem}
		})
	case *ast.TupleExpr:
		elems := make([]typesystem.Type, len(e.Elements))
		for i, id := range e.Elements {
			elems[i] = c.inferType(id)
		}
		ty = typesystem.TupleType{Elements: elems}
	case *ast.DictExpr:
		ty = c.inferDictType(e)
	case *ast.BinaryExpr:
		ty = c.inferBinaryType(expr, e)
	case *ast.UnaryExpr:
		ty = c.inferUnaryType(expr, e)
	case *ast.AttributeExpr:
		ty = c.inferAttributeType(expr, e)
	case *ast.SubscriptExpr:
		ty = c.inferSubscriptType(e)
	case *ast.CallExpr:
		ty = c.inferCallType(e)
	case *ast.AssignmentExpr:
		ty = c.inferType(e.Value)
	case *ast.LambdaExpr:
		ty = typesystem.AnyType{}
	case *ast.Comprehension:
		ty = typesystem.AnyType{}
	default:
		ty = typesystem.AnyType{}
	}

	c.env.InternAndSet(expr, ty)
	return ty
}

func (c *TypeChecker) inferSequenceType(elements []ast.NodeID, wrap func(typesystem.Type) typesystem.Type) typesystem.Type {
	if len(elements) == 0 {
		return wrap(typesystem.AnyType{})
	}
	elem := c.inferType(elements[0])
	for _, id := range elements[1:] {
		elem = typesystem.Unify(elem, c.inferType(id))
	}
	return wrap(elem)
}

func (c *TypeChecker) inferDictType(e *ast.DictExpr) typesystem.Type {
	if len(e.Entries) == 0 {
		return typesystem.DictType{Key: typesystem.AnyType{}, Value: typesystem.AnyType{}}
	}
	key := c.inferType(e.Entries[0].Key)
	val := c.inferType(e.Entries[0].Value)
	for _, entry := range e.Entries[1:] {
		key = typesystem.Unify(key, c.inferType(entry.Key))
		val = typesystem.Unify(val, c.inferType(entry.Value))
	}
	return typesystem.DictType{Key: key, Value: val}
}

// inferVariableType looks up name's defining symbol and returns the type
// recorded for its definition node, defaulting to Any when the symbol is
// unresolved (the resolver already reported UndefinedName) or untyped.
func (c *TypeChecker) inferVariableType(name string) typesystem.Type {
	sym, ok := c.table.LookupInChain(c.table.CurrentScope(), name)
	if !ok {
		return typesystem.AnyType{}
	}
	return c.env.TypeOf(sym.Definition)
}

// inferBinaryType implements spec §4.8's operator table.
func (c *TypeChecker) inferBinaryType(id ast.NodeID, e *ast.BinaryExpr) typesystem.Type {
	left := c.inferType(e.Left)
	right := c.inferType(e.Right)

	switch e.Op {
	case "+", "-", "*", "/", "//", "%", "**":
		return c.inferArithmeticType(e, left, right)

	case "==", "!=", "<", "<=", ">", ">=", "and", "or", "is", "is not", "in", "not in":
		return typesystem.BoolType{}

	case "&", "|", "^", "<<", ">>":
		_, leftInt := left.(typesystem.IntType)
		_, rightInt := right.(typesystem.IntType)
		if !leftInt || !rightInt {
			c.bag.Add(&diagnostics.InvalidOperator{Op: e.Op, LeftType: left.String(), RightType: right.String(), Location: e.Span})
			return typesystem.AnyType{}
		}
		return typesystem.IntType{}

	case "@":
		return typesystem.AnyType{}

	default:
		return typesystem.AnyType{}
	}
}

// inferArithmeticType implements spec §4.8's numeric/string/list promotion
// table. Any Any-participant short-circuits to Any; every other
// incompatible pairing reports InvalidOperator rather than silently
// degrading to Any (a deliberate tightening of the permissive reference
// behavior — see DESIGN.md's arithmetic-mismatch-strictness entry).
func (c *TypeChecker) inferArithmeticType(e *ast.BinaryExpr, left, right typesystem.Type) typesystem.Type {
	_, leftAny := left.(typesystem.AnyType)
	_, rightAny := right.(typesystem.AnyType)
	if leftAny || rightAny {
		return typesystem.AnyType{}
	}

	_, leftInt := left.(typesystem.IntType)
	_, rightInt := right.(typesystem.IntType)
	if leftInt && rightInt {
		return typesystem.IntType{}
	}

	_, leftFloat := left.(typesystem.FloatType)
	_, rightFloat := right.(typesystem.FloatType)
	if (leftFloat || leftInt) && (rightFloat || rightInt) && (leftFloat || rightFloat) {
		return typesystem.FloatType{}
	}

	if e.Op == "+" {
		_, leftStr := left.(typesystem.StrType)
		_, rightStr := right.(typesystem.StrType)
		if leftStr && rightStr {
			return typesystem.StrType{}
		}

		leftList, leftIsList := left.(typesystem.ListType)
		rightList, rightIsList := right.(typesystem.ListType)
		if leftIsList && rightIsList {
			return typesystem.ListType{Elem: typesystem.Unify(leftList.Elem, rightList.Elem)}
		}
	}

	c.bag.Add(&diagnostics.InvalidOperator{Op: e.Op, LeftType: left.String(), RightType: right.String(), Location: e.Span})
	return typesystem.AnyType{}
}

func (c *TypeChecker) inferUnaryType(id ast.NodeID, e *ast.UnaryExpr) typesystem.Type {
	operand := c.inferType(e.Operand)

	switch e.Op {
	case "+", "-":
		if isNumeric(operand) {
			return operand
		}
		if _, any := operand.(typesystem.AnyType); any {
			return typesystem.AnyType{}
		}
		c.bag.Add(&diagnostics.InvalidOperator{Op: e.Op, LeftType: operand.String(), Location: e.Span})
		return typesystem.AnyType{}

	case "not":
		return typesystem.BoolType{}

	case "~":
		if _, ok := operand.(typesystem.IntType); ok {
			return typesystem.IntType{}
		}
		if _, any := operand.(typesystem.AnyType); any {
			return typesystem.AnyType{}
		}
		c.bag.Add(&diagnostics.InvalidOperator{Op: e.Op, LeftType: operand.String(), Location: e.Span})
		return typesystem.AnyType{}

	default:
		return typesystem.AnyType{}
	}
}

func isNumeric(t typesystem.Type) bool {
	switch t.(type) {
	case typesystem.IntType, typesystem.FloatType:
		return true
	default:
		return false
	}
}

// inferAttributeType consults the built-in method table first, then the
// defining class's own body scope for a user-defined attribute or method —
// a capability the reference checker never had, since it consulted only a
// fixed method table and nothing for user classes.
func (c *TypeChecker) inferAttributeType(id ast.NodeID, e *ast.AttributeExpr) typesystem.Type {
	base := c.inferType(e.Value)

	if _, any := base.(typesystem.AnyType); any {
		return typesystem.AnyType{}
	}

	if fn, ok := typesystem.LookupMethod(base, e.Attr); ok {
		return fn
	}

	if class, ok := base.(typesystem.ClassType); ok {
		if ty, ok := c.lookupClassMember(class.Name, e.Attr); ok {
			return ty
		}
	}

	c.bag.Add(&diagnostics.AttributeError{TypeName: sourceTypeName(base), Attribute: e.Attr, Location: e.Span})
	return typesystem.AnyType{}
}

// sourceTypeName renders t the way it would have been spelled in a type
// annotation, rather than typesystem.Type.String()'s internal capitalized
// form (e.g. "str", not "Str"). Composite and user-defined types have no
// single source spelling, so they fall back to String().
func sourceTypeName(t typesystem.Type) string {
	switch t.(type) {
	case typesystem.IntType:
		return "int"
	case typesystem.FloatType:
		return "float"
	case typesystem.StrType:
		return "str"
	case typesystem.BoolType:
		return "bool"
	case typesystem.BytesType:
		return "bytes"
	case typesystem.NoneType:
		return "None"
	default:
		return t.String()
	}
}

// lookupClassMember finds className's own ClassDecl via the module-scope
// symbol table and looks up attr directly in its body scope.
func (c *TypeChecker) lookupClassMember(className, attr string) (typesystem.Type, bool) {
	classSym, ok := c.table.LookupInChain(c.table.CurrentScope(), className)
	if !ok || classSym.Kind != symbols.SymbolClass {
		return nil, false
	}
	scope, ok := c.table.ScopeOf(classSym.Definition)
	if !ok {
		return nil, false
	}
	member, ok := c.table.LookupInScope(scope, attr)
	if !ok {
		return nil, false
	}
	return c.env.TypeOf(member.Definition), true
}

func (c *TypeChecker) inferSubscriptType(e *ast.SubscriptExpr) typesystem.Type {
	base := c.inferType(e.Value)
	c.inferType(e.Index)

	switch t := base.(type) {
	case typesystem.ListType:
		return t.Elem
	case typesystem.DictType:
		// Simplified per spec §4.8: key-index refinement is not implemented.
		return typesystem.AnyType{}
	case typesystem.StrType:
		return typesystem.StrType{}
	case typesystem.TupleType:
		return typesystem.AnyType{}
	default:
		return typesystem.AnyType{}
	}
}

func (c *TypeChecker) inferCallType(e *ast.CallExpr) typesystem.Type {
	// A method call's attribute lookup must happen before the generic
	// callee inference below, otherwise an unresolved or invalid method
	// would fall through to NotCallable instead of AttributeError.
	if attr, err := c.Arena.Get(e.Callee); err == nil {
		if attrExpr, ok := attr.(*ast.AttributeExpr); ok {
			ret, handled := c.inferMethodCallType(attrExpr)
			for _, arg := range e.Args {
				c.inferType(arg)
			}
			if handled {
				return ret
			}
		}
	}

	callee := c.inferType(e.Callee)
	for _, arg := range e.Args {
		c.inferType(arg)
	}

	switch fn := callee.(type) {
	case typesystem.FunctionType:
		return fn.Ret
	case typesystem.AnyType:
		return typesystem.AnyType{}
	default:
		c.bag.Add(&diagnostics.NotCallable{TypeName: callee.String(), Location: e.Span})
		return typesystem.AnyType{}
	}
}

func (c *TypeChecker) VisitExprStmt(id ast.NodeID, n *ast.ExprStmt) error {
	c.inferType(n.Expr)
	return nil
}

// VisitVariableDecl checks a declared-and-initialized variable's value
// against its annotation, if any (spec §4.8).
func (c *TypeChecker) VisitVariableDecl(id ast.NodeID, n *ast.VariableDecl) error {
	if !n.HasValue() {
		return nil
	}
	valueType := c.inferType(n.Value)
	if n.TypeAnnotation.IsPlaceholder() {
		c.env.InternAndSet(id, valueType)
		return nil
	}
	declared := c.env.TypeOf(id)
	if _, any := declared.(typesystem.AnyType); any {
		return nil
	}
	if _, any := valueType.(typesystem.AnyType); any {
		return nil
	}
	if !typesystem.IsSubtype(valueType, declared) {
		c.bag.Add(&diagnostics.TypeMismatch{Expected: declared.String(), Found: valueType.String(), Location: n.Span})
	}
	return nil
}

// VisitAssignmentStmt records the value's inferred type on the target node
// itself (spec §4.8). inferVariableType resolves a variable's type through
// sym.Definition, which the collector sets to the target's own NodeID for a
// first binding, so this is where that type becomes visible; a later
// assignment to an already-declared name writes its type on a different
// target node each time and leaves sym.Definition, and so the declared type,
// untouched.
func (c *TypeChecker) VisitAssignmentStmt(id ast.NodeID, n *ast.AssignmentStmt) error {
	valueType := c.inferType(n.Value)
	c.env.InternAndSet(n.Target, valueType)
	return nil
}

func (c *TypeChecker) VisitAugAssignStmt(id ast.NodeID, n *ast.AugAssignStmt) error {
	c.inferType(n.Target)
	c.inferType(n.Value)
	return nil
}

// VisitReturnStmt checks a return expression against the enclosing
// function's declared return type, when one was annotated.
func (c *TypeChecker) VisitReturnStmt(id ast.NodeID, n *ast.ReturnStmt) error {
	var found typesystem.Type = typesystem.NoneType{}
	if n.HasValue() {
		found = c.inferType(n.Value)
	}
	if !c.hasReturnType {
		return nil
	}
	if _, any := c.returnType.(typesystem.AnyType); any {
		return nil
	}
	if _, any := found.(typesystem.AnyType); any {
		return nil
	}
	if !typesystem.IsSubtype(found, c.returnType) {
		c.bag.Add(&diagnostics.ReturnTypeMismatch{Expected: c.returnType.String(), Found: found.String(), Location: n.Span})
	}
	return nil
}

// VisitFunctionDecl re-enters the function's own scope (as the resolver
// did) so variable lookups inside its body resolve against its parameters
// and locals, and tracks its declared return type for VisitReturnStmt.
func (c *TypeChecker) VisitFunctionDecl(id ast.NodeID, n *ast.FunctionDecl) error {
	for _, paramID := range n.Parameters {
		p, err := c.Arena.Get(paramID)
		if err != nil {
			continue
		}
		if param, ok := p.(*ast.ParameterIdent); ok && param.HasDefault() {
			c.inferType(param.Default)
		}
	}

	savedHas, savedRet := c.hasReturnType, c.returnType
	c.hasReturnType = !n.ReturnType.IsPlaceholder()
	if sig, ok := c.env.TypeOf(id).(typesystem.FunctionType); ok {
		c.returnType = sig.Ret
	} else {
		c.returnType = typesystem.AnyType{}
	}

	scope, ok := c.table.ScopeOf(id)
	if !ok {
		err := c.walkStatements(n.Body)
		c.hasReturnType, c.returnType = savedHas, savedRet
		return err
	}
	c.table.EnterScope(scope)
	err := c.walkStatements(n.Body)
	c.table.ExitScope()
	c.hasReturnType, c.returnType = savedHas, savedRet
	return err
}

func (c *TypeChecker) VisitClassDecl(id ast.NodeID, n *ast.ClassDecl) error {
	scope, ok := c.table.ScopeOf(id)
	if !ok {
		return c.walkStatements(n.Body)
	}
	c.table.EnterScope(scope)
	err := c.walkStatements(n.Body)
	c.table.ExitScope()
	return err
}

func (c *TypeChecker) VisitLambdaExpr(id ast.NodeID, n *ast.LambdaExpr) error {
	scope, ok := c.table.ScopeOf(id)
	if !ok {
		c.inferType(n.Body)
		return nil
	}
	c.table.EnterScope(scope)
	c.inferType(n.Body)
	c.table.ExitScope()
	return nil
}

func (c *TypeChecker) walkStatements(stmts []ast.NodeID) error {
	for _, stmt := range stmts {
		if err := ast.Walk(c.Arena, c, stmt); err != nil {
			return err
		}
	}
	return nil
}

// blockScope mirrors the resolver's: re-enter the scope the collector
// associated with stmts' first statement before walking them.
func (c *TypeChecker) blockScope(stmts []ast.NodeID) error {
	if len(stmts) == 0 {
		return nil
	}
	scope, ok := c.table.ScopeOf(stmts[0])
	if !ok {
		return c.walkStatements(stmts)
	}
	c.table.EnterScope(scope)
	err := c.walkStatements(stmts)
	c.table.ExitScope()
	return err
}

func (c *TypeChecker) VisitWithStmt(id ast.NodeID, n *ast.WithStmt) error {
	for _, item := range n.Items {
		c.inferType(item.Context)
	}
	return c.blockScope(n.Body)
}

func (c *TypeChecker) VisitTryStmt(id ast.NodeID, n *ast.TryStmt) error {
	if err := c.blockScope(n.Body); err != nil {
		return err
	}
	for _, h := range n.Handlers {
		if err := c.blockScope(h.Body); err != nil {
			return err
		}
	}
	if err := c.blockScope(n.OrElse); err != nil {
		return err
	}
	return c.blockScope(n.Finally)
}

func (c *TypeChecker) VisitForStmt(id ast.NodeID, n *ast.ForStmt) error {
	c.inferType(n.Iter)
	if err := c.walkStatements(n.Body); err != nil {
		return err
	}
	return c.walkStatements(n.ElseBody)
}

// inferMethodCallType resolves a `base.attr(...)` call's return type.
// handled is false when base is Any, meaning the caller should fall back to
// generic callee inference instead.
func (c *TypeChecker) inferMethodCallType(attrExpr *ast.AttributeExpr) (ret typesystem.Type, handled bool) {
	base := c.inferType(attrExpr.Value)
	if _, any := base.(typesystem.AnyType); any {
		return typesystem.AnyType{}, false
	}

	if fn, ok := typesystem.LookupMethod(base, attrExpr.Attr); ok {
		return fn.Ret, true
	}

	if class, ok := base.(typesystem.ClassType); ok {
		if ty, ok := c.lookupClassMember(class.Name, attrExpr.Attr); ok {
			if fn, ok := ty.(typesystem.FunctionType); ok {
				return fn.Ret, true
			}
			return ty, true
		}
	}

	c.bag.Add(&diagnostics.AttributeError{TypeName: base.String(), Attribute: attrExpr.Attr, Location: attrExpr.Span})
	return typesystem.AnyType{}, true
}
