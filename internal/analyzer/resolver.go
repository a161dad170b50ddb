package analyzer

import (
	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
	"github.com/typhon-lang/typhon-analyzer/internal/symbols"
	"github.com/typhon-lang/typhon-analyzer/internal/typesystem"
)

// Resolver is the C6 name resolver: a second pre-order pass over the same
// tree the collector walked, re-entering the scopes the collector created
// and resolving every name reference by LEGB lookup (spec §4.5). It also
// resolves type annotations into the shared TypeEnvironment and marks
// global/nonlocal declarations.
type Resolver struct {
	ast.BaseVisitor
	table *symbols.SymbolTable
	env   *typesystem.TypeEnvironment
	bag   *diagnostics.Bag
}

// Resolve runs the name resolver over moduleID. table and env must already
// hold the state Collect populated; the scope stack is left exactly as it
// started (at the module scope) when Resolve returns.
func Resolve(a *ast.Arena, moduleID ast.NodeID, table *symbols.SymbolTable, env *typesystem.TypeEnvironment, bag *diagnostics.Bag) error {
	r := &Resolver{BaseVisitor: ast.BaseVisitor{Arena: a}, table: table, env: env, bag: bag}
	return ast.Walk(a, r, moduleID)
}

// resolveName performs the LEGB walk for a name used at use, reporting
// UndefinedName on miss and otherwise recording the reference and checking
// for closure capture (spec §4.5).
func (r *Resolver) resolveName(name string, use ast.NodeID, span ast.Span) {
	sym, ok := r.table.LookupInChain(r.table.CurrentScope(), name)
	if !ok {
		r.bag.Add(&diagnostics.UndefinedName{Name: name, Location: span})
		return
	}
	sym.AddReference(use)
	r.checkClosureCapture(sym)
}

// checkClosureCapture implements spec §4.5's capture rule verbatim: a
// reference captures a symbol when there is an enclosing function, the
// symbol lives in neither the current scope nor that enclosing function's
// own scope, and the symbol's owning scope is itself a Function or Lambda
// scope. Class scopes are transparent to the walk up to the enclosing
// function but never capture anything themselves.
func (r *Resolver) checkClosureCapture(sym *symbols.Symbol) {
	current := r.table.CurrentScope()
	fn, ok := r.table.EnclosingFunction(current)
	if !ok {
		return
	}
	if sym.Scope == current || sym.Scope == fn {
		return
	}
	owner := r.table.Scope(sym.Scope)
	if owner.Kind == symbols.ScopeFunction || owner.Kind == symbols.ScopeLambda {
		sym.AddCapturer(fn)
	}
}

// markName flips a flag (global or nonlocal) on the symbol name resolves to
// in the current scope chain, used by VisitGlobalStmt/VisitNonlocalStmt.
func (r *Resolver) markName(name string, mark func(*symbols.Symbol)) {
	if sym, ok := r.table.LookupInChain(r.table.CurrentScope(), name); ok {
		mark(sym)
	}
}

// resolveAnnotation resolves the type node at ann (if present) into env and
// records it against target. Resolution errors are not surfaced here: an
// unresolvable annotation structurally rewrites to Any (spec §4.6), so there
// is nothing to report at this pass.
func (r *Resolver) resolveAnnotation(target, ann ast.NodeID) {
	if ann.IsPlaceholder() {
		return
	}
	ty := typesystem.ResolveAnnotation(r.Arena, r.env, ann)
	r.env.InternAndSet(target, ty)
}

func (r *Resolver) VisitVariableExpr(id ast.NodeID, n *ast.VariableExpr) error {
	r.resolveName(n.Name, id, n.Span)
	return nil
}

func (r *Resolver) VisitAttributeExpr(id ast.NodeID, n *ast.AttributeExpr) error {
	// The base expression resolves; the attribute name itself is checked by
	// the type checker against the base's resolved type, not here.
	return ast.Walk(r.Arena, r, n.Value)
}

func (r *Resolver) VisitFunctionDecl(id ast.NodeID, n *ast.FunctionDecl) error {
	// Decorators evaluate in the enclosing scope, before the function's own
	// scope exists — a decorator referencing the function's own name (a
	// common pattern for registries) must resolve against what came before
	// it, not against the function's body scope.
	for _, dec := range n.Decorators {
		if err := ast.Walk(r.Arena, r, dec); err != nil {
			return err
		}
	}

	// Record a full function signature on the declaration's own node, not
	// just its return type — a named function referenced by a VariableExpr
	// (the common case for a call) needs a callable FunctionType to infer
	// through, not the bare return type the reference implementation this
	// is grounded on records.
	var retType typesystem.Type
	if !n.ReturnType.IsPlaceholder() {
		retType = typesystem.ResolveAnnotation(r.Arena, r.env, n.ReturnType)
	} else {
		retType = typesystem.NoneType{}
	}
	paramTypes := make([]typesystem.Type, 0, len(n.Parameters))
	for _, paramID := range n.Parameters {
		p, err := r.Arena.Get(paramID)
		if err != nil {
			continue
		}
		param, ok := p.(*ast.ParameterIdent)
		if !ok {
			continue
		}
		if param.TypeAnnotation.IsPlaceholder() {
			paramTypes = append(paramTypes, typesystem.AnyType{})
			continue
		}
		paramTypes = append(paramTypes, typesystem.ResolveAnnotation(r.Arena, r.env, param.TypeAnnotation))
	}
	r.env.InternAndSet(id, typesystem.FunctionType{Params: paramTypes, Ret: retType})

	scope, ok := r.table.ScopeOf(id)
	if !ok {
		return ast.WalkChildren(r.Arena, r, id)
	}
	r.table.EnterScope(scope)

	for _, paramID := range n.Parameters {
		p, err := r.Arena.Get(paramID)
		if err != nil {
			continue
		}
		if param, ok := p.(*ast.ParameterIdent); ok {
			r.resolveAnnotation(paramID, param.TypeAnnotation)
			if param.HasDefault() {
				if err := ast.Walk(r.Arena, r, param.Default); err != nil {
					r.table.ExitScope()
					return err
				}
			}
		}
	}

	for _, stmt := range n.Body {
		if err := ast.Walk(r.Arena, r, stmt); err != nil {
			r.table.ExitScope()
			return err
		}
	}
	return r.table.ExitScope()
}

func (r *Resolver) VisitLambdaExpr(id ast.NodeID, n *ast.LambdaExpr) error {
	scope, ok := r.table.ScopeOf(id)
	if !ok {
		return ast.WalkChildren(r.Arena, r, id)
	}
	r.table.EnterScope(scope)

	for _, paramID := range n.Parameters {
		p, err := r.Arena.Get(paramID)
		if err != nil {
			continue
		}
		if param, ok := p.(*ast.ParameterIdent); ok && param.HasDefault() {
			if err := ast.Walk(r.Arena, r, param.Default); err != nil {
				r.table.ExitScope()
				return err
			}
		}
	}

	if err := ast.Walk(r.Arena, r, n.Body); err != nil {
		r.table.ExitScope()
		return err
	}
	return r.table.ExitScope()
}

func (r *Resolver) VisitClassDecl(id ast.NodeID, n *ast.ClassDecl) error {
	for _, base := range n.Bases {
		if err := ast.Walk(r.Arena, r, base); err != nil {
			return err
		}
	}

	scope, ok := r.table.ScopeOf(id)
	if !ok {
		return nil
	}
	r.table.EnterScope(scope)
	for _, stmt := range n.Body {
		if err := ast.Walk(r.Arena, r, stmt); err != nil {
			r.table.ExitScope()
			return err
		}
	}
	return r.table.ExitScope()
}

func (r *Resolver) VisitComprehension(id ast.NodeID, n *ast.Comprehension) error {
	scope, ok := r.table.ScopeOf(id)
	if !ok {
		return ast.WalkChildren(r.Arena, r, id)
	}
	r.table.EnterScope(scope)

	walk := func(child ast.NodeID) error {
		if child.IsPlaceholder() {
			return nil
		}
		return ast.Walk(r.Arena, r, child)
	}

	if err := walk(n.Iter); err != nil {
		r.table.ExitScope()
		return err
	}
	for _, cond := range n.Conditions {
		if err := walk(cond); err != nil {
			r.table.ExitScope()
			return err
		}
	}
	if err := walk(n.Element); err != nil {
		r.table.ExitScope()
		return err
	}
	if err := walk(n.KeyExpr); err != nil {
		r.table.ExitScope()
		return err
	}
	if err := walk(n.ValueExpr); err != nil {
		r.table.ExitScope()
		return err
	}
	return r.table.ExitScope()
}

func (r *Resolver) VisitVariableDecl(id ast.NodeID, n *ast.VariableDecl) error {
	r.resolveAnnotation(id, n.TypeAnnotation)
	if n.HasValue() {
		return ast.Walk(r.Arena, r, n.Value)
	}
	return nil
}

// blockScope re-enters the block scope the collector associated with
// stmts' first statement, running body under it. An empty block has no
// associated scope (the collector never created one), so it is a no-op.
func (r *Resolver) blockScope(stmts []ast.NodeID, body func() error) error {
	if len(stmts) == 0 {
		return nil
	}
	scope, ok := r.table.ScopeOf(stmts[0])
	if !ok {
		return body()
	}
	r.table.EnterScope(scope)
	if err := body(); err != nil {
		r.table.ExitScope()
		return err
	}
	return r.table.ExitScope()
}

func (r *Resolver) walkAll(stmts []ast.NodeID) error {
	for _, stmt := range stmts {
		if err := ast.Walk(r.Arena, r, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) VisitWithStmt(id ast.NodeID, n *ast.WithStmt) error {
	for _, item := range n.Items {
		if err := ast.Walk(r.Arena, r, item.Context); err != nil {
			return err
		}
	}
	return r.blockScope(n.Body, func() error { return r.walkAll(n.Body) })
}

func (r *Resolver) VisitTryStmt(id ast.NodeID, n *ast.TryStmt) error {
	if err := r.blockScope(n.Body, func() error { return r.walkAll(n.Body) }); err != nil {
		return err
	}

	for _, h := range n.Handlers {
		err := r.blockScope(h.Body, func() error {
			if !h.ExcType.IsPlaceholder() {
				if err := ast.Walk(r.Arena, r, h.ExcType); err != nil {
					return err
				}
			}
			return r.walkAll(h.Body)
		})
		if err != nil {
			return err
		}
	}

	if err := r.blockScope(n.OrElse, func() error { return r.walkAll(n.OrElse) }); err != nil {
		return err
	}
	return r.blockScope(n.Finally, func() error { return r.walkAll(n.Finally) })
}

func (r *Resolver) VisitGlobalStmt(id ast.NodeID, n *ast.GlobalStmt) error {
	for _, name := range n.Names {
		r.markName(name, func(s *symbols.Symbol) { s.Global = true })
	}
	return nil
}

func (r *Resolver) VisitNonlocalStmt(id ast.NodeID, n *ast.NonlocalStmt) error {
	for _, name := range n.Names {
		r.markName(name, func(s *symbols.Symbol) { s.Nonlocal = true })
	}
	return nil
}

func (r *Resolver) VisitImportStmt(id ast.NodeID, n *ast.ImportStmt) error {
	// The collector already bound the imported name; there is nothing to
	// resolve at an import statement itself.
	return nil
}

func (r *Resolver) VisitFromImportStmt(id ast.NodeID, n *ast.FromImportStmt) error {
	return nil
}
