package analyzer

import (
	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
	"github.com/typhon-lang/typhon-analyzer/internal/symbols"
)

// Collector is the C5 symbol collector: a single pre-order pass that creates
// scopes for every scope-introducing node and registers every declaration
// spec §4.4 names. It embeds ast.BaseVisitor and overrides only the shapes
// that bind names or introduce scopes; everything else recurses via the
// embedded default.
type Collector struct {
	ast.BaseVisitor
	table *symbols.SymbolTable
	bag   *diagnostics.Bag
}

// Collect runs the symbol collector over moduleID, which must resolve to an
// *ast.Module. table must already have its module scope entered (as
// symbols.NewSymbolTable leaves it).
func Collect(a *ast.Arena, moduleID ast.NodeID, table *symbols.SymbolTable, bag *diagnostics.Bag) error {
	c := &Collector{BaseVisitor: ast.BaseVisitor{Arena: a}, table: table, bag: bag}
	return ast.Walk(a, c, moduleID)
}

func (c *Collector) define(name string, kind symbols.SymbolKind, def ast.NodeID, span ast.Span) {
	if _, err := c.table.Define(name, kind, def, span); err != nil {
		if dup, ok := err.(*symbols.DuplicateSymbolError); ok {
			prev, _ := c.table.LookupInCurrent(name)
			prevSpan := ast.Span{}
			if prev != nil {
				prevSpan = prev.Span
			}
			c.bag.Add(&diagnostics.DuplicateSymbol{Name: dup.Name, Location: span, PreviousSpan: prevSpan})
		}
	}
}

// defineIfAbsent defines name only if it is not already visible anywhere in
// the current scope chain (spec §4.4: "reassignment does not re-define").
// This governs not just plain assignment targets but also for-loop and
// with-as targets — a second `for i in ...` reusing a loop variable name
// must not be reported as a duplicate symbol.
func (c *Collector) defineIfAbsent(name string, kind symbols.SymbolKind, def ast.NodeID, span ast.Span) {
	if _, found := c.table.LookupInChain(c.table.CurrentScope(), name); found {
		return
	}
	c.define(name, kind, def, span)
}

// hoist pre-registers the function and class names declared directly in
// stmts (spec §4.4's "Module"/"Function" hoisting rule) — it does not
// recurse into nested if/while/for/with/try bodies, matching the scan depth
// of the reference symbol collector this is grounded on.
func (c *Collector) hoist(a *ast.Arena, stmts []ast.NodeID) {
	for _, id := range stmts {
		n, err := a.Get(id)
		if err != nil {
			continue
		}
		switch d := n.(type) {
		case *ast.FunctionDecl:
			c.define(d.Name, symbols.SymbolFunction, id, d.Span)
		case *ast.ClassDecl:
			c.define(d.Name, symbols.SymbolClass, id, d.Span)
		}
	}
}

func (c *Collector) collectParameters(a *ast.Arena, params []ast.NodeID) {
	for _, id := range params {
		n, err := a.Get(id)
		if err != nil {
			continue
		}
		p, ok := n.(*ast.ParameterIdent)
		if !ok {
			continue
		}
		c.define(p.Name, symbols.SymbolParameter, id, p.Span)
	}
}

// defineTarget recurses into an assignment/for/with/comprehension target,
// defining every bound leaf name (spec §4.4's "Tuple/destructuring targets:
// recurse into sub-identifiers"). ifAbsent is passed through to bindName;
// every caller (assignment, for-loop, with and comprehension targets)
// passes true.
func (c *Collector) defineTarget(a *ast.Arena, target ast.NodeID, kind symbols.SymbolKind, ifAbsent bool) {
	n, err := a.Get(target)
	if err != nil {
		return
	}
	switch t := n.(type) {
	case *ast.BasicIdent:
		c.bindName(t.Name, kind, target, t.Span, ifAbsent)
	case *ast.IdentifierPattern:
		c.bindName(t.Name, kind, target, t.Span, ifAbsent)
	case *ast.VariableExpr:
		c.bindName(t.Name, kind, target, t.Span, ifAbsent)
	case *ast.WildcardPattern:
		// binds nothing
	case *ast.TuplePattern:
		for _, elem := range t.Elements {
			c.defineTarget(a, elem, kind, ifAbsent)
		}
	}
}

func (c *Collector) bindName(name string, kind symbols.SymbolKind, def ast.NodeID, span ast.Span, ifAbsent bool) {
	if ifAbsent {
		c.defineIfAbsent(name, kind, def, span)
	} else {
		c.define(name, kind, def, span)
	}
}

func (c *Collector) VisitModule(id ast.NodeID, n *ast.Module) error {
	c.table.AssociateNode(id, c.table.ModuleScope())
	c.hoist(c.Arena, n.Statements)
	for _, stmt := range n.Statements {
		if err := ast.Walk(c.Arena, c, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) VisitFunctionDecl(id ast.NodeID, n *ast.FunctionDecl) error {
	// The name itself was already hoisted into the enclosing scope.
	scope := c.table.CreateScope(symbols.ScopeFunction, c.table.CurrentScope())
	c.table.AssociateNode(id, scope)
	c.table.EnterScope(scope)

	c.collectParameters(c.Arena, n.Parameters)
	c.hoist(c.Arena, n.Body)
	for _, stmt := range n.Body {
		if err := ast.Walk(c.Arena, c, stmt); err != nil {
			c.table.ExitScope()
			return err
		}
	}
	return c.table.ExitScope()
}

func (c *Collector) VisitClassDecl(id ast.NodeID, n *ast.ClassDecl) error {
	for _, base := range n.Bases {
		if err := ast.Walk(c.Arena, c, base); err != nil {
			return err
		}
	}

	scope := c.table.CreateScope(symbols.ScopeClass, c.table.CurrentScope())
	c.table.AssociateNode(id, scope)
	c.table.EnterScope(scope)

	c.hoist(c.Arena, n.Body)
	for _, stmt := range n.Body {
		if err := ast.Walk(c.Arena, c, stmt); err != nil {
			c.table.ExitScope()
			return err
		}
	}
	return c.table.ExitScope()
}

func (c *Collector) VisitVariableDecl(id ast.NodeID, n *ast.VariableDecl) error {
	// Marked "defined" only when an initializer is present (spec §4.4).
	sym, err := c.table.Define(n.Name, symbols.SymbolVariable, id, n.Span)
	if err != nil {
		if dup, ok := err.(*symbols.DuplicateSymbolError); ok {
			c.bag.Add(&diagnostics.DuplicateSymbol{Name: dup.Name, Location: n.Span})
		}
	} else {
		sym.Defined = n.HasValue()
	}
	if n.HasValue() {
		return ast.Walk(c.Arena, c, n.Value)
	}
	return nil
}

func (c *Collector) VisitAssignmentStmt(id ast.NodeID, n *ast.AssignmentStmt) error {
	c.defineTarget(c.Arena, n.Target, symbols.SymbolVariable, true)
	return ast.Walk(c.Arena, c, n.Value)
}

func (c *Collector) VisitAugAssignStmt(id ast.NodeID, n *ast.AugAssignStmt) error {
	// Aug-assignment never introduces a new binding (spec §9 open question):
	// the target must already exist, so no define call is made here — the
	// resolver's LEGB lookup is what surfaces an unbound augmented target.
	if err := ast.Walk(c.Arena, c, n.Target); err != nil {
		return err
	}
	return ast.Walk(c.Arena, c, n.Value)
}

func (c *Collector) VisitForStmt(id ast.NodeID, n *ast.ForStmt) error {
	// Loop variables are scoped to the containing function/module, not the
	// loop itself (spec §4.4): no block scope here.
	c.defineTarget(c.Arena, n.Target, symbols.SymbolVariable, true)
	if err := ast.Walk(c.Arena, c, n.Iter); err != nil {
		return err
	}
	for _, stmt := range n.Body {
		if err := ast.Walk(c.Arena, c, stmt); err != nil {
			return err
		}
	}
	for _, stmt := range n.ElseBody {
		if err := ast.Walk(c.Arena, c, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) VisitWithStmt(id ast.NodeID, n *ast.WithStmt) error {
	for _, item := range n.Items {
		if err := ast.Walk(c.Arena, c, item.Context); err != nil {
			return err
		}
		if !item.Target.IsPlaceholder() {
			c.defineTarget(c.Arena, item.Target, symbols.SymbolVariable, true)
		}
	}

	return c.visitInBlockScope(n.Body)
}

func (c *Collector) VisitTryStmt(id ast.NodeID, n *ast.TryStmt) error {
	if err := c.visitInBlockScope(n.Body); err != nil {
		return err
	}

	for _, h := range n.Handlers {
		scope := c.table.CreateScope(symbols.ScopeBlock, c.table.CurrentScope())
		// Body is never empty (a handler always has at least a `pass`), so
		// its first statement is a stable key the resolver can re-enter the
		// same scope through later.
		if len(h.Body) > 0 {
			c.table.AssociateNode(h.Body[0], scope)
		}
		c.table.EnterScope(scope)
		if !h.ExcType.IsPlaceholder() {
			if err := ast.Walk(c.Arena, c, h.ExcType); err != nil {
				c.table.ExitScope()
				return err
			}
		}
		if h.Name != "" {
			c.define(h.Name, symbols.SymbolVariable, id, h.Span)
		}
		for _, stmt := range h.Body {
			if err := ast.Walk(c.Arena, c, stmt); err != nil {
				c.table.ExitScope()
				return err
			}
		}
		if err := c.table.ExitScope(); err != nil {
			return err
		}
	}

	if err := c.visitInBlockScope(n.OrElse); err != nil {
		return err
	}
	return c.visitInBlockScope(n.Finally)
}

// visitInBlockScope runs stmts in a fresh block scope, associated with the
// block's own first statement so a later pass over the same tree (the
// resolver) can re-enter the identical scope rather than create a sibling
// one. An empty block binds nothing and needs no scope.
func (c *Collector) visitInBlockScope(stmts []ast.NodeID) error {
	if len(stmts) == 0 {
		return nil
	}
	scope := c.table.CreateScope(symbols.ScopeBlock, c.table.CurrentScope())
	c.table.AssociateNode(stmts[0], scope)
	c.table.EnterScope(scope)
	for _, stmt := range stmts {
		if err := ast.Walk(c.Arena, c, stmt); err != nil {
			c.table.ExitScope()
			return err
		}
	}
	return c.table.ExitScope()
}

func (c *Collector) VisitImportStmt(id ast.NodeID, n *ast.ImportStmt) error {
	name := n.Alias
	if name == "" {
		name = moduleBindingName(n.Module)
	}
	c.define(name, symbols.SymbolImport, id, n.Span)
	return nil
}

func (c *Collector) VisitFromImportStmt(id ast.NodeID, n *ast.FromImportStmt) error {
	for _, imported := range n.Names {
		name := imported.Alias
		if name == "" {
			name = imported.Name
		}
		c.define(name, symbols.SymbolImport, id, n.Span)
	}
	return nil
}

// moduleBindingName returns the name a bare `import a.b.c` binds: its first
// path segment, matching Python's own `import` semantics.
func moduleBindingName(module string) string {
	for i := 0; i < len(module); i++ {
		if module[i] == '.' {
			return module[:i]
		}
	}
	return module
}

func (c *Collector) VisitLambdaExpr(id ast.NodeID, n *ast.LambdaExpr) error {
	scope := c.table.CreateScope(symbols.ScopeLambda, c.table.CurrentScope())
	c.table.AssociateNode(id, scope)
	c.table.EnterScope(scope)

	c.collectParameters(c.Arena, n.Parameters)
	if err := ast.Walk(c.Arena, c, n.Body); err != nil {
		c.table.ExitScope()
		return err
	}
	return c.table.ExitScope()
}

func (c *Collector) VisitComprehension(id ast.NodeID, n *ast.Comprehension) error {
	scope := c.table.CreateScope(symbols.ScopeComprehension, c.table.CurrentScope())
	c.table.AssociateNode(id, scope)
	c.table.EnterScope(scope)

	c.defineTarget(c.Arena, n.Target, symbols.SymbolVariable, true)
	if err := ast.Walk(c.Arena, c, n.Iter); err != nil {
		c.table.ExitScope()
		return err
	}
	for _, cond := range n.Conditions {
		if err := ast.Walk(c.Arena, c, cond); err != nil {
			c.table.ExitScope()
			return err
		}
	}
	if !n.Element.IsPlaceholder() {
		if err := ast.Walk(c.Arena, c, n.Element); err != nil {
			c.table.ExitScope()
			return err
		}
	}
	if !n.KeyExpr.IsPlaceholder() {
		if err := ast.Walk(c.Arena, c, n.KeyExpr); err != nil {
			c.table.ExitScope()
			return err
		}
	}
	if !n.ValueExpr.IsPlaceholder() {
		if err := ast.Walk(c.Arena, c, n.ValueExpr); err != nil {
			c.table.ExitScope()
			return err
		}
	}
	return c.table.ExitScope()
}
