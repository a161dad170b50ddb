package cfg

import "github.com/typhon-lang/typhon-analyzer/internal/ast"

// BlockGen computes GEN[B]: the set of names a block's statements
// unconditionally assign, by walking each statement's syntactic shape
// (spec §4.10). It never descends into the body/elif/else of an if, the
// body of a while, or the body of a for that it finds nested in another
// block's statement list — but in this builder those bodies are never
// part of B's own Statements, since Build splits them into their own
// blocks, so no explicit skip is needed here beyond not doing a full-tree
// walk of a compound statement.
func BlockGen(a *ast.Arena, block *BasicBlock) map[string]struct{} {
	gen := make(map[string]struct{})
	add := func(name string) { gen[name] = struct{}{} }

	for _, id := range block.Statements {
		computeGenForStatement(a, id, add)
	}
	return gen
}

func computeGenForStatement(a *ast.Arena, id ast.NodeID, add func(string)) {
	n, err := a.Get(id)
	if err != nil {
		return
	}

	switch s := n.(type) {
	case *ast.AssignmentStmt:
		for _, name := range collectTargetNames(a, s.Target) {
			add(name)
		}
		scanWalrus(a, s.Value, add)

	case *ast.AugAssignStmt:
		for _, name := range collectTargetNames(a, s.Target) {
			add(name)
		}
		scanWalrus(a, s.Value, add)

	case *ast.VariableDecl:
		if s.HasValue() {
			add(s.Name)
			scanWalrus(a, s.Value, add)
		}

	case *ast.ForStmt:
		// The iterable's block also GENs the target (spec §4.10's
		// for-loop special case); Build places the ForStmt node in that
		// block precisely so this falls out of the normal walk.
		for _, name := range collectTargetNames(a, s.Target) {
			add(name)
		}
		scanWalrus(a, s.Iter, add)

	case *ast.WhileStmt:
		scanWalrus(a, s.Test, add)

	case *ast.IfStmt:
		scanWalrus(a, s.Condition, add)

	case *ast.WithStmt:
		for _, item := range s.Items {
			if !item.Target.IsPlaceholder() {
				for _, name := range collectTargetNames(a, item.Target) {
					add(name)
				}
			}
			scanWalrus(a, item.Context, add)
		}

	case *ast.ImportStmt:
		add(importedBinding(s.Module, s.Alias))

	case *ast.FromImportStmt:
		for _, n := range s.Names {
			add(importedBinding(n.Name, n.Alias))
		}

	case *ast.ExprStmt:
		scanWalrus(a, s.Expr, add)

	case *ast.FunctionDecl:
		// A nested def binds its own name at the point it executes, same
		// as any other assignment (the collector's hoisting only affects
		// name *resolution*, not dataflow order).
		add(s.Name)

	case *ast.ClassDecl:
		add(s.Name)

	case *ast.ReturnStmt:
		if s.HasValue() {
			scanWalrus(a, s.Value, add)
		}

	default:
		// Raise, break, continue, pass, global, nonlocal, try: no direct
		// assignment target at this syntactic level.
	}
}

func importedBinding(name, alias string) string {
	if alias != "" {
		return alias
	}
	return name
}

// collectTargetNames recurses into destructuring targets (tuple patterns)
// per spec §4.4/§4.10; a wildcard contributes nothing.
func collectTargetNames(a *ast.Arena, target ast.NodeID) []string {
	n, err := a.Get(target)
	if err != nil {
		return nil
	}
	switch t := n.(type) {
	case *ast.BasicIdent:
		return []string{t.Name}
	case *ast.IdentifierPattern:
		return []string{t.Name}
	case *ast.VariableExpr:
		return []string{t.Name}
	case *ast.WildcardPattern:
		return nil
	case *ast.TuplePattern:
		var names []string
		for _, elem := range t.Elements {
			names = append(names, collectTargetNames(a, elem)...)
		}
		return names
	default:
		return nil
	}
}

// scanWalrus finds every assignment-expression (`:=`) nested in expr and
// adds its target names, since a walrus can assign as a side effect of
// evaluating any condition, call argument, or right-hand side. It does not
// descend into a nested LambdaExpr or Comprehension, since those introduce
// their own scope and their bindings aren't GEN'd into the enclosing
// function's blocks.
func scanWalrus(a *ast.Arena, expr ast.NodeID, add func(string)) {
	if expr.IsPlaceholder() {
		return
	}
	n, err := a.Get(expr)
	if err != nil {
		return
	}

	switch e := n.(type) {
	case *ast.LambdaExpr, *ast.Comprehension:
		return
	case *ast.AssignmentExpr:
		for _, name := range collectTargetNames(a, e.Target) {
			add(name)
		}
		scanWalrus(a, e.Value, add)
	default:
		for _, child := range n.Children() {
			scanWalrus(a, child, add)
		}
	}
}
