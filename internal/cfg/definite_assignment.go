package cfg

import (
	"sort"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
)

// nameSet is a small, comparable wrapper so block IN/OUT sets read clearly
// at call sites below.
type nameSet map[string]struct{}

func (s nameSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s nameSet) clone() nameSet {
	out := make(nameSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func (s nameSet) union(other nameSet) nameSet {
	out := s.clone()
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

func intersectAll(sets []nameSet) nameSet {
	if len(sets) == 0 {
		return make(nameSet)
	}
	out := sets[0].clone()
	for _, s := range sets[1:] {
		for k := range out {
			if !s.has(k) {
				delete(out, k)
			}
		}
	}
	return out
}

func equalSets(a, b nameSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b.has(k) {
			return false
		}
	}
	return true
}

// DefiniteAssignment holds the converged IN/OUT sets for every block of a
// CFG, keyed by BlockID, plus the GEN set each was derived from.
type DefiniteAssignment struct {
	cfg   *CFG
	arena *ast.Arena
	gen   map[BlockID]nameSet
	in    map[BlockID]nameSet
	out   map[BlockID]nameSet
}

// Analyze runs the forward GEN/IN/OUT dataflow to a fixed point (spec
// §4.10). initiallyAssigned is the parameter-names-union-builtins set that
// seeds IN[entry]; it is never reintersected across iterations.
func Analyze(a *ast.Arena, c *CFG, initiallyAssigned []string) *DefiniteAssignment {
	da := &DefiniteAssignment{
		cfg:   c,
		arena: a,
		gen:   make(map[BlockID]nameSet),
		in:    make(map[BlockID]nameSet),
		out:   make(map[BlockID]nameSet),
	}

	entrySeed := make(nameSet, len(initiallyAssigned))
	for _, name := range initiallyAssigned {
		entrySeed[name] = struct{}{}
	}

	for _, block := range c.Blocks {
		da.gen[block.ID] = BlockGen(a, block)
		da.in[block.ID] = make(nameSet)
		da.out[block.ID] = make(nameSet)
	}
	da.in[c.Entry] = entrySeed

	computed := make(map[BlockID]bool, len(c.Blocks))
	changed := true
	for changed {
		changed = false
		for _, block := range c.Blocks {
			id := block.ID
			if id != c.Entry {
				preds := block.PredecessorIDs()
				if len(preds) > 0 {
					sets := make([]nameSet, 0, len(preds))
					for _, p := range preds {
						if computed[p] {
							sets = append(sets, da.out[p])
						}
					}
					if len(sets) == 0 {
						continue
					}
					newIn := intersectAll(sets)
					if !equalSets(newIn, da.in[id]) {
						da.in[id] = newIn
						changed = true
					}
				}
			}

			newOut := da.in[id].union(da.gen[id])
			if !computed[id] || !equalSets(newOut, da.out[id]) {
				da.out[id] = newOut
				computed[id] = true
				changed = true
			}
		}
	}

	return da
}

// In returns the converged IN set for block id.
func (da *DefiniteAssignment) In(id BlockID) map[string]struct{} { return da.in[id] }

// Out returns the converged OUT set for block id.
func (da *DefiniteAssignment) Out(id BlockID) map[string]struct{} { return da.out[id] }

// CheckUses walks every block in ID order validating each variable use
// against the running assigned-set built from IN[B] forward (spec §4.10's
// "Use checking" paragraph), in block-ID order to match the deterministic
// traversal order spec §5 requires.
func (da *DefiniteAssignment) CheckUses() []*diagnostics.UseBeforeAssignment {
	var diags []*diagnostics.UseBeforeAssignment

	blockIDs := make([]BlockID, 0, len(da.cfg.Blocks))
	for _, b := range da.cfg.Blocks {
		blockIDs = append(blockIDs, b.ID)
	}
	sort.Slice(blockIDs, func(i, j int) bool { return blockIDs[i] < blockIDs[j] })

	for _, id := range blockIDs {
		block := da.cfg.Blocks[id]
		assigned := da.in[id].clone()
		for _, stmt := range block.Statements {
			diags = append(diags, da.checkStatement(stmt, assigned)...)
		}
	}
	return diags
}

func (da *DefiniteAssignment) checkStatement(id ast.NodeID, assigned nameSet) []*diagnostics.UseBeforeAssignment {
	n, err := da.arena.Get(id)
	if err != nil {
		return nil
	}

	stmtSpan := n.NodeSpan()
	var diags []*diagnostics.UseBeforeAssignment
	checkUse := func(expr ast.NodeID, skip map[string]struct{}) {
		diags = append(diags, da.checkExprUses(expr, assigned, skip, stmtSpan)...)
	}
	assign := func(target ast.NodeID) {
		for _, name := range collectTargetNames(da.arena, target) {
			assigned[name] = struct{}{}
		}
	}

	switch s := n.(type) {
	case *ast.AssignmentStmt:
		checkUse(s.Value, nil)
		assign(s.Target)

	case *ast.AugAssignStmt:
		checkUse(s.Target, nil)
		checkUse(s.Value, nil)
		assign(s.Target)

	case *ast.VariableDecl:
		if s.HasValue() {
			checkUse(s.Value, nil)
			assigned[s.Name] = struct{}{}
		}

	case *ast.ForStmt:
		skip := make(map[string]struct{})
		for _, name := range collectTargetNames(da.arena, s.Target) {
			skip[name] = struct{}{}
		}
		checkUse(s.Iter, skip)
		assign(s.Target)

	case *ast.WhileStmt:
		checkUse(s.Test, nil)

	case *ast.IfStmt:
		checkUse(s.Condition, nil)

	case *ast.WithStmt:
		for _, item := range s.Items {
			checkUse(item.Context, nil)
			if !item.Target.IsPlaceholder() {
				assign(item.Target)
			}
		}

	case *ast.ReturnStmt:
		if s.HasValue() {
			checkUse(s.Value, nil)
		}

	case *ast.RaiseStmt:
		if s.HasValue() {
			checkUse(s.Value, nil)
		}

	case *ast.ExprStmt:
		checkUse(s.Expr, nil)

	case *ast.FunctionDecl:
		assigned[s.Name] = struct{}{}

	case *ast.ClassDecl:
		assigned[s.Name] = struct{}{}

	case *ast.ImportStmt:
		assigned[importedBinding(s.Module, s.Alias)] = struct{}{}

	case *ast.FromImportStmt:
		for _, name := range s.Names {
			assigned[importedBinding(name.Name, name.Alias)] = struct{}{}
		}

	default:
		// break, continue, pass, global, nonlocal, try: nothing to check
		// or assign at this syntactic level.
	}

	return diags
}

// checkExprUses walks expr looking for VariableExpr references not yet in
// assigned, skipping any name in skip (used for a for-loop's own target
// while checking its iterable). It does not descend into a nested
// LambdaExpr or Comprehension body, whose free variables are checked
// against their own scope by the resolver, not this function's dataflow.
// A found use is reported at stmtSpan, the enclosing statement's span, not
// the use expression's own span, since fixtures commonly carry a span only
// on the statement (spec §8's "reported at the `return y` span").
func (da *DefiniteAssignment) checkExprUses(expr ast.NodeID, assigned nameSet, skip map[string]struct{}, stmtSpan ast.Span) []*diagnostics.UseBeforeAssignment {
	if expr.IsPlaceholder() {
		return nil
	}
	n, err := da.arena.Get(expr)
	if err != nil {
		return nil
	}

	switch e := n.(type) {
	case *ast.LambdaExpr, *ast.Comprehension:
		return nil

	case *ast.VariableExpr:
		if _, skipped := skip[e.Name]; skipped {
			return nil
		}
		if assigned.has(e.Name) {
			return nil
		}
		return []*diagnostics.UseBeforeAssignment{{Name: e.Name, Location: stmtSpan}}

	case *ast.AssignmentExpr:
		diags := da.checkExprUses(e.Value, assigned, skip, stmtSpan)
		for _, name := range collectTargetNames(da.arena, e.Target) {
			assigned[name] = struct{}{}
		}
		return diags

	default:
		var diags []*diagnostics.UseBeforeAssignment
		for _, child := range n.Children() {
			diags = append(diags, da.checkExprUses(child, assigned, skip, stmtSpan)...)
		}
		return diags
	}
}
