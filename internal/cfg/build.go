package cfg

import (
	"fmt"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
)

// BuildError is an internal-invariant violation raised while building a
// CFG: an unresolvable NodeID reached via the function's own body, or a
// break/continue encountered with an empty loop stack (spec §7's
// "loop-stack underflow", tier "Internal").
type BuildError struct {
	ID      ast.NodeID
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("cfg: at node %s: %s", e.ID, e.Message)
}

type loopTarget struct {
	cond BlockID
	exit BlockID
}

type builder struct {
	arena     *ast.Arena
	cfg       *CFG
	loopStack []loopTarget
}

// Build constructs the CFG for fn by a linear scan of its body (spec §4.9).
// `with` and `try` bodies are inlined into the current block sequence
// rather than modeled with their own branches or exception edges — the
// spec's CFG algorithm only names if/while/for/return/break/continue as
// branching or terminating constructs, and full exception-flow modeling is
// explicitly out of scope (spec §1 non-goals: "full runtime semantics").
func Build(a *ast.Arena, fn *ast.FunctionDecl) (*CFG, error) {
	b := &builder{arena: a, cfg: newCFG()}

	entry := b.addBlock()
	b.cfg.Entry = entry

	if _, err := b.processBody(fn.Body, entry); err != nil {
		return nil, err
	}

	return b.cfg, nil
}

func (b *builder) addBlock() BlockID {
	id := BlockID(len(b.cfg.Blocks))
	b.cfg.Blocks = append(b.cfg.Blocks, newBasicBlock(id))
	return id
}

func (b *builder) addEdge(from, to BlockID) {
	b.cfg.Blocks[from].Successors[to] = struct{}{}
	b.cfg.Blocks[to].Predecessors[from] = struct{}{}
}

// processBody processes stmts in order starting at current, returning the
// block ID execution falls into after the last statement.
func (b *builder) processBody(stmts []ast.NodeID, current BlockID) (BlockID, error) {
	for _, id := range stmts {
		next, err := b.processStatement(id, current)
		if err != nil {
			return 0, err
		}
		current = next
	}
	return current, nil
}

func (b *builder) processStatement(id ast.NodeID, current BlockID) (BlockID, error) {
	n, err := b.arena.Get(id)
	if err != nil {
		return 0, &BuildError{ID: id, Message: err.Error()}
	}

	switch stmt := n.(type) {
	case *ast.ReturnStmt:
		b.cfg.Blocks[current].append(id)
		b.cfg.Blocks[current].HasTerminator = true
		b.cfg.ExitBlocks[current] = struct{}{}
		return b.addBlock(), nil

	case *ast.RaiseStmt:
		b.cfg.Blocks[current].append(id)
		b.cfg.Blocks[current].HasTerminator = true
		return b.addBlock(), nil

	case *ast.BreakStmt:
		b.cfg.Blocks[current].append(id)
		b.cfg.Blocks[current].HasTerminator = true
		if len(b.loopStack) == 0 {
			return 0, &BuildError{ID: id, Message: "break outside loop (loop-stack underflow)"}
		}
		target := b.loopStack[len(b.loopStack)-1]
		b.addEdge(current, target.exit)
		return b.addBlock(), nil

	case *ast.ContinueStmt:
		b.cfg.Blocks[current].append(id)
		b.cfg.Blocks[current].HasTerminator = true
		if len(b.loopStack) == 0 {
			return 0, &BuildError{ID: id, Message: "continue outside loop (loop-stack underflow)"}
		}
		target := b.loopStack[len(b.loopStack)-1]
		b.addEdge(current, target.cond)
		return b.addBlock(), nil

	case *ast.IfStmt:
		return b.processIf(id, stmt, current)

	case *ast.WhileStmt:
		return b.processWhile(id, stmt, current)

	case *ast.ForStmt:
		return b.processFor(id, stmt, current)

	case *ast.WithStmt:
		b.cfg.Blocks[current].append(id)
		return b.processBody(stmt.Body, current)

	case *ast.TryStmt:
		b.cfg.Blocks[current].append(id)
		cur, err := b.processBody(stmt.Body, current)
		if err != nil {
			return 0, err
		}
		for _, h := range stmt.Handlers {
			cur, err = b.processBody(h.Body, cur)
			if err != nil {
				return 0, err
			}
		}
		cur, err = b.processBody(stmt.OrElse, cur)
		if err != nil {
			return 0, err
		}
		return b.processBody(stmt.Finally, cur)

	default:
		// Plain statement: append to current block; current block unchanged.
		b.cfg.Blocks[current].append(id)
		return current, nil
	}
}

func (b *builder) processIf(id ast.NodeID, stmt *ast.IfStmt, current BlockID) (BlockID, error) {
	b.cfg.Blocks[current].append(id)

	var branchExits []BlockID

	thenBlock := b.addBlock()
	b.addEdge(current, thenBlock)
	thenExit, err := b.processBody(stmt.Body, thenBlock)
	if err != nil {
		return 0, err
	}
	branchExits = append(branchExits, thenExit)

	falseTarget := current
	for _, elif := range stmt.ElifBranches {
		condBlock := b.addBlock()
		b.addEdge(falseTarget, condBlock)

		bodyBlock := b.addBlock()
		b.addEdge(condBlock, bodyBlock)
		bodyExit, err := b.processBody(elif.Body, bodyBlock)
		if err != nil {
			return 0, err
		}
		branchExits = append(branchExits, bodyExit)
		falseTarget = condBlock
	}

	if stmt.ElseBody != nil {
		elseBlock := b.addBlock()
		b.addEdge(falseTarget, elseBlock)
		elseExit, err := b.processBody(stmt.ElseBody, elseBlock)
		if err != nil {
			return 0, err
		}
		branchExits = append(branchExits, elseExit)
	} else {
		branchExits = append(branchExits, falseTarget)
	}

	merge := b.addBlock()
	for _, exit := range branchExits {
		if !b.cfg.Blocks[exit].HasTerminator {
			b.addEdge(exit, merge)
		}
	}
	return merge, nil
}

func (b *builder) processWhile(id ast.NodeID, stmt *ast.WhileStmt, current BlockID) (BlockID, error) {
	cond := b.addBlock()
	b.addEdge(current, cond)
	b.cfg.Blocks[cond].append(id)

	body := b.addBlock()
	exit := b.addBlock()
	b.addEdge(cond, body)
	b.addEdge(cond, exit)

	b.loopStack = append(b.loopStack, loopTarget{cond: cond, exit: exit})
	bodyExit, err := b.processBody(stmt.Body, body)
	if err != nil {
		return 0, err
	}
	if !b.cfg.Blocks[bodyExit].HasTerminator {
		b.addEdge(bodyExit, cond)
	}
	b.loopStack = b.loopStack[:len(b.loopStack)-1]

	if stmt.ElseBody != nil {
		return b.processBody(stmt.ElseBody, exit)
	}
	return exit, nil
}

func (b *builder) processFor(id ast.NodeID, stmt *ast.ForStmt, current BlockID) (BlockID, error) {
	// The whole ForStmt node (target + iterable) is recorded in `current`,
	// the block that dominates the loop body — this is also where the
	// definite-assignment pass's GEN computation looks for the for-loop
	// target, per spec §4.10's special-casing note.
	b.cfg.Blocks[current].append(id)

	cond := b.addBlock()
	b.addEdge(current, cond)

	body := b.addBlock()
	exit := b.addBlock()
	b.addEdge(cond, body)
	b.addEdge(cond, exit)

	b.loopStack = append(b.loopStack, loopTarget{cond: cond, exit: exit})
	bodyExit, err := b.processBody(stmt.Body, body)
	if err != nil {
		return 0, err
	}
	if !b.cfg.Blocks[bodyExit].HasTerminator {
		b.addEdge(bodyExit, cond)
	}
	b.loopStack = b.loopStack[:len(b.loopStack)-1]

	if stmt.ElseBody != nil {
		return b.processBody(stmt.ElseBody, exit)
	}
	return exit, nil
}
