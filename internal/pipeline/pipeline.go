// Package pipeline stages the analyzer's passes behind the teacher's own
// Processor/Pipeline shape (internal/pipeline/pipeline.go, cmd/funxy/main.go's
// lexer → parser → analyzer chain). The teacher's retrieval copy keeps only
// the Pipeline/Run skeleton — Processor and PipelineContext are referenced
// by cmd/funxy/main.go but their bodies were pruned from the pack — so this
// file defines them fresh in the same shape, generalized from a
// (source, *lexer.Token, *ast.Program) chain to an (arena, NodeID) one:
// continue-on-error across stages, matching spec.md §7's tier-2 recovery
// rule that one pass's diagnostics never stop a later pass from running.
package pipeline

import (
	"github.com/typhon-lang/typhon-analyzer/internal/analyzer"
	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/cfg"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
	"github.com/typhon-lang/typhon-analyzer/internal/symbols"
	"github.com/typhon-lang/typhon-analyzer/internal/typesystem"
)

// PipelineContext is the value threaded through every Processor, mirroring
// the teacher's own PipelineContext (FilePath/AstRoot/Errors fields driven
// by cmd/funxy/main.go's usage) generalized to this analyzer's domain: an
// already-built arena and root instead of raw source text.
type PipelineContext struct {
	FilePath string

	Arena *ast.Arena
	Root  ast.NodeID

	Builtins []string

	Table *symbols.SymbolTable
	Env   *typesystem.TypeEnvironment
	Bag   *diagnostics.Bag

	// Errors collects tier-3 internal-invariant failures (spec.md §7) a
	// Processor could not recover from on its own. Ordinary semantic
	// findings go into Bag, not here.
	Errors []error
}

// NewPipelineContext builds the initial context for one run over root
// within a. builtins seeds the symbol table's Builtins scope; nil selects
// analyzer.DefaultBuiltins.
func NewPipelineContext(a *ast.Arena, root ast.NodeID, builtins []string) *PipelineContext {
	if builtins == nil {
		builtins = analyzer.DefaultBuiltins
	}
	return &PipelineContext{
		Arena:    a,
		Root:     root,
		Builtins: builtins,
		Table:    symbols.NewSymbolTable(builtins),
		Env:      typesystem.NewTypeEnvironment(),
		Bag:      diagnostics.NewBag(),
	}
}

// Processor is one named stage of the pipeline. It returns the (possibly
// same) context to run after it; a Processor that cannot proceed appends to
// ctx.Errors and returns ctx unchanged rather than panicking, matching the
// teacher's "continue on errors to collect diagnostics from all stages"
// comment on Pipeline.Run.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline is an ordered sequence of Processors run over one context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline running processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every processor in order, always continuing to the next
// stage regardless of what the previous one appended to ctx.Errors or
// ctx.Bag — LSP and batch-CLI embedders alike need both parse-adjacent and
// semantic diagnostics out of a single run.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}

// SymbolCollectorProcessor runs C5 (spec.md §4.4) over ctx.Root.
type SymbolCollectorProcessor struct{}

func (SymbolCollectorProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if err := analyzer.Collect(ctx.Arena, ctx.Root, ctx.Table, ctx.Bag); err != nil {
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}

// NameResolverProcessor runs C6 (spec.md §4.5) over ctx.Root. Must run
// after SymbolCollectorProcessor has populated ctx.Table.
type NameResolverProcessor struct{}

func (NameResolverProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if err := analyzer.Resolve(ctx.Arena, ctx.Root, ctx.Table, ctx.Env, ctx.Bag); err != nil {
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}

// TypeCheckerProcessor runs C8 (spec.md §4.8) over ctx.Root. Must run after
// NameResolverProcessor has resolved annotations and function signatures.
type TypeCheckerProcessor struct{}

func (TypeCheckerProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if err := analyzer.Check(ctx.Arena, ctx.Root, ctx.Table, ctx.Env, ctx.Bag); err != nil {
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}

// ControlFlowProcessor runs C9→C10 (spec.md §4.9-§4.10) for every function
// declaration reachable from ctx.Root, in the same manner as
// analyzer.AnalyzeModule's own per-function loop.
type ControlFlowProcessor struct{}

func (ControlFlowProcessor) Process(ctx *PipelineContext) *PipelineContext {
	for _, fn := range analyzer.CollectFunctionDecls(ctx.Arena, ctx.Root) {
		n, err := ctx.Arena.Get(fn)
		if err != nil {
			continue
		}
		decl, ok := n.(*ast.FunctionDecl)
		if !ok {
			continue
		}

		graph, err := cfg.Build(ctx.Arena, decl)
		if err != nil {
			continue
		}

		initiallyAssigned := append([]string(nil), ctx.Builtins...)
		for _, paramID := range decl.Parameters {
			p, err := ctx.Arena.Get(paramID)
			if err != nil {
				continue
			}
			if param, ok := p.(*ast.ParameterIdent); ok {
				initiallyAssigned = append(initiallyAssigned, param.Name)
			}
		}

		da := cfg.Analyze(ctx.Arena, graph, initiallyAssigned)
		for _, d := range da.CheckUses() {
			ctx.Bag.Add(d)
		}
	}
	return ctx
}

// Default returns the standard four-stage pipeline: symbol collection, name
// resolution, type checking, then per-function control-flow analysis —
// spec.md §2's control-flow paragraph in Processor form.
func Default() *Pipeline {
	return New(
		SymbolCollectorProcessor{},
		NameResolverProcessor{},
		TypeCheckerProcessor{},
		ControlFlowProcessor{},
	)
}
