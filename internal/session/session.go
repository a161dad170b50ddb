// Package session wraps one analyzer run behind a stable identity, so an
// embedder driving many runs (an LSP server, a batch CLI, an RPC service)
// can correlate a run's diagnostics, logs, and report-store rows without
// threading the arena/table/env/bag bundle through its own call sites.
package session

import (
	"github.com/google/uuid"

	"github.com/typhon-lang/typhon-analyzer/internal/analyzer"
	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
	"github.com/typhon-lang/typhon-analyzer/internal/symbols"
	"github.com/typhon-lang/typhon-analyzer/internal/typesystem"
)

// Session is one complete pass of AnalyzeModule over one arena, tagged with
// a UUID an embedder can log and correlate against.
type Session struct {
	ID uuid.UUID

	Arena    *ast.Arena
	Root     ast.NodeID
	Table    *symbols.SymbolTable
	Env      *typesystem.TypeEnvironment
	Bag      *diagnostics.Bag
	Builtins []string
}

// New runs the analyzer over root within a, using builtins as the seeded
// builtin-name set (analyzer.DefaultBuiltins if nil), and returns a Session
// tagged with a freshly generated UUID.
func New(a *ast.Arena, root ast.NodeID, builtins []string) *Session {
	if builtins == nil {
		builtins = analyzer.DefaultBuiltins
	}
	table, env, bag := analyzer.AnalyzeModuleWithBuiltins(a, root, builtins)
	return &Session{
		ID:       uuid.New(),
		Arena:    a,
		Root:     root,
		Table:    table,
		Env:      env,
		Bag:      bag,
		Builtins: builtins,
	}
}

// Diagnostics returns the run's collected diagnostics, in the order they
// were reported.
func (s *Session) Diagnostics() []diagnostics.Diagnostic {
	return s.Bag.Items()
}

// TypeOf returns the inferred type recorded against id, or AnyType if the
// checker never visited it.
func (s *Session) TypeOf(id ast.NodeID) typesystem.Type {
	return s.Env.TypeOf(id)
}
