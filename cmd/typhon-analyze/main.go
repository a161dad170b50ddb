// Command typhon-analyze runs the semantic analyzer over a JSON AST fixture
// and prints its diagnostics. It takes the place of a real lexer/parser
// front end (building one is out of scope — see internal/ast's JSON
// decoder) by reading the external parser's output contract directly: a
// JSON document describing one module's tree.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/config"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
	"github.com/typhon-lang/typhon-analyzer/internal/pipeline"
	"github.com/typhon-lang/typhon-analyzer/internal/reportstore"
)

// =============================================================================
// Color support detection
// =============================================================================

var (
	colorLevelOnce sync.Once
	colorLevelVal  int
)

func detectColorLevel() int {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return 0
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return 0
	}
	if os.Getenv("TERM") == "dumb" {
		return 0
	}
	return 1
}

func getColorLevel() int {
	colorLevelOnce.Do(func() { colorLevelVal = detectColorLevel() })
	return colorLevelVal
}

func colorize(code, s string) string {
	if getColorLevel() == 0 {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

// =============================================================================
// CLI
// =============================================================================

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s analyze <fixture.json> [-manifest <path>] [-db <path>]\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	if os.Args[1] == "-help" || os.Args[1] == "--help" || os.Args[1] == "help" {
		usage()
		return
	}

	if os.Args[1] != "analyze" {
		usage()
		os.Exit(1)
	}

	if len(os.Args) < 3 {
		usage()
		os.Exit(1)
	}

	fixturePath := os.Args[2]
	var manifestPath, dbPath string
	for i := 3; i < len(os.Args)-1; i++ {
		switch os.Args[i] {
		case "-manifest", "--manifest":
			manifestPath = os.Args[i+1]
		case "-db", "--db":
			dbPath = os.Args[i+1]
		}
	}

	if err := run(fixturePath, manifestPath, dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(fixturePath, manifestPath, dbPath string) error {
	cfg, err := loadConfig(fixturePath, manifestPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(fixturePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", fixturePath, err)
	}

	arena, root, err := ast.DecodeJSON(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", fixturePath, err)
	}

	var builtins []string
	if cfg != nil && len(cfg.Builtins) > 0 {
		builtins = cfg.Builtins
	}

	ctx := pipeline.Default().Run(pipeline.NewPipelineContext(arena, root, builtins))
	for _, e := range ctx.Errors {
		fmt.Fprintf(os.Stderr, "%s: %s\n", colorize("33", "internal error"), e)
	}

	diags := filterDisabled(ctx.Bag.Items(), cfg)

	suppressed := 0
	if cfg != nil {
		max := cfg.EffectiveMaxDiagnostics()
		if max > 0 && len(diags) > max {
			suppressed = len(diags) - max
			diags = diags[:max]
		}
	}

	printDiagnostics(fixturePath, diags)
	if suppressed > 0 {
		fmt.Fprintf(os.Stderr, "... %d more diagnostics suppressed (max_diagnostics=%d)\n", suppressed, len(diags))
	}

	if dbPath != "" {
		if err := recordRun(fixturePath, diags, dbPath); err != nil {
			return err
		}
	}

	strict := cfg != nil && cfg.Strict
	if len(diags) > 0 && strict {
		os.Exit(1)
	}
	return nil
}

func loadConfig(fixturePath, manifestPath string) (*config.AnalyzerConfig, error) {
	if manifestPath == "" {
		found, err := config.FindManifest(filepath.Dir(fixturePath))
		if err != nil || found == "" {
			return nil, nil
		}
		manifestPath = found
	}
	cfg, err := config.LoadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	return cfg, nil
}

func filterDisabled(diags []diagnostics.Diagnostic, cfg *config.AnalyzerConfig) []diagnostics.Diagnostic {
	if cfg == nil || len(cfg.DisabledDiagnostics) == 0 {
		return diags
	}
	out := make([]diagnostics.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if !cfg.IsDisabled(d.Kind()) {
			out = append(out, d)
		}
	}
	return out
}

func printDiagnostics(fixturePath string, diags []diagnostics.Diagnostic) {
	for _, d := range diags {
		level := colorize("31", d.Level().String())
		span := d.Span()
		fmt.Printf("%s:%d:%d: %s: %s\n", fixturePath, span.Start, span.End, level, d.Message())
	}
	if len(diags) == 0 {
		fmt.Printf("%s: %s\n", fixturePath, colorize("32", "no diagnostics"))
		return
	}
	suffix := "s"
	if len(diags) == 1 {
		suffix = ""
	}
	fmt.Fprintf(os.Stderr, "%d diagnostic%s\n", len(diags), suffix)
}

func recordRun(fixturePath string, diags []diagnostics.Diagnostic, dbPath string) error {
	store, err := reportstore.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening report store: %w", err)
	}
	defer store.Close()

	sessionID := uuid.New().String()
	if err := store.RecordRun(context.Background(), sessionID, fixturePath, diags, time.Now()); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}
