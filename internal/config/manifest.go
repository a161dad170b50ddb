package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AnalyzerConfig is the top-level typhon-analyzer.yaml run manifest. It
// configures the strictness and limits of a single analyzer invocation
// without touching the core passes themselves, which always run the same
// way (spec.md §7's tiered error recovery is unconditional).
type AnalyzerConfig struct {
	// Strict makes the CLI exit with status 1 when any diagnostic remains
	// after filtering, for an embedder that wants to fail a build on any
	// finding. It does not change which diagnostics the passes report.
	Strict bool `yaml:"strict,omitempty"`

	// MaxDiagnostics caps how many diagnostics a run reports; zero means
	// DefaultMaxDiagnostics.
	MaxDiagnostics int `yaml:"max_diagnostics,omitempty"`

	// Builtins overrides the default builtin-name set seeded into the
	// symbol table's Builtins scope (analyzer.DefaultBuiltins) when
	// non-empty, for a dialect with a different standard surface.
	Builtins []string `yaml:"builtins,omitempty"`

	// DisabledDiagnostics lists diagnostic kind names (e.g. "UndefinedName")
	// that should be collected but not reported, by kind string.
	DisabledDiagnostics []string `yaml:"disabled_diagnostics,omitempty"`
}

// EffectiveMaxDiagnostics returns MaxDiagnostics, or DefaultMaxDiagnostics
// if the manifest left it unset.
func (c *AnalyzerConfig) EffectiveMaxDiagnostics() int {
	if c.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return c.MaxDiagnostics
}

// IsDisabled reports whether kind (a diagnostic's Kind() string) has been
// disabled by the manifest.
func (c *AnalyzerConfig) IsDisabled(kind string) bool {
	for _, k := range c.DisabledDiagnostics {
		if k == kind {
			return true
		}
	}
	return false
}

// LoadManifest reads and parses a typhon-analyzer.yaml file.
func LoadManifest(path string) (*AnalyzerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseManifest(data, path)
}

// ParseManifest parses typhon-analyzer.yaml content from bytes. The path
// argument is used only for error messages.
func ParseManifest(data []byte, path string) (*AnalyzerConfig, error) {
	var cfg AnalyzerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindManifest searches for typhon-analyzer.yaml starting from dir and
// walking up to parent directories, the same upward search the teacher's
// funxy.yaml loader uses.
func FindManifest(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ManifestFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks the manifest for semantic errors not expressible in the
// YAML schema itself.
func (c *AnalyzerConfig) validate(path string) error {
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: max_diagnostics must not be negative", path)
	}
	seen := make(map[string]bool, len(c.Builtins))
	for _, name := range c.Builtins {
		if name == "" {
			return fmt.Errorf("%s: builtins entries must not be empty", path)
		}
		if seen[name] {
			return fmt.Errorf("%s: duplicate builtin name %q", path, name)
		}
		seen[name] = true
	}
	return nil
}
