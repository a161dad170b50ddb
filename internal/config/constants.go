package config

// Version is the current typhon-analyzer version.
// Set at build time via -ldflags or by writing to this file.
var Version = "0.1.0"

const SourceFileExt = ".tph"

// SourceFileExtensions are all recognized source file extensions for the
// analyzed language.
var SourceFileExtensions = []string{".tph", ".typhon", ".ty"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates if the process is running under `go test`. Set once
// at startup by a test harness that needs to suppress the CLI's normal
// output.
var IsTestMode = false

// IsLSPMode indicates the analyzer is running as a language-server backend
// rather than a one-shot batch CLI. Set in an embedder's own main().
var IsLSPMode = false

const ManifestFileName = "typhon-analyzer.yaml"

// DefaultMaxDiagnostics bounds how many diagnostics a single run reports
// before truncating, used when a manifest omits MaxDiagnostics.
const DefaultMaxDiagnostics = 500
