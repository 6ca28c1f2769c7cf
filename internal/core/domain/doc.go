// Package domain defines the core entities for libpatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Target: A named library to fetch, patch and emit
//   - SourceDocument: Text fetched from a target URL
//   - PatchRule: A single named transformation a patcher may apply
//   - PatchedDocument: Source text after rule application
//   - OutputArtifact: Patched text bound to its destination path
//   - RunReport: The outcome of one pipeline run for one target
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
