package domain

import (
	"fmt"
	"regexp"
)

// Default target values.
const (
	// DefaultGlobal is the global binding patched libraries are attached to.
	DefaultGlobal = "window"

	// DefaultIdentifier is the binding exported by the assjs library.
	DefaultIdentifier = "ASS"

	// DefaultMinSize is the minimum plausible size of a minified build, in characters.
	DefaultMinSize = 1000
)

// Built-in target names.
const (
	TargetLoader = "loader"
	TargetMin    = "min"
)

// identifierPattern matches a plain JavaScript identifier. Dotted globals
// such as "self.top" are not accepted.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Target is a named library to fetch, patch and emit.
type Target struct {
	// Name identifies the target on the command line and in config.
	Name string

	// URL is the http(s), file:// or bare path location of the library.
	URL string

	// Output is the destination file path.
	Output string

	// Strategy selects the patcher.
	Strategy Strategy

	// Identifier is the JavaScript binding the library exports.
	Identifier string

	// Global is the host global binding, e.g. "window" or "globalThis".
	Global string

	// MinSize is the minimum content length in characters. Zero disables the check.
	MinSize int
}

// Validate checks the target is complete and its bindings are identifiers.
func (t *Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: target name is required", ErrInvalidInput)
	}
	if t.URL == "" {
		return fmt.Errorf("%w: target %s: url is required", ErrInvalidInput, t.Name)
	}
	if t.Output == "" {
		return fmt.Errorf("%w: target %s: output is required", ErrInvalidInput, t.Name)
	}
	if !t.Strategy.IsValid() {
		return fmt.Errorf("%w: target %s: strategy %q", ErrUnsupportedType, t.Name, t.Strategy)
	}
	if !IsIdentifier(t.Identifier) {
		return fmt.Errorf("%w: target %s: identifier %q", ErrInvalidInput, t.Name, t.Identifier)
	}
	if !IsIdentifier(t.Global) {
		return fmt.Errorf("%w: target %s: global %q", ErrInvalidInput, t.Name, t.Global)
	}
	if t.MinSize < 0 {
		return fmt.Errorf("%w: target %s: min_size must not be negative", ErrInvalidInput, t.Name)
	}
	return nil
}

// IsIdentifier returns true if s is a valid JavaScript identifier.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// DefaultTargets returns the built-in targets for the assjs library:
// the unminified ES module build and the minified UMD build.
func DefaultTargets() []Target {
	return []Target{
		{
			Name:       TargetLoader,
			URL:        "https://cdn.jsdelivr.net/npm/assjs/dist/ass.js",
			Output:     "ass-loader.js",
			Strategy:   StrategyExportRewrite,
			Identifier: DefaultIdentifier,
			Global:     DefaultGlobal,
		},
		{
			Name:       TargetMin,
			URL:        "https://cdn.jsdelivr.net/npm/assjs/dist/ass.min.js",
			Output:     "assjs.min.js",
			Strategy:   StrategyInvocationRewrite,
			Identifier: DefaultIdentifier,
			Global:     DefaultGlobal,
			MinSize:    DefaultMinSize,
		},
	}
}
