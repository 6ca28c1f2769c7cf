package domain

import "fmt"

const unknownDescription = "Unknown"

// Strategy identifies how a target's module wrapper is rewritten.
type Strategy string

// Available patch strategies.
const (
	// StrategyExportRewrite rewrites an ES module default export into a
	// global assignment and wraps the library in an isolating IIFE.
	StrategyExportRewrite Strategy = "export_rewrite"

	// StrategyInvocationRewrite rewrites the UMD wrapper's trailing
	// `this` argument into the target global binding.
	StrategyInvocationRewrite Strategy = "invocation_rewrite"
)

// IsValid returns true if the strategy is recognised.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyExportRewrite, StrategyInvocationRewrite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Strategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s Strategy) Description() string {
	switch s {
	case StrategyExportRewrite:
		return "Export rewrite (ES module to global IIFE)"
	case StrategyInvocationRewrite:
		return "Invocation rewrite (UMD this to global)"
	default:
		return unknownDescription
	}
}

// ParseStrategy converts a string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	strategy := Strategy(s)
	if !strategy.IsValid() {
		return "", fmt.Errorf("%w: strategy %q", ErrUnsupportedType, s)
	}
	return strategy, nil
}
