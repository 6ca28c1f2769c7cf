package driven

import "github.com/custodia-labs/libpatch/internal/core/domain"

// Patcher deterministically rewrites module-exporting source text into
// global-assigning source text. Each strategy has one implementation.
type Patcher interface {
	// Strategy returns the strategy this patcher implements.
	Strategy() domain.Strategy

	// Rules returns the patcher's rules in priority order.
	Rules() []domain.PatchRule

	// Capabilities returns how the pipeline should treat this patcher's output.
	Capabilities() PatcherCapabilities

	// Patch applies the rules to doc for target.
	// A missing pattern is never an error: the fallback rule fires instead.
	Patch(doc *domain.SourceDocument, target domain.Target) (*domain.PatchedDocument, error)
}

// PatcherCapabilities describes how the pipeline treats a patcher.
type PatcherCapabilities struct {
	// SelfHealing indicates residual module syntax after patching should be
	// forcibly removed rather than only reported.
	SelfHealing bool
}

// PatcherRegistry selects the patcher for a strategy.
type PatcherRegistry interface {
	// Register adds a patcher, replacing any patcher for the same strategy.
	Register(patcher Patcher)

	// Get returns the patcher for a strategy.
	// Returns an error wrapping domain.ErrUnsupportedType if none is registered.
	Get(strategy domain.Strategy) (Patcher, error)

	// Strategies returns the registered strategies.
	Strategies() []domain.Strategy
}
