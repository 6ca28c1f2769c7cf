package domain

// RuleKind identifies how a patch rule changes the text.
type RuleKind string

// Available rule kinds.
const (
	// RuleKindSubstitute replaces matched text in place.
	RuleKindSubstitute RuleKind = "substitute"

	// RuleKindWrap injects a prefix and suffix around the whole text.
	RuleKindWrap RuleKind = "wrap"

	// RuleKindAppend adds a statement after the existing text.
	RuleKindAppend RuleKind = "append"

	// RuleKindHeal destructively removes residual module syntax.
	RuleKindHeal RuleKind = "heal"
)

// String returns the string representation.
func (k RuleKind) String() string {
	return string(k)
}

// PatchRule describes one transformation a patcher can apply.
// Rules sharing a non-empty Group are mutually exclusive: only the
// first matching rule in the group fires.
type PatchRule struct {
	// Name identifies the rule in logs and reports.
	Name string

	// Kind is the replacement strategy.
	Kind RuleKind

	// Group names the mutually exclusive set this rule belongs to.
	Group string

	// Fallback marks a rule that only fires when the primary rule misses.
	Fallback bool

	// Description is a human-readable summary.
	Description string
}
