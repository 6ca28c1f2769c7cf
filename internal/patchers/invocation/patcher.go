package invocation

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/libpatch/internal/core/domain"
	"github.com/custodia-labs/libpatch/internal/core/ports/driven"
	"github.com/custodia-labs/libpatch/internal/logger"
	"github.com/custodia-labs/libpatch/internal/patchers/jslex"
)

// Ensure Patcher implements the interface.
var _ driven.Patcher = (*Patcher)(nil)

// Rule names.
const (
	RuleClosingInvocation     = "closing-invocation"
	RuleClosingInvocationBare = "closing-invocation-bare"
	RuleClosingInvocationRaw  = "closing-invocation-raw"
	RuleGlobalAppend          = "global-append"
)

const closingGroup = "closing-idiom"

// idiom is a closing-invocation variant. Variants are tried in order and
// format receives the global binding.
type idiom struct {
	rule   string
	match  string
	format string
}

var idioms = []idiom{
	{rule: RuleClosingInvocation, match: "}(this))", format: "}(%s))"},
	{rule: RuleClosingInvocationBare, match: "}(this)", format: "}(%s)"},
}

// Patcher implements the invocation rewrite strategy.
type Patcher struct{}

// New creates a new invocation rewrite patcher.
func New() *Patcher {
	return &Patcher{}
}

// Strategy returns domain.StrategyInvocationRewrite.
func (p *Patcher) Strategy() domain.Strategy {
	return domain.StrategyInvocationRewrite
}

// Rules returns the patcher's rules in priority order.
func (p *Patcher) Rules() []domain.PatchRule {
	return []domain.PatchRule{
		{
			Name:        RuleClosingInvocation,
			Kind:        domain.RuleKindSubstitute,
			Group:       closingGroup,
			Description: "Rewrite the closing `}(this))` to pass the global binding",
		},
		{
			Name:        RuleClosingInvocationBare,
			Kind:        domain.RuleKindSubstitute,
			Group:       closingGroup,
			Description: "Rewrite the closing `}(this)` to pass the global binding",
		},
		{
			Name:        RuleClosingInvocationRaw,
			Kind:        domain.RuleKindSubstitute,
			Group:       closingGroup,
			Fallback:    true,
			Description: "Rewrite the last closing invocation by plain text match, ignoring lexical context",
		},
		{
			Name:        RuleGlobalAppend,
			Kind:        domain.RuleKindAppend,
			Group:       closingGroup,
			Fallback:    true,
			Description: "Append a guarded global assignment",
		},
	}
}

// Capabilities returns the patcher's capabilities.
func (p *Patcher) Capabilities() driven.PatcherCapabilities {
	return driven.PatcherCapabilities{}
}

// Patch rewrites the last code-level closing invocation. Every other byte
// is preserved.
func (p *Patcher) Patch(doc *domain.SourceDocument, target domain.Target) (*domain.PatchedDocument, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if !domain.IsIdentifier(target.Identifier) || !domain.IsIdentifier(target.Global) {
		return nil, fmt.Errorf("%w: identifier %q, global %q", domain.ErrInvalidInput, target.Identifier, target.Global)
	}

	result := &domain.PatchedDocument{Strategy: p.Strategy()}
	src := jslex.Scan(doc.Content)

	for _, id := range idioms {
		at := src.LastIndex(id.match)
		if at < 0 {
			continue
		}
		repl := fmt.Sprintf(id.format, target.Global)
		result.Content = doc.Content[:at] + repl + doc.Content[at+len(id.match):]
		result.Applied = []string{id.rule}
		logger.Debug("%s: replaced %q with %q at offset %d", target.Name, id.match, repl, at)
		return result, nil
	}

	// The scanner can misread unusual input, so retry on the raw text
	// before giving up on the invocation.
	for _, id := range idioms {
		at := strings.LastIndex(doc.Content, id.match)
		if at < 0 {
			continue
		}
		repl := fmt.Sprintf(id.format, target.Global)
		result.Content = doc.Content[:at] + repl + doc.Content[at+len(id.match):]
		result.Applied = []string{RuleClosingInvocationRaw}
		result.Degraded = true
		logger.Warn("%s: no code-level %q found, replaced raw match at offset %d", target.Name, id.match, at)
		return result, nil
	}

	result.Content = doc.Content + guard(target)
	result.Applied = []string{RuleGlobalAppend}
	result.Degraded = true
	logger.Warn("%s: no closing invocation found, appended global assignment", target.Name)

	return result, nil
}

// guard returns the fallback statement. It never overrides a value
// already present on the global binding.
func guard(target domain.Target) string {
	return fmt.Sprintf(";%[2]s.%[1]s = %[2]s.%[1]s || %[1]s;", target.Identifier, target.Global)
}
