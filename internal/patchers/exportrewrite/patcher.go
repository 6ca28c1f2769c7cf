package exportrewrite

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
	RuleExportStatement = "export-statement"
	RuleExportKeyword   = "export-keyword"
	RuleIsolationWrap   = "isolation-wrap"
)

const exportGroup = "default-export"

// keyword is the literal token sequence replaced by the fallback rule.
const keyword = "export default"

// wrapper isolates the library from ambient module loaders and re-checks
// the global binding after the library has run.
// Arguments: 1 identifier, 2 global, 3 library code.
const wrapper = `
// --------------------------------------------------
// Patched %[1]s loader (no module syntax)
// --------------------------------------------------
(function() {
    const define = undefined; // hide AMD loader detection
    const module = undefined; // hide CommonJS detection

    // --- library code begin ---
    %[3]s
    // --- library code end ---

    if (typeof %[1]s !== 'undefined') {
        %[2]s.%[1]s = %[1]s;
    } else if (typeof %[2]s.%[1]s === 'undefined') {
        console.error("[libpatch] %[1]s is undefined, the library layout may be incompatible");
    }

    console.log("[libpatch] %[1]s loader finished, %[2]s.%[1]s present:", !!%[2]s.%[1]s);
})();
`

// Patcher implements the export rewrite strategy.
type Patcher struct{}

// New creates a new export rewrite patcher.
func New() *Patcher {
	return &Patcher{}
}

// Strategy returns domain.StrategyExportRewrite.
func (p *Patcher) Strategy() domain.Strategy {
	return domain.StrategyExportRewrite
}

// Rules returns the patcher's rules in priority order.
func (p *Patcher) Rules() []domain.PatchRule {
	return []domain.PatchRule{
		{
			Name:        RuleExportStatement,
			Kind:        domain.RuleKindSubstitute,
			Group:       exportGroup,
			Description: "Rewrite `export default <Identifier>;` into a global assignment",
		},
		{
			Name:        RuleExportKeyword,
			Kind:        domain.RuleKindSubstitute,
			Group:       exportGroup,
			Fallback:    true,
			Description: "Replace every literal `export default` with a global assignment prefix",
		},
		{
			Name:        RuleIsolationWrap,
			Kind:        domain.RuleKindWrap,
			Description: "Wrap the library in an IIFE shadowing define and module",
		},
	}
}

// Capabilities returns the patcher's capabilities.
// Residual export syntax is removed rather than only reported.
func (p *Patcher) Capabilities() driven.PatcherCapabilities {
	return driven.PatcherCapabilities{SelfHealing: true}
}

// Patch rewrites the default export and wraps the result.
func (p *Patcher) Patch(doc *domain.SourceDocument, target domain.Target) (*domain.PatchedDocument, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if !domain.IsIdentifier(target.Identifier) || !domain.IsIdentifier(target.Global) {
		return nil, fmt.Errorf("%w: identifier %q, global %q", domain.ErrInvalidInput, target.Identifier, target.Global)
	}

	result := &domain.PatchedDocument{Strategy: p.Strategy()}
	content := doc.Content

	if spans := findExportStatements(jslex.Scan(content), target.Identifier); len(spans) > 0 {
		content = replaceSpans(content, spans, assignment(target))
		result.Applied = append(result.Applied, RuleExportStatement)
		logger.Debug("%s: rewrote %d export statement(s) for %s", target.Name, len(spans), target.Identifier)
	} else {
		n := strings.Count(content, keyword)
		content = strings.ReplaceAll(content, keyword, target.Global+"."+target.Identifier+" =")
		result.Applied = append(result.Applied, RuleExportKeyword)
		result.Degraded = true
		logger.Warn("%s: no export statement for %s, replaced %d keyword occurrence(s)", target.Name, target.Identifier, n)
	}

	result.Content = fmt.Sprintf(wrapper, target.Identifier, target.Global, content)
	result.Applied = append(result.Applied, RuleIsolationWrap)

	return result, nil
}

// assignment returns the statement that replaces the export statement.
// The diagnostic must not contain the export keyword.
func assignment(target domain.Target) string {
	return fmt.Sprintf(`%[2]s.%[1]s = %[1]s; console.log("[libpatch] %[1]s attached to %[2]s (statement rewrite)");`,
		target.Identifier, target.Global)
}

// span is a half-open byte range.
type span struct {
	start, end int
}

// findExportStatements locates every `export default <ident>` statement in
// code. The span includes a trailing semicolon when present. A statement
// without a semicolon is only accepted when it ends the input or is
// followed by a line break.
func findExportStatements(src *jslex.Source, ident string) []span {
	text := src.Text()
	var spans []span

	for _, at := range src.IndexAll("export") {
		if src.WordAt(at) != "export" {
			continue
		}
		i := src.SkipSpace(at + len("export"))
		if src.WordAt(i) != "default" {
			continue
		}
		i = src.SkipSpace(i + len("default"))
		if src.WordAt(i) != ident {
			continue
		}
		end := i + len(ident)

		next := src.SkipSpace(end)
		switch {
		case next == len(text):
			spans = append(spans, span{at, end})
		case text[next] == ';' && src.ContextAt(next) == jslex.Code:
			spans = append(spans, span{at, next + 1})
		case strings.Contains(text[end:next], "\n"):
			spans = append(spans, span{at, end})
		}
	}
	return spans
}

// replaceSpans replaces each span in text with repl. Spans must be
// ordered and non-overlapping.
func replaceSpans(text string, spans []span, repl string) string {
	var b strings.Builder
	b.Grow(len(text) + len(spans)*len(repl))
	last := 0
	for _, s := range spans {
		b.WriteString(text[last:s.start])
		b.WriteString(repl)
		last = s.end
	}
	b.WriteString(text[last:])
	return b.String()
}
