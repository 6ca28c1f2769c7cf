package exportrewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/libpatch/internal/core/domain"
)

func testTarget(ident string) domain.Target {
	return domain.Target{
		Name:       "loader",
		URL:        "https://example.com/lib.js",
		Output:     "lib-loader.js",
		Strategy:   domain.StrategyExportRewrite,
		Identifier: ident,
		Global:     "window",
	}
}

func patch(t *testing.T, content string, target domain.Target) *domain.PatchedDocument {
	t.Helper()
	result, err := New().Patch(&domain.SourceDocument{Content: content}, target)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestNew(t *testing.T) {
	p := New()
	require.NotNil(t, p)
	assert.Equal(t, domain.StrategyExportRewrite, p.Strategy())
	assert.True(t, p.Capabilities().SelfHealing)
}

func TestRules(t *testing.T) {
	rules := New().Rules()
	require.Len(t, rules, 3)

	assert.Equal(t, RuleExportStatement, rules[0].Name)
	assert.False(t, rules[0].Fallback)
	assert.Equal(t, RuleExportKeyword, rules[1].Name)
	assert.True(t, rules[1].Fallback)
	assert.Equal(t, rules[0].Group, rules[1].Group, "statement and keyword rules are mutually exclusive")
	assert.Equal(t, RuleIsolationWrap, rules[2].Name)
	assert.Equal(t, domain.RuleKindWrap, rules[2].Kind)
}

func TestPatch_ExportStatement(t *testing.T) {
	result := patch(t, "class Foo {}\nexport default Foo;\nconst after = 1;\n", testTarget("Foo"))

	assert.Contains(t, result.Content, "window.Foo = Foo;")
	assert.NotContains(t, result.Content, "export default")
	assert.Contains(t, result.Content, "const after = 1;")
	assert.False(t, result.Degraded)
	assert.Equal(t, []string{RuleExportStatement, RuleIsolationWrap}, result.Applied)
	assert.Equal(t, domain.StrategyExportRewrite, result.Strategy)
}

func TestPatch_ExportStatementVariants(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"extra whitespace", "export   default\tASS ;"},
		{"comment between tokens", "export /* c */ default ASS;"},
		{"no semicolon at end of input", "var ASS = 1;\nexport default ASS"},
		{"no semicolon before newline", "export default ASS\nvar x = 1;"},
		{"multiple statements", "export default ASS;\nexport default ASS;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := patch(t, tt.content, testTarget("ASS"))

			assert.False(t, result.Degraded)
			assert.NotContains(t, result.Content, "export default")
			assert.Contains(t, result.Content, "window.ASS = ASS;")
		})
	}
}

func TestPatch_IgnoresExportInStringsAndComments(t *testing.T) {
	content := "// export default ASS;\nvar s = \"export default ASS;\";\nexport default ASS;"
	result := patch(t, content, testTarget("ASS"))

	assert.False(t, result.Degraded)
	assert.Contains(t, result.Content, "// export default ASS;")
	assert.Contains(t, result.Content, "var s = \"export default ASS;\";")
	assert.Equal(t, 1, strings.Count(result.Content, `(statement rewrite)`))
}

func TestPatch_OtherIdentifierFallsBack(t *testing.T) {
	result := patch(t, "export default Other;", testTarget("ASS"))

	assert.True(t, result.Degraded)
	assert.Contains(t, result.Content, "window.ASS = Other;")
	assert.NotContains(t, result.Content, "export default")
}

func TestPatch_MemberExpressionIsNotAStatement(t *testing.T) {
	result := patch(t, "export default ASS.Renderer;", testTarget("ASS"))

	assert.True(t, result.Degraded)
	assert.Equal(t, []string{RuleExportKeyword, RuleIsolationWrap}, result.Applied)
}

func TestPatch_FallbackRemovesEveryKeyword(t *testing.T) {
	content := "export default function () {}\nvar s = 'export default';"
	result := patch(t, content, testTarget("ASS"))

	assert.True(t, result.Degraded)
	assert.NotContains(t, result.Content, "export default")
	assert.Contains(t, result.Content, "window.ASS = function () {}")
	assert.Contains(t, result.Content, "var s = 'window.ASS =';")
}

func TestPatch_FallbackWithoutKeyword(t *testing.T) {
	result := patch(t, "var ASS = {};", testTarget("ASS"))

	assert.True(t, result.Degraded)
	assert.Contains(t, result.Content, "var ASS = {};")
}

func TestPatch_Wrapper(t *testing.T) {
	result := patch(t, "export default ASS;", testTarget("ASS"))

	assert.True(t, strings.HasPrefix(result.Content, "\n// ----"))
	assert.Contains(t, result.Content, "(function() {")
	assert.Contains(t, result.Content, "const define = undefined;")
	assert.Contains(t, result.Content, "const module = undefined;")
	assert.Contains(t, result.Content, "if (typeof ASS !== 'undefined') {")
	assert.Contains(t, result.Content, "} else if (typeof window.ASS === 'undefined') {")
	assert.Contains(t, result.Content, "console.error(")
	assert.True(t, strings.HasSuffix(result.Content, "})();\n"))
	assert.NotContains(t, result.Content, "export ", "wrapper must not introduce residual syntax")
}

func TestPatch_GlobalThis(t *testing.T) {
	target := testTarget("ASS")
	target.Global = "globalThis"

	result := patch(t, "export default ASS;", target)

	assert.Contains(t, result.Content, "globalThis.ASS = ASS;")
	assert.NotContains(t, result.Content, "window.")
}

func TestPatch_PercentSignsPreserved(t *testing.T) {
	result := patch(t, "var p = '100%s%d';\nexport default ASS;", testTarget("ASS"))

	assert.Contains(t, result.Content, "var p = '100%s%d';")
}

func TestPatch_Deterministic(t *testing.T) {
	content := "class ASS {}\nexport default ASS;\n"

	first := patch(t, content, testTarget("ASS"))
	second := patch(t, content, testTarget("ASS"))

	assert.Equal(t, first.Content, second.Content)
}

func TestPatch_NilDocument(t *testing.T) {
	result, err := New().Patch(nil, testTarget("ASS"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestPatch_InvalidIdentifier(t *testing.T) {
	_, err := New().Patch(&domain.SourceDocument{Content: "x"}, testTarget("not-valid"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
