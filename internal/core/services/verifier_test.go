package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/libpatch/internal/core/domain"
)

func TestVerifier_CheckSize(t *testing.T) {
	v := NewVerifier()
	tests := []struct {
		name    string
		content string
		min     int
		wantErr bool
	}{
		{"disabled", "", 0, false},
		{"negative disables", "", -5, false},
		{"exactly minimum", strings.Repeat("a", 1000), 1000, false},
		{"one short", strings.Repeat("a", 999), 1000, true},
		{"counts characters not bytes", strings.Repeat("ü", 10), 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.CheckSize(&domain.SourceDocument{Content: tt.content}, tt.min)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrContentTooSmall)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerifier_CheckSize_NilDocument(t *testing.T) {
	assert.ErrorIs(t, NewVerifier().CheckSize(nil, 10), domain.ErrInvalidInput)
}

func TestVerifier_CodeResiduals(t *testing.T) {
	v := NewVerifier()

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"none", "window.ASS = ASS;", 0},
		{"code", "export { x };\nexport default y;", 2},
		{"string only", `var m = "export default is unsupported";`, 0},
		{"comment only", "// export this later\nvar a;", 0},
		{"mixed", "var m = 'export ';\nexport { m };", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.CodeResiduals(tt.text))
		})
	}
}

func TestVerifier_Residuals(t *testing.T) {
	v := NewVerifier()

	assert.Equal(t, 0, v.Residuals("window.ASS = ASS;"))
	assert.Equal(t, 2, v.Residuals("export const a = 1;\nexport function b() {}"))
	assert.Equal(t, 0, v.Residuals("exports.a = 1;"))
}

func TestVerifier_Heal(t *testing.T) {
	v := NewVerifier()
	doc := &domain.PatchedDocument{
		Content: "export const a = 1;",
		Applied: []string{"export-keyword"},
	}

	n := v.Heal(doc)

	assert.Equal(t, 1, n)
	assert.Equal(t, "// export_removed const a = 1;", doc.Content)
	assert.True(t, doc.Healed)
	assert.Equal(t, []string{"export-keyword", RuleResidualHeal}, doc.Applied)
	assert.Zero(t, v.Residuals(doc.Content))
}

func TestVerifier_Heal_NothingToDo(t *testing.T) {
	doc := &domain.PatchedDocument{Content: "var a;"}

	n := NewVerifier().Heal(doc)

	require.Zero(t, n)
	assert.False(t, doc.Healed)
	assert.Empty(t, doc.Applied)
}
