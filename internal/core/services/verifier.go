package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/libpatch/internal/core/domain"
	"github.com/custodia-labs/libpatch/internal/patchers/jslex"
)

// Residual module syntax handling.
const (
	// ResidualMarker is the text that marks unconverted module syntax.
	ResidualMarker = "export "

	// ResidualReplacement disables a residual marker by turning the rest
	// of its line into a comment.
	ResidualReplacement = "// export_removed "

	// RuleResidualHeal is the rule name recorded when residuals are removed.
	RuleResidualHeal = "residual-heal"
)

// Verifier sanity-checks fetched and patched content.
type Verifier struct{}

// NewVerifier creates a new verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// CheckSize returns an error wrapping domain.ErrContentTooSmall if the
// document has fewer than minChars characters. A minChars of zero or
// less disables the check.
func (v *Verifier) CheckSize(doc *domain.SourceDocument, minChars int) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	if minChars <= 0 {
		return nil
	}
	if n := doc.Len(); n < minChars {
		return fmt.Errorf("%w: %d characters, expected at least %d", domain.ErrContentTooSmall, n, minChars)
	}
	return nil
}

// Residuals returns the number of residual module syntax markers in text.
func (v *Verifier) Residuals(text string) int {
	return strings.Count(text, ResidualMarker)
}

// CodeResiduals returns the number of residual markers that lie in code.
// Markers inside strings, comments, templates and regexes are ignored.
func (v *Verifier) CodeResiduals(text string) int {
	return len(jslex.Scan(text).IndexAll(ResidualMarker))
}

// Heal removes every residual marker from doc and records the heal rule.
// Returns the number of markers removed.
func (v *Verifier) Heal(doc *domain.PatchedDocument) int {
	n := v.Residuals(doc.Content)
	if n == 0 {
		return 0
	}
	doc.Content = strings.ReplaceAll(doc.Content, ResidualMarker, ResidualReplacement)
	doc.Applied = append(doc.Applied, RuleResidualHeal)
	doc.Healed = true
	return n
}
