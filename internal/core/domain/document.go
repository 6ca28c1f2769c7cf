package domain

import (
	"time"
	"unicode/utf8"
)

// SourceDocument is the raw text retrieved from a target URL.
// It is immutable once fetched.
type SourceDocument struct {
	// URL is the location the content was fetched from.
	URL string

	// Content is the decoded UTF-8 text.
	Content string

	// FetchedAt is when the fetch completed.
	FetchedAt time.Time
}

// Len returns the content length in characters.
func (d *SourceDocument) Len() int {
	return utf8.RuneCountInString(d.Content)
}

// Size returns the content length in bytes.
func (d *SourceDocument) Size() int {
	return len(d.Content)
}

// PatchedDocument is a SourceDocument after rule application.
type PatchedDocument struct {
	// Content is the patched text.
	Content string

	// Strategy is the strategy that produced the content.
	Strategy Strategy

	// Applied lists the names of the rules that fired, in order.
	Applied []string

	// Degraded is true when a fallback rule fired instead of the primary rule.
	Degraded bool

	// Healed is true when residual module syntax was forcibly removed.
	Healed bool
}

// Fired reports whether the named rule was applied.
func (d *PatchedDocument) Fired(rule string) bool {
	for _, name := range d.Applied {
		if name == rule {
			return true
		}
	}
	return false
}

// OutputArtifact is a PatchedDocument bound to its destination file.
// Each run overwrites the artifact of the previous run.
type OutputArtifact struct {
	// Path is the destination file path.
	Path string

	// Document is the patched document to write.
	Document *PatchedDocument
}
