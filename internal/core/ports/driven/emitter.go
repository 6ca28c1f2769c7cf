package driven

import (
	"context"

	"github.com/custodia-labs/libpatch/internal/core/domain"
)

// Emitter writes patched artifacts.
type Emitter interface {
	// Emit writes the artifact's content to its path as UTF-8 text,
	// overwriting any previous file. Returns the number of bytes written.
	Emit(ctx context.Context, artifact *domain.OutputArtifact) (int64, error)
}
