package driven

import (
	"context"

	"github.com/custodia-labs/libpatch/internal/core/domain"
)

// Fetcher retrieves library source text.
// Implementations perform a single attempt with no retries.
type Fetcher interface {
	// Fetch retrieves the content at url and decodes it as UTF-8 text.
	// Returns an error wrapping domain.ErrNetworkFailure if the content
	// could not be retrieved, or domain.ErrDecodeFailure if it is not
	// valid UTF-8.
	Fetch(ctx context.Context, url string) (*domain.SourceDocument, error)
}
