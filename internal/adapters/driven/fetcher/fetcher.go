// Package fetcher provides the driven.Fetcher adapter.
//
// http and https URLs are retrieved with a single GET. file:// URLs and
// bare paths are read from disk so a vendored copy of a library can be
// patched without network access.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/libpatch/internal/core/domain"
	"github.com/custodia-labs/libpatch/internal/core/ports/driven"
	"github.com/custodia-labs/libpatch/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultTimeout = 60 * time.Second

	// DefaultRatePerSecond spaces consecutive requests when several
	// targets are fetched from the same CDN in one run.
	DefaultRatePerSecond = 2.0

	// MaxContentBytes bounds the size of a fetched library.
	MaxContentBytes = 32 << 20
)

// Config holds configuration for the fetcher.
type Config struct {
	// Timeout is the HTTP request timeout (default: 60s).
	Timeout time.Duration

	// RatePerSecond is the maximum request rate (default: 2).
	RatePerSecond float64

	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// Fetcher retrieves library source text.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	now     func() time.Time
}

// New creates a new fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = DefaultRatePerSecond
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		now:     time.Now,
	}
}

// Fetch retrieves the content at rawURL and decodes it as UTF-8.
// A leading byte order mark is stripped.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.SourceDocument, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: empty url", domain.ErrInvalidInput)
	}

	var (
		body []byte
		err  error
	)
	if path, ok := localPath(rawURL); ok {
		body, err = f.readFile(path)
	} else {
		body, err = f.get(ctx, rawURL)
	}
	if err != nil {
		return nil, err
	}

	content, err := decode(body)
	if err != nil {
		return nil, err
	}

	return &domain.SourceDocument{
		URL:       rawURL,
		Content:   content,
		FetchedAt: f.now(),
	}, nil
}

// get performs a single GET request.
func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrNetworkFailure, err)
	}

	logger.Debug("GET %s", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrNetworkFailure, rawURL, resp.StatusCode)
	}

	body, err := readLimited(resp.Body)
	if err != nil {
		return nil, err
	}
	logger.Debug("GET %s: %d bytes", rawURL, len(body))
	return body, nil
}

// readFile reads a local library copy.
func (f *Fetcher) readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer file.Close()

	logger.Debug("read %s", path)
	return readLimited(file)
}

func readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxContentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrNetworkFailure, err)
	}
	if len(body) > MaxContentBytes {
		return nil, fmt.Errorf("%w: content exceeds %d bytes", domain.ErrNetworkFailure, MaxContentBytes)
	}
	return body, nil
}

// decode validates UTF-8 and strips a leading byte order mark.
func decode(body []byte) (string, error) {
	if !utf8.Valid(body) {
		return "", fmt.Errorf("%w: content is not valid UTF-8", domain.ErrDecodeFailure)
	}
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}
	return string(out), nil
}

// localPath reports whether rawURL names a local file and returns its path.
// Single-letter schemes are Windows drive letters, not URL schemes.
func localPath(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, true
	}
	switch {
	case u.Scheme == "file":
		return u.Path, true
	case u.Scheme == "" || len(u.Scheme) == 1:
		return rawURL, true
	default:
		return "", false
	}
}
