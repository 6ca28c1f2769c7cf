package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from the wrapped infrastructure errors that carry detail.
var (
	// ErrNotFound indicates a requested target does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown patch strategy.
	ErrUnsupportedType = errors.New("unsupported type")

	// Fetch Errors.

	// ErrNetworkFailure indicates the source could not be retrieved.
	// Covers transport errors, non-2xx responses and unreadable local files.
	ErrNetworkFailure = errors.New("network failure")

	// ErrDecodeFailure indicates the fetched bytes are not valid UTF-8 text.
	ErrDecodeFailure = errors.New("decode failure")

	// Verification Errors.

	// ErrContentTooSmall indicates the fetched content is below the target's
	// minimum size, which usually means an error page was fetched.
	ErrContentTooSmall = errors.New("content too small")
)
