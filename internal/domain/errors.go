package domain

import "errors"

// Error taxonomy surfaced by the engine. The resolvers clamp or ignore
// malformed input wherever possible, so ErrInvalidParameter is rare; store
// failures are all-or-nothing per invocation and carry no retry policy of
// their own.
var (
	// ErrInvalidParameter marks input that cannot be coerced. Reported to
	// the caller as a 4xx-equivalent.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotFound marks a single-record fetch with no match.
	ErrNotFound = errors.New("video not found")

	// ErrStoreUnavailable marks a connection or infrastructure failure.
	// Retryable by the caller.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreTimeout marks a query that exceeded its deadline.
	ErrStoreTimeout = errors.New("store timeout")
)
