package feature

import "errors"

// Predefined errors for the feature package.
var (
	// ErrNilDataSource indicates the Resolver was built without a data source.
	ErrNilDataSource = errors.New("feature data source is required")

	// ErrDataSource wraps failures returned by the data source.
	ErrDataSource = errors.New("feature data source failed")

	// ErrCache wraps failures returned by the cache on read.
	ErrCache = errors.New("feature cache failed")

	// ErrCacheWrite wraps failures while populating the cache after a data-tier hit.
	// The resolved value is still returned alongside this error.
	ErrCacheWrite = errors.New("feature cache write-back failed")

	// ErrInvalidValue indicates a value that is not a null, boolean, number or string.
	ErrInvalidValue = errors.New("invalid feature flag value")

	// ErrInvalidRecord indicates a record that cannot be stored, such as one with an empty key.
	ErrInvalidRecord = errors.New("invalid feature flag record")

	// ErrInvalidLifetime indicates a non-positive memory tier lifetime.
	ErrInvalidLifetime = errors.New("feature memory lifetime must be positive")
)
