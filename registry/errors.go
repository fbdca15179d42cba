package registry

import "errors"

// Sentinel errors for registry lookups. Call sites use these to distinguish
// "the package does not exist" from "the index could not be reached" from
// "the index answered with something unusable".
var (
	// ErrPackageNotFound indicates the index has no package under that name.
	ErrPackageNotFound = errors.New("package not found")

	// ErrUnavailable indicates a network failure or a non-success response
	// other than 404.
	ErrUnavailable = errors.New("registry unavailable")

	// ErrMalformedMetadata indicates the index response could not be parsed
	// or failed validation.
	ErrMalformedMetadata = errors.New("malformed package metadata")
)
