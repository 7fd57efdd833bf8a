package cache

import "errors"

var (
	// ErrUnavailable is returned when a remote backend cannot be reached.
	ErrUnavailable = errors.New("cache backend unavailable")

	// ErrUnsupportedURL is returned by [Open] for unknown cache locations.
	ErrUnsupportedURL = errors.New("unsupported cache url")
)
