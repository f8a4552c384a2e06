package models

import "errors"

// Common errors shared by the store and the adapter implementations.
var (
	// ErrKeyNotFound is returned by an adapter Get for a clean miss, as
	// opposed to a transport or backend failure.
	ErrKeyNotFound = errors.New("key not found in cache")

	// ErrSetFailed indicates a cache entry could not be written.
	ErrSetFailed = errors.New("failed to set cache entry")
)
