package internalerr

import "errors"

// Sentinels callers test with errors.Is.
var (
	// ErrNotFound: a store has no document under the requested name.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput: a document name, entity or argument is unusable.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreUnavailable: the configured artifact store cannot be opened.
	ErrStoreUnavailable = errors.New("artifact store unavailable")
	// ErrInvalidConfig: the configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnknownFormat: no codec or parser for a file extension or format name.
	ErrUnknownFormat = errors.New("unknown document format")
)
