package translate

import "errors"

var (
	// ErrNilAdapter is returned when a Translator is built without a
	// catalog adapter.
	ErrNilAdapter = errors.New("catalog adapter cannot be nil")

	// ErrFailedToReadFile is returned when a catalog file cannot be read.
	ErrFailedToReadFile = errors.New("failed to read catalog file")

	// ErrFailedToParseCatalog is returned when catalog content is malformed.
	ErrFailedToParseCatalog = errors.New("failed to parse catalog content")
)
