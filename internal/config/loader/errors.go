package loader

import "errors"

// Loader-specific errors
var (
	ErrNoSourceProvided     = errors.New("no source provided to loader")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrParse                = errors.New("failed to parse document")
)
